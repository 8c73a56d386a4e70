package util

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func FloatPointer(f float64) *float64 {
	return &f
}

func IntPointer(i int) *int {
	return &i
}

func DecimalPointer(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Pprint dumps a value as indented JSON, for script-style debugging.
func Pprint(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
}
