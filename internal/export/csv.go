package export

import (
	"encoding/json"
	"fmt"
	"io"

	"frontierlab/internal/calculator"
	"frontierlab/internal/domain"

	"github.com/gocarina/gocsv"
)

type frontierRow struct {
	Gamma             float64 `csv:"gamma"`
	ExpectedReturn    float64 `csv:"expected_return"`
	Risk              float64 `csv:"risk"`
	Sharpe            float64 `csv:"sharpe"`
	EffectiveHoldings float64 `csv:"effective_holdings"`
	TopSymbol         string  `csv:"top_symbol"`
	// Weights is the full weight vector as a JSON array; per-asset columns
	// would make the schema depend on the universe size.
	Weights string `csv:"weights"`
}

// WriteFrontierCSV writes one row per frontier point, ascending gamma.
func WriteFrontierCSV(w io.Writer, f domain.Frontier) error {
	if len(f.Points) == 0 {
		return fmt.Errorf("cannot export empty frontier")
	}

	rows := make([]frontierRow, 0, len(f.Points))
	for _, p := range f.Points {
		weightsJSON, err := json.Marshal(p.Weights)
		if err != nil {
			return fmt.Errorf("failed to encode weights for gamma=%g: %w", p.Gamma, err)
		}
		top := 0
		for i, weight := range p.Weights {
			if weight > p.Weights[top] {
				top = i
			}
		}
		rows = append(rows, frontierRow{
			Gamma:             p.Gamma,
			ExpectedReturn:    p.Return,
			Risk:              p.Risk,
			Sharpe:            calculator.Sharpe(p, 0),
			EffectiveHoldings: calculator.EffectiveHoldings(p.Weights),
			TopSymbol:         f.Universe.Symbols[top],
			Weights:           string(weightsJSON),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write frontier csv: %w", err)
	}
	return nil
}
