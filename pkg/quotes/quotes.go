package quotes

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// Client fetches historical daily closes for estimating expected returns
// and covariances from real market data.
type Client struct{}

func NewClient() Client {
	return Client{}
}

// GetDailyCloses returns adjusted daily closes for each symbol over
// [start, end], oldest first, keyed by symbol. Series lengths may differ
// across symbols; callers aligning them for covariance estimation should
// truncate to the shortest.
func (c Client) GetDailyCloses(symbols []string, start, end time.Time) (map[string][]float64, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols provided")
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start %s is not before end %s", start, end)
	}

	out := map[string][]float64{}
	for _, symbol := range symbols {
		closes, err := c.getSymbolCloses(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch closes for %s: %w", symbol, err)
		}
		out[symbol] = closes
	}
	return out, nil
}

func (c Client) getSymbolCloses(symbol string, start, end time.Time) ([]float64, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Interval: datetime.OneDay,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
	}

	closes := []float64{}
	iter := chart.Get(params)
	for iter.Next() {
		bar := iter.Bar()
		adjClose, _ := bar.AdjClose.Float64()
		if adjClose > 0 {
			closes = append(closes, adjClose)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("no price history returned")
	}
	return closes, nil
}

// AlignSeries truncates every series to the shortest one, keeping the most
// recent observations, so per-period returns line up across symbols.
func AlignSeries(closes map[string][]float64) map[string][]float64 {
	shortest := -1
	for _, series := range closes {
		if shortest == -1 || len(series) < shortest {
			shortest = len(series)
		}
	}
	if shortest <= 0 {
		return map[string][]float64{}
	}

	out := map[string][]float64{}
	for symbol, series := range closes {
		out[symbol] = series[len(series)-shortest:]
	}
	return out
}
