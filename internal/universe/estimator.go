package universe

import (
	"fmt"

	"frontierlab/internal/domain"

	"github.com/montanaflynn/stats"
)

// Estimate builds a universe from aligned historical close prices: one
// series per symbol, all the same length, oldest first. Expected returns
// are sample means of per-period simple returns and the covariance matrix
// is the sample covariance of those returns.
func Estimate(symbols []string, closes map[string][]float64) (*domain.Universe, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols provided")
	}

	numPeriods := -1
	returns := make([][]float64, len(symbols))
	for i, symbol := range symbols {
		prices, ok := closes[symbol]
		if !ok {
			return nil, fmt.Errorf("missing price series for %s", symbol)
		}
		if len(prices) < 3 {
			return nil, fmt.Errorf("need at least 3 prices for %s, got %d", symbol, len(prices))
		}
		if numPeriods == -1 {
			numPeriods = len(prices)
		} else if len(prices) != numPeriods {
			return nil, fmt.Errorf("price series for %s has %d points, expected %d", symbol, len(prices), numPeriods)
		}

		r := make([]float64, len(prices)-1)
		for t := 1; t < len(prices); t++ {
			if prices[t-1] <= 0 {
				return nil, fmt.Errorf("non-positive price for %s at index %d", symbol, t-1)
			}
			r[t-1] = prices[t]/prices[t-1] - 1
		}
		returns[i] = r
	}

	mu := make([]float64, len(symbols))
	for i := range symbols {
		mean, err := stats.Mean(returns[i])
		if err != nil {
			return nil, fmt.Errorf("failed to compute mean return for %s: %w", symbols[i], err)
		}
		mu[i] = mean
	}

	sigma := make([][]float64, len(symbols))
	for i := range sigma {
		sigma[i] = make([]float64, len(symbols))
	}
	for i := range symbols {
		for j := i; j < len(symbols); j++ {
			cov, err := sampleCovariance(returns[i], returns[j], mu[i], mu[j])
			if err != nil {
				return nil, fmt.Errorf("failed to compute covariance for %s/%s: %w", symbols[i], symbols[j], err)
			}
			sigma[i][j] = cov
			sigma[j][i] = cov
		}
	}

	u := &domain.Universe{
		Symbols:         append([]string{}, symbols...),
		ExpectedReturns: mu,
		Covariance:      sigma,
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("estimated universe failed validation: %w", err)
	}
	return u, nil
}

// sampleCovariance uses the population normalizer (1/n) so the resulting
// matrix is PSD exactly; the 1/(n-1) estimator can leave it slightly
// indefinite on short, perfectly correlated series.
func sampleCovariance(x, y []float64, meanX, meanY float64) (float64, error) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, fmt.Errorf("mismatched return series lengths %d and %d", len(x), len(y))
	}
	total := 0.0
	for t := range x {
		total += (x[t] - meanX) * (y[t] - meanY)
	}
	return total / float64(len(x)), nil
}
