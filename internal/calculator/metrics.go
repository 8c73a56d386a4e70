package calculator

import (
	"fmt"
	"math"

	"frontierlab/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Sharpe is the excess return per unit of risk for one frontier point.
// Returns 0 for a riskless point rather than dividing by zero.
func Sharpe(p domain.FrontierPoint, riskFreeRate float64) float64 {
	if p.Risk <= 0 {
		return 0
	}
	return (p.Return - riskFreeRate) / p.Risk
}

// EffectiveHoldings is the inverse Herfindahl index 1/Σwᵢ², the number of
// equally weighted assets the portfolio is as concentrated as.
func EffectiveHoldings(weights []float64) float64 {
	sumSquares := 0.0
	for _, w := range weights {
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return 0
	}
	return 1 / sumSquares
}

// DiversificationRatio is the weighted average of single-asset risks over
// the portfolio risk; 1 means no diversification benefit.
func DiversificationRatio(u domain.Universe, weights []float64) float64 {
	portfolioRisk := u.Risk(weights)
	if portfolioRisk <= 0 {
		return 0
	}
	weightedRisk := 0.0
	for i, w := range weights {
		weightedRisk += w * math.Sqrt(math.Max(u.Covariance[i][i], 0))
	}
	return weightedRisk / portfolioRisk
}

type FrontierSummary struct {
	MinRisk         float64
	MaxRisk         float64
	MinReturn       float64
	MaxReturn       float64
	MaxSharpe       float64
	MaxSharpeGamma  float64
	MaxSharpeIndex  int
	MeanEffectiveN  float64
	RiskFreeRate    float64
	NumPoints       int
}

// Summarize computes headline statistics over a solved frontier.
func Summarize(f domain.Frontier, riskFreeRate float64) (*FrontierSummary, error) {
	if len(f.Points) == 0 {
		return nil, fmt.Errorf("cannot summarize empty frontier")
	}

	risks := make([]float64, len(f.Points))
	returns := make([]float64, len(f.Points))
	effective := make([]float64, len(f.Points))
	summary := &FrontierSummary{
		MaxSharpe:    math.Inf(-1),
		RiskFreeRate: riskFreeRate,
		NumPoints:    len(f.Points),
	}
	for i, p := range f.Points {
		risks[i] = p.Risk
		returns[i] = p.Return
		effective[i] = EffectiveHoldings(p.Weights)
		if sharpe := Sharpe(p, riskFreeRate); sharpe > summary.MaxSharpe {
			summary.MaxSharpe = sharpe
			summary.MaxSharpeGamma = p.Gamma
			summary.MaxSharpeIndex = i
		}
	}

	var err error
	if summary.MinRisk, err = stats.Min(risks); err != nil {
		return nil, fmt.Errorf("failed to compute risk range: %w", err)
	}
	if summary.MaxRisk, err = stats.Max(risks); err != nil {
		return nil, fmt.Errorf("failed to compute risk range: %w", err)
	}
	if summary.MinReturn, err = stats.Min(returns); err != nil {
		return nil, fmt.Errorf("failed to compute return range: %w", err)
	}
	if summary.MaxReturn, err = stats.Max(returns); err != nil {
		return nil, fmt.Errorf("failed to compute return range: %w", err)
	}
	if summary.MeanEffectiveN, err = stats.Mean(effective); err != nil {
		return nil, fmt.Errorf("failed to compute effective holdings: %w", err)
	}
	return summary, nil
}

// AllocateBudget spreads a dollar budget across a weight vector, rounding
// each leg to cents. The rounding remainder lands on the largest position
// so the amounts always total exactly the budget.
func AllocateBudget(budget decimal.Decimal, u domain.Universe, weights []float64) ([]domain.Allocation, error) {
	if budget.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("cannot allocate non-positive budget %s", budget.String())
	}
	if len(weights) != u.NumAssets() {
		return nil, fmt.Errorf("got %d weights for %d assets", len(weights), u.NumAssets())
	}

	allocations := make([]domain.Allocation, len(weights))
	allocated := decimal.Zero
	largest := 0
	for i, w := range weights {
		amount := budget.Mul(decimal.NewFromFloat(w)).Round(2)
		allocations[i] = domain.Allocation{
			Symbol: u.Symbols[i],
			Weight: w,
			Amount: amount,
		}
		allocated = allocated.Add(amount)
		if w > weights[largest] {
			largest = i
		}
	}

	remainder := budget.Sub(allocated)
	if !remainder.IsZero() {
		allocations[largest].Amount = allocations[largest].Amount.Add(remainder)
	}
	return allocations, nil
}
