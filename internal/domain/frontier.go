package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// WeightTolerance bounds how far a solved weight vector may drift off the
// simplex before we reject it.
const WeightTolerance = 1e-6

// FrontierPoint is one solved portfolio on the efficient frontier: the
// optimizer of μᵀw − γ·wᵀΣw over the long-only budget simplex, together
// with its realized return μᵀw and risk sqrt(wᵀΣw).
type FrontierPoint struct {
	Gamma   float64   `json:"gamma"`
	Weights []float64 `json:"weights"`
	Return  float64   `json:"return"`
	Risk    float64   `json:"risk"`
}

// Objective recomputes the risk-adjusted return μᵀw − γ·wᵀΣw from the
// recorded weights.
func (p FrontierPoint) Objective(u Universe) float64 {
	return u.Return(p.Weights) - p.Gamma*u.Variance(p.Weights)
}

// Frontier is the result of a full risk-aversion sweep. Points are ordered
// by ascending gamma and parallel to the gamma grid the sweep ran over.
type Frontier struct {
	Universe Universe        `json:"universe"`
	Points   []FrontierPoint `json:"points"`
}

func (f Frontier) Validate() error {
	if err := f.Universe.Validate(); err != nil {
		return fmt.Errorf("invalid universe: %w", err)
	}
	n := f.Universe.NumAssets()
	for i, p := range f.Points {
		if p.Gamma <= 0 {
			return fmt.Errorf("point %d has non-positive gamma %g", i, p.Gamma)
		}
		if i > 0 && p.Gamma <= f.Points[i-1].Gamma {
			return fmt.Errorf("points are not in ascending gamma order at index %d", i)
		}
		if len(p.Weights) != n {
			return fmt.Errorf("point %d has %d weights, expected %d", i, len(p.Weights), n)
		}
		sum := 0.0
		for j, w := range p.Weights {
			if w < -WeightTolerance {
				return fmt.Errorf("point %d has negative weight %g for %s", i, w, f.Universe.Symbols[j])
			}
			sum += w
		}
		if math.Abs(sum-1) > WeightTolerance {
			return fmt.Errorf("point %d weights sum to %g, expected 1", i, sum)
		}
	}
	return nil
}

// Allocation is a dollar amount assigned to one asset when a budget is
// spread across a solved weight vector.
type Allocation struct {
	Symbol string          `json:"symbol"`
	Weight float64         `json:"weight"`
	Amount decimal.Decimal `json:"amount"`
}
