package solver

import (
	"errors"
	"fmt"
	"math"

	"frontierlab/internal/domain"

	"gonum.org/v1/gonum/mat"
)

// ErrNotConverged is returned when the iteration limit is reached before
// the solution settles. Callers should treat the sample as failed rather
// than use a partial answer.
var ErrNotConverged = errors.New("solver did not converge")

const (
	defaultMaxIterations = 500_000
	defaultTolerance     = 1e-11
)

// Solver maximizes the risk-adjusted return μᵀw − γ·wᵀΣw over the
// long-only budget simplex {w ≥ 0, Σw = 1} by projected gradient descent.
// The objective is concave for γ > 0 and Σ PSD, and the feasible set is
// compact, so the fixed point reached is the global optimum.
type Solver struct {
	// MaxIterations caps the gradient steps per solve.
	MaxIterations int
	// Tolerance is the max-norm step change below which the iteration is
	// considered converged.
	Tolerance float64
}

func New() *Solver {
	return &Solver{
		MaxIterations: defaultMaxIterations,
		Tolerance:     defaultTolerance,
	}
}

// Result is one solved portfolio. Derived quantities (return, risk) are
// computed by the caller from Weights via the universe; the solver only
// reports the objective it maximized.
type Result struct {
	Weights    []float64
	Objective  float64
	Iterations int
}

// Solve computes the optimal long-only portfolio for risk aversion gamma.
func (s *Solver) Solve(u domain.Universe, gamma float64) (*Result, error) {
	if gamma <= 0 {
		return nil, fmt.Errorf("gamma must be positive, got %g", gamma)
	}
	return s.descend(u, u.ExpectedReturns, gamma)
}

// MinimumVariance computes the portfolio minimizing wᵀΣw over the same
// simplex, the γ → ∞ limit of Solve.
func (s *Solver) MinimumVariance(u domain.Universe) (*Result, error) {
	zero := make([]float64, u.NumAssets())
	return s.descend(u, zero, 1)
}

func (s *Solver) descend(u domain.Universe, mu []float64, gamma float64) (*Result, error) {
	n := u.NumAssets()
	if n == 0 {
		return nil, fmt.Errorf("cannot solve over empty universe")
	}
	if len(mu) != n {
		return nil, fmt.Errorf("expected returns length %d doesn't match %d assets", len(mu), n)
	}

	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	tolerance := s.Tolerance
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}

	sigma := u.CovarianceSym()

	// Step size 1/L where L = 2γ·λmax(Σ) is the Lipschitz constant of the
	// gradient. Guarantees monotone descent without a line search.
	var eig mat.EigenSym
	if ok := eig.Factorize(sigma, false); !ok {
		return nil, fmt.Errorf("failed to factorize covariance matrix")
	}
	lambdaMax := 0.0
	for _, ev := range eig.Values(nil) {
		lambdaMax = math.Max(lambdaMax, ev)
	}
	lipschitz := 2 * gamma * lambdaMax
	if lipschitz < 1e-12 {
		lipschitz = 1e-12
	}
	step := 1 / lipschitz

	// Equal-weight start, the customary feasible initial point.
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}

	moved := make([]float64, n)
	iterations := 0
	converged := false
	for ; iterations < maxIterations; iterations++ {
		// ∇f(w) = 2γΣw − μ for the minimized f(w) = γ·wᵀΣw − μᵀw.
		for i := 0; i < n; i++ {
			sigmaW := 0.0
			for j := 0; j < n; j++ {
				sigmaW += sigma.At(i, j) * w[j]
			}
			moved[i] = w[i] - step*(2*gamma*sigmaW-mu[i])
		}
		next := projectSimplex(moved)

		maxDelta := 0.0
		for i := range next {
			maxDelta = math.Max(maxDelta, math.Abs(next[i]-w[i]))
		}
		w = next
		if maxDelta < tolerance {
			converged = true
			iterations++
			break
		}
	}
	if !converged {
		return nil, fmt.Errorf("%w after %d iterations", ErrNotConverged, iterations)
	}

	objective := 0.0
	for i := range w {
		objective += mu[i] * w[i]
	}
	objective -= gamma * u.Variance(w)

	return &Result{
		Weights:    w,
		Objective:  objective,
		Iterations: iterations,
	}, nil
}
