package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PsdTolerance is how far below zero an eigenvalue of a covariance matrix
// may sit before we treat the matrix as indefinite. Matrices built as AᵀA
// are PSD exactly, but estimation and serialization round-trips leave
// eigenvalues a hair negative.
const PsdTolerance = 1e-9

// Universe is a fixed set of assets with their expected returns and return
// covariance. Symbols, ExpectedReturns and Covariance are index-aligned and
// immutable once built.
type Universe struct {
	Symbols         []string    `json:"symbols"`
	ExpectedReturns []float64   `json:"expectedReturns"`
	Covariance      [][]float64 `json:"covariance"`
}

func (u Universe) NumAssets() int {
	return len(u.Symbols)
}

// Return computes μᵀw.
func (u Universe) Return(weights []float64) float64 {
	total := 0.0
	for i, w := range weights {
		total += u.ExpectedReturns[i] * w
	}
	return total
}

// Variance computes wᵀΣw.
func (u Universe) Variance(weights []float64) float64 {
	total := 0.0
	for i, wi := range weights {
		for j, wj := range weights {
			total += wi * wj * u.Covariance[i][j]
		}
	}
	return total
}

// Risk computes the return standard deviation sqrt(wᵀΣw). Tiny negative
// variances from float noise are clamped to zero.
func (u Universe) Risk(weights []float64) float64 {
	return math.Sqrt(math.Max(u.Variance(weights), 0))
}

func (u Universe) Validate() error {
	n := u.NumAssets()
	if n == 0 {
		return fmt.Errorf("universe has no assets")
	}
	if len(u.ExpectedReturns) != n {
		return fmt.Errorf("expected returns length %d doesn't match %d symbols", len(u.ExpectedReturns), n)
	}
	if len(u.Covariance) != n {
		return fmt.Errorf("covariance matrix has %d rows, expected %d", len(u.Covariance), n)
	}
	for i, row := range u.Covariance {
		if len(row) != n {
			return fmt.Errorf("covariance row %d has %d columns, expected %d", i, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(u.Covariance[i][j]-u.Covariance[j][i]) > PsdTolerance {
				return fmt.Errorf("covariance matrix is not symmetric at (%d,%d): %f != %f", i, j, u.Covariance[i][j], u.Covariance[j][i])
			}
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(u.CovarianceSym(), false); !ok {
		return fmt.Errorf("failed to factorize covariance matrix")
	}
	for _, ev := range eig.Values(nil) {
		if ev < -PsdTolerance {
			return fmt.Errorf("covariance matrix is not positive semidefinite: eigenvalue %g", ev)
		}
	}
	return nil
}

// CovarianceSym returns Σ as a gonum symmetric matrix. Off-diagonal noise
// is averaged away so the result is exactly symmetric.
func (u Universe) CovarianceSym() *mat.SymDense {
	n := u.NumAssets()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (u.Covariance[i][j]+u.Covariance[j][i])/2)
		}
	}
	return sym
}

func (u Universe) DeepCopy() Universe {
	out := Universe{
		Symbols:         append([]string{}, u.Symbols...),
		ExpectedReturns: append([]float64{}, u.ExpectedReturns...),
		Covariance:      make([][]float64, len(u.Covariance)),
	}
	for i, row := range u.Covariance {
		out.Covariance[i] = append([]float64{}, row...)
	}
	return out
}

// AssetPoint is the risk/return position of a single-asset portfolio,
// used as a reference overlay on frontier charts.
type AssetPoint struct {
	Symbol string  `json:"symbol"`
	Risk   float64 `json:"risk"`
	Return float64 `json:"return"`
}

func (u Universe) AssetPoints() []AssetPoint {
	points := make([]AssetPoint, u.NumAssets())
	for i, symbol := range u.Symbols {
		points[i] = AssetPoint{
			Symbol: symbol,
			Risk:   math.Sqrt(math.Max(u.Covariance[i][i], 0)),
			Return: u.ExpectedReturns[i],
		}
	}
	return points
}
