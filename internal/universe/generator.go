package universe

import (
	"fmt"
	"math"
	"math/rand"

	"frontierlab/internal/domain"
)

// Generate builds a synthetic asset universe from a seeded PRNG. Expected
// returns are |N(0,1)| draws and the covariance matrix is AᵀA for an
// n×n standard-normal A, which makes it positive semidefinite by
// construction. The same seed always yields the same universe.
func Generate(seed int64, numAssets int) (*domain.Universe, error) {
	if numAssets <= 0 {
		return nil, fmt.Errorf("cannot generate universe with %d assets", numAssets)
	}

	rng := rand.New(rand.NewSource(seed))

	mu := make([]float64, numAssets)
	for i := range mu {
		mu[i] = math.Abs(rng.NormFloat64())
	}

	// A is generated row-major; Σ = AᵀA so Σ_ij = Σ_k A_ki * A_kj.
	a := make([][]float64, numAssets)
	for i := range a {
		a[i] = make([]float64, numAssets)
		for j := range a[i] {
			a[i][j] = rng.NormFloat64()
		}
	}

	sigma := make([][]float64, numAssets)
	for i := range sigma {
		sigma[i] = make([]float64, numAssets)
	}
	for i := 0; i < numAssets; i++ {
		for j := i; j < numAssets; j++ {
			dot := 0.0
			for k := 0; k < numAssets; k++ {
				dot += a[k][i] * a[k][j]
			}
			sigma[i][j] = dot
			sigma[j][i] = dot
		}
	}

	symbols := make([]string, numAssets)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("ASSET%02d", i)
	}

	u := &domain.Universe{
		Symbols:         symbols,
		ExpectedReturns: mu,
		Covariance:      sigma,
	}
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("generated universe failed validation: %w", err)
	}
	return u, nil
}
