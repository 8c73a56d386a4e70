package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testUniverse() Universe {
	return Universe{
		Symbols:         []string{"AAA", "BBB", "CCC"},
		ExpectedReturns: []float64{0.1, 0.2, 0.05},
		Covariance: [][]float64{
			{0.04, 0.01, 0.00},
			{0.01, 0.09, 0.02},
			{0.00, 0.02, 0.16},
		},
	}
}

func Test_Universe_Validate(t *testing.T) {
	t.Run("valid universe passes", func(t *testing.T) {
		require.NoError(t, testUniverse().Validate())
	})

	t.Run("rejects empty universe", func(t *testing.T) {
		require.Error(t, Universe{}.Validate())
	})

	t.Run("rejects mismatched returns length", func(t *testing.T) {
		u := testUniverse()
		u.ExpectedReturns = u.ExpectedReturns[:2]
		require.ErrorContains(t, u.Validate(), "expected returns length")
	})

	t.Run("rejects asymmetric covariance", func(t *testing.T) {
		u := testUniverse()
		u.Covariance[0][1] = 0.5
		require.ErrorContains(t, u.Validate(), "not symmetric")
	})

	t.Run("rejects indefinite covariance", func(t *testing.T) {
		u := testUniverse()
		u.Covariance = [][]float64{
			{1, 0, 0},
			{0, -1, 0},
			{0, 0, 1},
		}
		require.ErrorContains(t, u.Validate(), "not positive semidefinite")
	})
}

func Test_Universe_PortfolioMath(t *testing.T) {
	u := testUniverse()
	w := []float64{0.5, 0.3, 0.2}

	require.InDelta(t, 0.5*0.1+0.3*0.2+0.2*0.05, u.Return(w), 1e-12)

	// wᵀΣw expanded by hand.
	wantVariance := 0.25*0.04 + 0.09*0.09 + 0.04*0.16 +
		2*(0.5*0.3*0.01+0.3*0.2*0.02)
	require.InDelta(t, wantVariance, u.Variance(w), 1e-12)
	require.InDelta(t, u.Risk(w)*u.Risk(w), u.Variance(w), 1e-12)
}

func Test_Universe_AssetPoints(t *testing.T) {
	points := testUniverse().AssetPoints()
	require.Len(t, points, 3)
	require.Equal(t, "BBB", points[1].Symbol)
	require.InDelta(t, 0.3, points[1].Risk, 1e-12)
	require.InDelta(t, 0.2, points[1].Return, 1e-12)
}

func Test_Frontier_Validate(t *testing.T) {
	u := testUniverse()
	valid := Frontier{
		Universe: u,
		Points: []FrontierPoint{
			{Gamma: 0.1, Weights: []float64{0.2, 0.3, 0.5}, Return: 1, Risk: 1},
			{Gamma: 1.0, Weights: []float64{0.5, 0.25, 0.25}, Return: 1, Risk: 1},
		},
	}
	require.NoError(t, valid.Validate())

	t.Run("rejects out-of-order gammas", func(t *testing.T) {
		f := valid
		f.Points = []FrontierPoint{valid.Points[1], valid.Points[0]}
		require.ErrorContains(t, f.Validate(), "ascending gamma order")
	})

	t.Run("rejects weights off the simplex", func(t *testing.T) {
		f := valid
		f.Points = []FrontierPoint{
			{Gamma: 0.1, Weights: []float64{0.9, 0.3, 0.5}},
		}
		require.ErrorContains(t, f.Validate(), "sum to")
	})

	t.Run("rejects negative weights", func(t *testing.T) {
		f := valid
		f.Points = []FrontierPoint{
			{Gamma: 0.1, Weights: []float64{-0.2, 0.7, 0.5}},
		}
		require.ErrorContains(t, f.Validate(), "negative weight")
	})
}
