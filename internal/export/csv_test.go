package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"frontierlab/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_WriteFrontierCSV(t *testing.T) {
	f := domain.Frontier{
		Universe: domain.Universe{
			Symbols:         []string{"AAA", "BBB"},
			ExpectedReturns: []float64{0.1, 0.2},
			Covariance: [][]float64{
				{0.04, 0},
				{0, 0.09},
			},
		},
		Points: []domain.FrontierPoint{
			{Gamma: 0.01, Weights: []float64{0.1, 0.9}, Return: 0.19, Risk: 0.27},
			{Gamma: 100, Weights: []float64{0.8, 0.2}, Return: 0.12, Risk: 0.17},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFrontierCSV(&buf, f))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	require.Equal(t, []string{"gamma", "expected_return", "risk", "sharpe", "effective_holdings", "top_symbol", "weights"}, header)

	require.Equal(t, "BBB", records[1][5])
	require.Equal(t, "AAA", records[2][5])

	gamma, err := strconv.ParseFloat(records[1][0], 64)
	require.NoError(t, err)
	require.InDelta(t, 0.01, gamma, 1e-12)

	require.Contains(t, records[1][6], "0.9")

	t.Run("empty frontier is rejected", func(t *testing.T) {
		require.Error(t, WriteFrontierCSV(&bytes.Buffer{}, domain.Frontier{}))
	})
}
