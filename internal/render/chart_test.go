package render

import (
	"context"
	"testing"

	"frontierlab/internal/domain"
	"frontierlab/internal/frontier"
	"frontierlab/internal/universe"

	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func solvedFrontier(t *testing.T) domain.Frontier {
	t.Helper()
	u, err := universe.Generate(42, 6)
	require.NoError(t, err)
	gammas, err := frontier.GammaGrid(-2, 3, 12)
	require.NoError(t, err)
	f, err := frontier.NewService(nil).Sweep(context.Background(), frontier.SweepInput{
		Universe: *u,
		Gammas:   gammas,
	})
	require.NoError(t, err)
	return *f
}

func Test_DefaultMarkerIndexes(t *testing.T) {
	indexes := DefaultMarkerIndexes(100, 4)
	require.Equal(t, []int{12, 37, 62, 87}, indexes)

	t.Run("count is capped at the number of points", func(t *testing.T) {
		indexes := DefaultMarkerIndexes(2, 5)
		require.Len(t, indexes, 2)
		for _, idx := range indexes {
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 2)
		}
	})

	t.Run("degenerate inputs yield nothing", func(t *testing.T) {
		require.Nil(t, DefaultMarkerIndexes(0, 4))
		require.Nil(t, DefaultMarkerIndexes(10, 0))
	})
}

func Test_FrontierChart(t *testing.T) {
	f := solvedFrontier(t)

	t.Run("renders a png", func(t *testing.T) {
		png, err := FrontierChart(f, DefaultMarkerIndexes(len(f.Points), 3))
		require.NoError(t, err)
		require.Greater(t, len(png), len(pngMagic))
		require.Equal(t, pngMagic, png[:4])
	})

	t.Run("rejects out-of-range marker indexes", func(t *testing.T) {
		_, err := FrontierChart(f, []int{len(f.Points)})
		require.ErrorContains(t, err, "out of range")
		_, err = FrontierChart(f, []int{-1})
		require.ErrorContains(t, err, "out of range")
	})

	t.Run("rejects too-short frontiers", func(t *testing.T) {
		short := f
		short.Points = f.Points[:1]
		_, err := FrontierChart(short, nil)
		require.Error(t, err)
	})
}

func Test_AllocationChart(t *testing.T) {
	f := solvedFrontier(t)

	t.Run("renders a png", func(t *testing.T) {
		png, err := AllocationChart(f, DefaultMarkerIndexes(len(f.Points), 4))
		require.NoError(t, err)
		require.Greater(t, len(png), len(pngMagic))
		require.Equal(t, pngMagic, png[:4])
	})

	t.Run("rejects empty marker list", func(t *testing.T) {
		_, err := AllocationChart(f, nil)
		require.Error(t, err)
	})

	t.Run("rejects out-of-range marker indexes", func(t *testing.T) {
		_, err := AllocationChart(f, []int{99})
		require.ErrorContains(t, err, "out of range")
	})
}
