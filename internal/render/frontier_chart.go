package render

import (
	"bytes"
	"fmt"

	"frontierlab/internal/domain"

	"github.com/wcharczuk/go-chart/v2"
)

// DefaultMarkerCount is how many gamma samples get annotated on the
// frontier chart and bars on the allocation chart when the caller doesn't
// pick their own.
const DefaultMarkerCount = 4

// DefaultMarkerIndexes picks evenly spaced interior sample positions.
func DefaultMarkerIndexes(numPoints, count int) []int {
	if count <= 0 || numPoints <= 0 {
		return nil
	}
	if count > numPoints {
		count = numPoints
	}
	indexes := make([]int, count)
	for i := range indexes {
		indexes[i] = (2*i + 1) * numPoints / (2 * count)
	}
	return indexes
}

func validateMarkerIndexes(markerIndexes []int, numPoints int) error {
	for _, idx := range markerIndexes {
		if idx < 0 || idx >= numPoints {
			return fmt.Errorf("marker index %d out of range [0,%d)", idx, numPoints)
		}
	}
	return nil
}

// FrontierChart renders the risk/return trade-off curve as a PNG: the
// frontier line across all samples, scatter points for each single-asset
// portfolio, and labeled markers at the chosen sample indexes.
func FrontierChart(f domain.Frontier, markerIndexes []int) ([]byte, error) {
	if len(f.Points) < 2 {
		return nil, fmt.Errorf("need at least 2 frontier points to chart, got %d", len(f.Points))
	}
	if err := validateMarkerIndexes(markerIndexes, len(f.Points)); err != nil {
		return nil, err
	}

	risks := make([]float64, len(f.Points))
	returns := make([]float64, len(f.Points))
	for i, p := range f.Points {
		risks[i] = p.Risk
		returns[i] = p.Return
	}

	assetPoints := f.Universe.AssetPoints()
	assetRisks := make([]float64, len(assetPoints))
	assetReturns := make([]float64, len(assetPoints))
	for i, p := range assetPoints {
		assetRisks[i] = p.Risk
		assetReturns[i] = p.Return
	}

	annotations := make([]chart.Value2, 0, len(markerIndexes))
	for _, idx := range markerIndexes {
		p := f.Points[idx]
		annotations = append(annotations, chart.Value2{
			XValue: p.Risk,
			YValue: p.Return,
			Label:  fmt.Sprintf("gamma=%.2f", p.Gamma),
		})
	}

	graph := chart.Chart{
		Title:  "Efficient frontier",
		Width:  1024,
		Height: 640,
		XAxis: chart.XAxis{
			Name: "Risk (standard deviation)",
		},
		YAxis: chart.YAxis{
			Name: "Expected return",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Frontier",
				XValues: risks,
				YValues: returns,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.5,
				},
			},
			chart.ContinuousSeries{
				Name:    "Single assets",
				XValues: assetRisks,
				YValues: assetReturns,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    chart.ColorRed,
				},
			},
			chart.AnnotationSeries{
				Annotations: annotations,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render frontier chart: %w", err)
	}
	return buf.Bytes(), nil
}
