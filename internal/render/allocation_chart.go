package render

import (
	"bytes"
	"fmt"

	"frontierlab/internal/domain"

	"github.com/wcharczuk/go-chart/v2"
)

// labelCutoff hides segment labels for slivers that would just overlap.
const labelCutoff = 0.03

// AllocationChart renders one stacked bar per chosen sample index, each
// bar splitting the budget across assets by solved weight, color-coded by
// asset position in the universe.
func AllocationChart(f domain.Frontier, markerIndexes []int) ([]byte, error) {
	if len(markerIndexes) == 0 {
		return nil, fmt.Errorf("no sample indexes chosen for allocation chart")
	}
	if err := validateMarkerIndexes(markerIndexes, len(f.Points)); err != nil {
		return nil, err
	}

	bars := make([]chart.StackedBar, 0, len(markerIndexes))
	for _, idx := range markerIndexes {
		p := f.Points[idx]
		values := make([]chart.Value, 0, len(p.Weights))
		for i, w := range p.Weights {
			if w <= 0 {
				continue
			}
			label := ""
			if w >= labelCutoff {
				label = f.Universe.Symbols[i]
			}
			color := chart.GetDefaultColor(i)
			values = append(values, chart.Value{
				Value: w,
				Label: label,
				Style: chart.Style{
					FillColor:   color,
					StrokeColor: color,
				},
			})
		}
		bars = append(bars, chart.StackedBar{
			Name:   fmt.Sprintf("gamma=%.2f", p.Gamma),
			Values: values,
		})
	}

	graph := chart.StackedBarChart{
		Title:      "Portfolio allocation by risk aversion",
		Width:      1024,
		Height:     640,
		BarSpacing: 60,
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render allocation chart: %w", err)
	}
	return buf.Bytes(), nil
}
