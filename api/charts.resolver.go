package api

import (
	"fmt"
	"strconv"
	"strings"

	"frontierlab/internal/render"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) frontierChart(c *gin.Context) {
	run, ok := m.lookupRun(c)
	if !ok {
		return
	}
	markers, err := parseMarkers(c.Query("markers"), len(run.Frontier.Points))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	png, err := render.FrontierChart(run.Frontier, markers)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to render frontier chart: %w", err), c)
		return
	}
	c.Data(200, "image/png", png)
}

func (m ApiHandler) allocationChart(c *gin.Context) {
	run, ok := m.lookupRun(c)
	if !ok {
		return
	}
	markers, err := parseMarkers(c.Query("markers"), len(run.Frontier.Points))
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	png, err := render.AllocationChart(run.Frontier, markers)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to render allocation chart: %w", err), c)
		return
	}
	c.Data(200, "image/png", png)
}

// parseMarkers reads a comma-separated list of sample indexes from the
// query string, falling back to evenly spaced defaults.
func parseMarkers(raw string, numPoints int) ([]int, error) {
	if raw == "" {
		return render.DefaultMarkerIndexes(numPoints, render.DefaultMarkerCount), nil
	}
	parts := strings.Split(raw, ",")
	markers := make([]int, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid marker index %q: %w", part, err)
		}
		if idx < 0 || idx >= numPoints {
			return nil, fmt.Errorf("marker index %d out of range [0,%d)", idx, numPoints)
		}
		markers = append(markers, idx)
	}
	return markers, nil
}
