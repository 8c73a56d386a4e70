package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"frontierlab/internal/domain"
	"frontierlab/internal/frontier"
	"frontierlab/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, ApiHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewDb(filepath.Join(t.TempDir(), "frontierlab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	handler := ApiHandler{
		SweepService:  frontier.NewService(nil),
		RunRepository: repository.NewRunRepository(db),
	}

	router := gin.New()
	router.POST("/universe", handler.generateUniverse)
	router.POST("/sweep", handler.sweep)
	router.GET("/runs/:id", handler.getRun)
	router.GET("/runs/:id/frontier.png", handler.frontierChart)
	return router, handler
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func Test_generateUniverse(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("generates a deterministic universe", func(t *testing.T) {
		first := postJSON(t, router, "/universe", gin.H{"seed": 42, "numAssets": 5})
		require.Equal(t, 200, first.Code)
		second := postJSON(t, router, "/universe", gin.H{"seed": 42, "numAssets": 5})
		require.Equal(t, 200, second.Code)
		require.JSONEq(t, first.Body.String(), second.Body.String())

		var resp struct {
			Universe domain.Universe `json:"universe"`
		}
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
		require.Len(t, resp.Universe.Symbols, 5)
		require.NoError(t, resp.Universe.Validate())
	})

	t.Run("rejects missing asset count", func(t *testing.T) {
		recorder := postJSON(t, router, "/universe", gin.H{"seed": 1})
		require.Equal(t, 400, recorder.Code)
	})
}

func Test_sweep(t *testing.T) {
	router, handler := newTestRouter(t)

	t.Run("runs and persists a sweep", func(t *testing.T) {
		recorder := postJSON(t, router, "/sweep", gin.H{
			"seed":      7,
			"numAssets": 5,
			"samples":   10,
		})
		require.Equal(t, 200, recorder.Code)

		var resp struct {
			RunID    string          `json:"runId"`
			Frontier domain.Frontier `json:"frontier"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp.Frontier.Points, 10)
		require.NoError(t, resp.Frontier.Validate())

		// The run is retrievable and serves a chart.
		getRecorder := httptest.NewRecorder()
		router.ServeHTTP(getRecorder, httptest.NewRequest(http.MethodGet, "/runs/"+resp.RunID, nil))
		require.Equal(t, 200, getRecorder.Code)

		chartRecorder := httptest.NewRecorder()
		router.ServeHTTP(chartRecorder, httptest.NewRequest(http.MethodGet, "/runs/"+resp.RunID+"/frontier.png", nil))
		require.Equal(t, 200, chartRecorder.Code)
		require.Equal(t, "image/png", chartRecorder.Header().Get("Content-Type"))

		runs, err := handler.RunRepository.List()
		require.NoError(t, err)
		require.Len(t, runs, 1)
	})

	t.Run("rejects request with neither universe nor asset count", func(t *testing.T) {
		recorder := postJSON(t, router, "/sweep", gin.H{"samples": 5})
		require.Equal(t, 400, recorder.Code)
	})

	t.Run("rejects unknown run ids", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/runs/not-a-uuid", nil))
		require.Equal(t, 400, recorder.Code)
	})

	t.Run("sweeps a supplied universe", func(t *testing.T) {
		universePayload := domain.Universe{
			Symbols:         []string{"AAA", "BBB"},
			ExpectedReturns: []float64{0.1, 0.2},
			Covariance: [][]float64{
				{0.04, 0.01},
				{0.01, 0.09},
			},
		}
		recorder := postJSON(t, router, "/sweep", gin.H{
			"universe": universePayload,
			"samples":  5,
		})
		require.Equal(t, 200, recorder.Code)

		var resp struct {
			Frontier domain.Frontier `json:"frontier"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp.Frontier.Points, 5)
		for _, p := range resp.Frontier.Points {
			require.Len(t, p.Weights, 2)
		}
	})
}
