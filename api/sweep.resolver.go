package api

import (
	"fmt"
	"time"

	"frontierlab/internal/domain"
	"frontierlab/internal/frontier"
	"frontierlab/internal/repository"
	"frontierlab/internal/universe"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type sweepRequest struct {
	// Either a universe is supplied directly, or one is generated from
	// Seed/NumAssets.
	Universe  *domain.Universe `json:"universe"`
	Seed      int64            `json:"seed"`
	NumAssets int              `json:"numAssets"`

	Samples     int      `json:"samples"`
	MinExponent *float64 `json:"minExponent"`
	MaxExponent *float64 `json:"maxExponent"`
}

type sweepResponse struct {
	RunID    uuid.UUID       `json:"runId"`
	Frontier domain.Frontier `json:"frontier"`
}

const (
	defaultSamples     = 100
	defaultMinExponent = -2
	defaultMaxExponent = 3
)

func (m ApiHandler) sweep(c *gin.Context) {
	var req sweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}

	var u *domain.Universe
	if req.Universe != nil {
		u = req.Universe
		if err := u.Validate(); err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid universe: %w", err), c, 400)
			return
		}
	} else {
		if req.NumAssets <= 0 {
			returnErrorJsonCode(fmt.Errorf("either universe or numAssets must be provided"), c, 400)
			return
		}
		generated, err := universe.Generate(req.Seed, req.NumAssets)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("failed to generate universe: %w", err), c, 400)
			return
		}
		u = generated
	}

	samples := req.Samples
	if samples == 0 {
		samples = defaultSamples
	}
	minExponent := float64(defaultMinExponent)
	if req.MinExponent != nil {
		minExponent = *req.MinExponent
	}
	maxExponent := float64(defaultMaxExponent)
	if req.MaxExponent != nil {
		maxExponent = *req.MaxExponent
	}

	gammas, err := frontier.GammaGrid(minExponent, maxExponent, samples)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid gamma grid: %w", err), c, 400)
		return
	}

	result, err := m.SweepService.Sweep(c.Request.Context(), frontier.SweepInput{
		Universe: *u,
		Gammas:   gammas,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("sweep failed: %w", err), c)
		return
	}

	run := &repository.Run{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC(),
		Frontier:  *result,
	}
	if err := m.RunRepository.Add(run); err != nil {
		returnErrorJson(fmt.Errorf("failed to persist run: %w", err), c)
		return
	}

	c.JSON(200, sweepResponse{
		RunID:    run.RunID,
		Frontier: *result,
	})
}
