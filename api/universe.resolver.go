package api

import (
	"fmt"

	"frontierlab/internal/domain"
	"frontierlab/internal/universe"

	"github.com/gin-gonic/gin"
)

type generateUniverseRequest struct {
	Seed      int64 `json:"seed"`
	NumAssets int   `json:"numAssets" binding:"required"`
}

type generateUniverseResponse struct {
	Universe domain.Universe `json:"universe"`
}

func (m ApiHandler) generateUniverse(c *gin.Context) {
	var req generateUniverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to parse request: %w", err), c, 400)
		return
	}

	u, err := universe.Generate(req.Seed, req.NumAssets)
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to generate universe: %w", err), c, 400)
		return
	}

	c.JSON(200, generateUniverseResponse{Universe: *u})
}
