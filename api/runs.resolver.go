package api

import (
	"fmt"

	"frontierlab/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type listRunsResponse struct {
	Runs []repository.Run `json:"runs"`
}

func (m ApiHandler) listRuns(c *gin.Context) {
	runs, err := m.RunRepository.List()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to list runs: %w", err), c)
		return
	}
	c.JSON(200, listRunsResponse{Runs: runs})
}

func (m ApiHandler) getRun(c *gin.Context) {
	run, ok := m.lookupRun(c)
	if !ok {
		return
	}
	c.JSON(200, run)
}

func (m ApiHandler) lookupRun(c *gin.Context) (*repository.Run, bool) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid run id: %w", err), c, 400)
		return nil, false
	}
	run, err := m.RunRepository.Get(runID)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return nil, false
	}
	return run, true
}
