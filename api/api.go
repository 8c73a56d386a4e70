package api

import (
	"fmt"
	"time"

	"frontierlab/internal/frontier"
	"frontierlab/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiHandler struct {
	SweepService  *frontier.Service
	RunRepository repository.RunRepository
	Logger        *zap.SugaredLogger
}

func (m ApiHandler) StartApi(port int) error {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to frontierlab"})
	})
	router.POST("/universe", m.generateUniverse)
	router.POST("/sweep", m.sweep)
	router.GET("/runs", m.listRuns)
	router.GET("/runs/:id", m.getRun)
	router.GET("/runs/:id/frontier.png", m.frontierChart)
	router.GET("/runs/:id/allocations.png", m.allocationChart)

	return router.Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	zap.S().Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	if m.Logger != nil {
		m.Logger.Infow("request handled",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"durationMs", time.Since(start).Milliseconds(),
		)
	}
}
