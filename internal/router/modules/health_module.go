package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/internal/container"
	"github.com/DonOmbisi/kilimo3/pkg/response"
)

// HealthModule exposes a liveness probe that also reports backing store
// reachability. A degraded dependency does not fail the probe.
type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{}
		if pool := container.GetPGPool(); pool != nil {
			if err := pool.Ping(ctx); err != nil {
				checks["postgres"] = "down"
			} else {
				checks["postgres"] = "up"
			}
		}
		if rdb := container.GetRedis(); rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
			} else {
				checks["redis"] = "up"
			}
		}

		response.Success(c, http.StatusOK, gin.H{
			"app":    container.GetConfig().AppName,
			"checks": checks,
		}, "ok", nil)
	})
}
