package handler

import (
	"context"
	"net/http"
	"time"

	"kioscopos/internal/infra"
	"kioscopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthDeps are the collaborators the health check probes. Redis and the
// mailer are optional; a nil one is reported as "disabled".
type HealthDeps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Mailer *infra.Mailer
}

// Health checks DB and Redis connectivity; never exposes credentials or internals.
// Only the database decides the status code: without Redis the shop keeps selling.
func Health(deps HealthDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := deps.DB.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		var pendientes int64
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else if n, err := worker.DLQPendientes(ctx, deps.Redis); err == nil {
				pendientes = n
			}
		}

		mailStatus := "disabled"
		if deps.Mailer != nil {
			mailStatus = deps.Mailer.Estado().String()
		}

		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":         status == http.StatusOK,
			"db":         dbStatus,
			"redis":      redisStatus,
			"dlq":        pendientes,
			"mail":       mailStatus,
			"checked_at": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
