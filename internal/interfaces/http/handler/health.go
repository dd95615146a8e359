package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradeerp/backend/internal/infrastructure/logger"
	"github.com/tradeerp/backend/internal/infrastructure/persistence"
	"github.com/tradeerp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// DatabasePinger checks database connectivity
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

type poolStatsProvider interface {
	Stats() (persistence.ConnectionStats, error)
}

// HealthHandler reports service liveness and database readiness
type HealthHandler struct {
	BaseHandler
	db        DatabasePinger
	version   string
	startTime time.Time
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`

	Pool *persistence.ConnectionStats `json:"pool,omitempty"`
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db DatabasePinger, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// Health answers 200 when the database is reachable and 503 otherwise
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logger.L(c.Request.Context()).Warn("health check failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Result:  resp,
			Message: "Database is unreachable",
			Error:   &dto.ErrorInfo{Code: dto.ErrCodeUnavailable, RequestID: c.GetString(logger.RequestIDKey)},
		})
		return
	}

	if sp, ok := h.db.(poolStatsProvider); ok {
		if stats, err := sp.Stats(); err == nil {
			resp.Pool = &stats
		}
	}
	h.Success(c, resp)
}
