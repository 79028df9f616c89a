package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"tariften-backend/internal/core/store"
	"tariften-backend/internal/infrastructure/config"
)

// HealthResponse is the health check body.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Handler serves the health endpoints.
type Handler struct {
	cfg   *config.Config
	store store.ContentStore
}

func NewHandler(cfg *config.Config, st store.ContentStore) *Handler {
	return &Handler{cfg: cfg, store: st}
}

// HealthCheck reports process health and runtime stats.
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"alloc_mb":   m.Alloc / 1024 / 1024,
			"go_version": runtime.Version(),
		},
	})
}

// ReadinessCheck reports whether the content store answers.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// LivenessCheck always succeeds while the process runs.
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
