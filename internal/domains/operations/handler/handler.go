package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"codecamp-backend/internal/shared/response"
	"codecamp-backend/pkg/logger"
)

// Reloader được implement bởi *config.Store
type Reloader interface {
	Reload() error
}

// CheckFunc kiểm tra một dependency (database, cache...). nil = healthy.
type CheckFunc func(ctx context.Context) error

type OperationsHandler struct {
	config  Reloader
	version string
	checks  map[string]CheckFunc
}

func NewOperationsHandler(cfg Reloader, version string, checks map[string]CheckFunc) *OperationsHandler {
	return &OperationsHandler{
		config:  cfg,
		version: version,
		checks:  checks,
	}
}

// ════════════════════════════════════════════════════════════════
// RELOAD CONFIG: OPTIONS /v1/operations/reloadconfig
// ════════════════════════════════════════════════════════════════

func (h *OperationsHandler) ReloadConfig(c *gin.Context) {
	if err := h.config.Reload(); err != nil {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("config reload failed")
		response.InternalServerError(c, "Configuration reload failed")
		return
	}

	response.Success(c, http.StatusOK, "Configuration reloaded", nil)
}

// ════════════════════════════════════════════════════════════════
// HEALTH: GET /v1/health
// ════════════════════════════════════════════════════════════════

func (h *OperationsHandler) Health(c *gin.Context) {
	status := "ok"
	services := gin.H{}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		err := h.checks[name](ctx)
		cancel()

		if err != nil {
			services[name] = "error: " + err.Error()
			status = "degraded"
			continue
		}
		services[name] = "ok"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.version,
		"services":  services,
	})
}

// RegisterRoutes mounts health and operations routes on rg.
func (h *OperationsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)

	ops := rg.Group("/operations")
	{
		ops.OPTIONS("/reloadconfig", h.ReloadConfig)
	}
}
