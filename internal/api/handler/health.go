package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

type livenessResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// Liveness reports that the process is up and for how many seconds.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  livenessResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Status: "ok",
		Uptime: h.now().Sub(h.started).Seconds(),
	})
}

// Welcome handles GET /.
func (h *HealthHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Welcome to the Unified Cloud Marketplace Management System API.",
	})
}

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// ReadinessHandler handles GET /health/ready. Every registered dependency is
// pinged; any failure marks the service degraded. Ping errors are only shown
// outside production.
type ReadinessHandler struct {
	checks     map[string]Checker
	production bool
}

func NewReadinessHandler(checks map[string]Checker, production bool) *ReadinessHandler {
	return &ReadinessHandler{checks: checks, production: production}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness checks dependency connectivity.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  readinessResponse
// @Failure      503  {object}  readinessResponse
// @Router       /health/ready [get]
func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			st := dependencyStatus{Status: "unhealthy"}
			if !h.production {
				st.Error = err.Error()
			}
			deps[name] = st
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
