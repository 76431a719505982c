package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes a Checker's state over HTTP, matching the teacher's
// pkg/health.Handler route shape.
type Handler struct {
	checker *Checker
}

// NewHandler wraps checker for HTTP registration.
func NewHandler(checker *Checker) *Handler {
	return &Handler{checker: checker}
}

// Register mounts /healthz, /livez, and /readyz onto e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/livez", h.Liveness)
	e.GET("/readyz", h.Readiness)
}

func (h *Handler) Health(c echo.Context) error {
	resp := h.checker.HealthCheck()
	status := http.StatusOK
	if resp.Status != StatusOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}

func (h *Handler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, h.checker.LivenessCheck())
}

func (h *Handler) Readiness(c echo.Context) error {
	resp := h.checker.ReadinessCheck()
	status := http.StatusOK
	if resp.Status != StatusOK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}
