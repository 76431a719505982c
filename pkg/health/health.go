// Package health implements the ambient /healthz, /livez, /readyz
// surface, grounded on the teacher's pkg/health.Checker (liveness is
// always ok once the process is up; readiness flips once startup
// finishes wiring providers and the DB).
package health

import (
	"sync"
	"time"

	"github.com/cidgate/cidgate/pkg/build"
)

// Status is the outcome of a health check.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Response is the JSON body returned by every health endpoint.
type Response struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Checks    []Check   `json:"checks,omitempty"`
}

// Check is one named sub-result folded into a combined health check.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// Checker tracks gateway readiness: whether the repo, route store, and
// provider registry have finished initializing.
type Checker struct {
	mu    sync.RWMutex
	ready bool
}

// NewChecker returns a Checker that starts not-ready; callers flip
// readiness with SetReady once startup completes.
func NewChecker() *Checker {
	return &Checker{}
}

// SetReady sets the readiness state.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady reports the current readiness state.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// LivenessCheck always reports ok: it only proves the process is
// scheduling goroutines, not that it is useful yet.
func (c *Checker) LivenessCheck() Response {
	return Response{Status: StatusOK, Timestamp: time.Now().UTC(), Version: build.Version}
}

// ReadinessCheck reports whether startup has finished.
func (c *Checker) ReadinessCheck() Response {
	status := StatusOK
	if !c.IsReady() {
		status = StatusFailed
	}
	return Response{Status: status, Timestamp: time.Now().UTC(), Version: build.Version}
}

// HealthCheck folds liveness and readiness into one combined response.
func (c *Checker) HealthCheck() Response {
	liveness := c.LivenessCheck()
	readiness := c.ReadinessCheck()
	status := StatusOK
	if readiness.Status != StatusOK {
		status = StatusFailed
	}
	return Response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
		Checks: []Check{
			{Name: "liveness", Status: liveness.Status},
			{Name: "readiness", Status: readiness.Status},
		},
	}
}
