package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecker_Readiness(t *testing.T) {
	c := NewChecker()
	assert.Equal(t, StatusFailed, c.ReadinessCheck().Status)

	c.SetReady(true)
	assert.Equal(t, StatusOK, c.ReadinessCheck().Status)
	assert.Equal(t, StatusOK, c.HealthCheck().Status)
}

func TestChecker_LivenessAlwaysOK(t *testing.T) {
	c := NewChecker()
	assert.Equal(t, StatusOK, c.LivenessCheck().Status)
}
