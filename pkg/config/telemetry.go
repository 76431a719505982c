package config

import (
	"time"

	"github.com/cidgate/cidgate/lib/telemetry/metrics"
	"github.com/cidgate/cidgate/lib/telemetry/traces"
)

// CollectorConfig is the TOML shape of a single OTLP/HTTP collector
// endpoint, shared by the metrics and traces sections.
type CollectorConfig struct {
	Endpoint               string            `mapstructure:"endpoint" validate:"required" toml:"endpoint"`
	Insecure               bool              `mapstructure:"insecure" toml:"insecure,omitempty"`
	Headers                map[string]string `mapstructure:"headers" toml:"headers,omitempty"`
	PublishIntervalSeconds uint              `mapstructure:"publish_interval_seconds" toml:"publish_interval_seconds,omitempty"`
}

func (c CollectorConfig) publishInterval() time.Duration {
	if c.PublishIntervalSeconds == 0 {
		return 15 * time.Second
	}
	return time.Duration(c.PublishIntervalSeconds) * time.Second
}

// TelemetryConfig is optional: an empty Metrics/Traces list yields noop
// providers, matching lib/telemetry's behavior when no collectors are
// configured.
type TelemetryConfig struct {
	Environment string            `mapstructure:"environment" toml:"environment,omitempty"`
	Metrics     []CollectorConfig `mapstructure:"metrics" toml:"metrics,omitempty"`
	Traces      []CollectorConfig `mapstructure:"traces" toml:"traces,omitempty"`
}

func (t TelemetryConfig) ToMetricsConfig() metrics.Config {
	cfg := metrics.Config{}
	for _, c := range t.Metrics {
		cfg.Collectors = append(cfg.Collectors, metrics.CollectorConfig{
			Endpoint:        c.Endpoint,
			Insecure:        c.Insecure,
			Headers:         c.Headers,
			PublishInterval: c.publishInterval(),
		})
	}
	return cfg
}

func (t TelemetryConfig) ToTracesConfig() traces.Config {
	cfg := traces.Config{}
	for _, c := range t.Traces {
		cfg.Collectors = append(cfg.Collectors, traces.CollectorConfig{
			Endpoint:        c.Endpoint,
			Insecure:        c.Insecure,
			Headers:         c.Headers,
			PublishInterval: c.publishInterval(),
		})
	}
	return cfg
}
