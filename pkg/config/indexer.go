package config

import (
	"time"

	"github.com/cidgate/cidgate/pkg/indexer"
	"github.com/cidgate/cidgate/pkg/provider"
)

// IndexerConfig configures the background reindex loop of §4.5.
type IndexerConfig struct {
	IntervalSeconds uint `mapstructure:"interval_seconds" toml:"interval_seconds,omitempty"`
}

func (i IndexerConfig) Validate() error {
	return validateConfig(i)
}

// ToLoop builds an indexer.Loop over reg, defaulting to indexer.New's
// own interval when unset.
func (i IndexerConfig) ToLoop(reg *provider.Registry) *indexer.Loop {
	if i.IntervalSeconds == 0 {
		return indexer.New(reg)
	}
	return indexer.New(reg, indexer.WithInterval(time.Duration(i.IntervalSeconds)*time.Second))
}
