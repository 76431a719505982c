// Package indexer implements the background reindex loop of §4.5: one
// goroutine walking every configured provider each tick, logging and
// swallowing per-provider errors so a single bad backend never starves
// the rest. Structured logging and the functional-options constructor
// follow the teacher's pkg/pdp/scheduler.TaskEngine shape, simplified
// down from its session-based task model since this loop has no
// persisted work queue to recover.
package indexer

import (
	"context"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/cidgate/cidgate/pkg/metrics"
	"github.com/cidgate/cidgate/pkg/provider"
)

var log = logging.Logger("indexer")

// Loop drives periodic reindexing across a fixed provider registry.
type Loop struct {
	registry *provider.Registry
	interval time.Duration
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval overrides the default tick interval.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) { l.interval = d }
}

// New builds a Loop over every provider registered in reg. The default
// interval is 5 minutes.
func New(reg *provider.Registry, opts ...Option) *Loop {
	l := &Loop{registry: reg, interval: 5 * time.Minute}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run blocks, ticking every interval until ctx is canceled. Each tick
// calls Reindex sequentially on every provider that implements
// Reindexer; errors are logged and do not stop the tick.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info("indexer loop stopped")
			return
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

func (l *Loop) tick(ctx context.Context) {
	for _, p := range l.registry.All() {
		r, ok := provider.AsReindexer(p)
		if !ok {
			continue
		}
		err := r.Reindex(ctx)
		metrics.RecordReindex(ctx, p.ProviderID(), err)
		if err != nil {
			log.Errorf("reindexing provider %s failed: %s", p.ProviderID(), err)
		}
	}
}
