package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cidgate/cidgate/pkg/metrics"
)

func TestRecordIngestDoesNotPanic(t *testing.T) {
	metrics.RecordIngest(context.Background(), "provider-1", 1024)
}

func TestRecordReindexDoesNotPanic(t *testing.T) {
	metrics.RecordReindex(context.Background(), "provider-1", nil)
	metrics.RecordReindex(context.Background(), "provider-1", errors.New("boom"))
}
