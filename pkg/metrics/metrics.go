// Package metrics defines the counters this gateway exports over the
// global OpenTelemetry MeterProvider, grounded on the teacher's
// pkg/telemetry.Counter wrapper but trimmed to the handful of
// instruments the ingestion and indexing paths actually need.
package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("cidgate")

var (
	ingestTotal      metric.Int64Counter
	ingestBytesTotal metric.Int64Counter
	reindexRuns      metric.Int64Counter
	reindexErrors    metric.Int64Counter
)

func init() {
	var err error
	ingestTotal, err = meter.Int64Counter("cidgate.ingest.total",
		metric.WithDescription("content objects ingested via POST /v1/data"))
	if err != nil {
		panic(err)
	}
	ingestBytesTotal, err = meter.Int64Counter("cidgate.ingest.bytes_total",
		metric.WithDescription("bytes ingested via POST /v1/data"),
		metric.WithUnit("By"))
	if err != nil {
		panic(err)
	}
	reindexRuns, err = meter.Int64Counter("cidgate.indexer.reindex_total",
		metric.WithDescription("provider Reindex calls completed by the indexer loop"))
	if err != nil {
		panic(err)
	}
	reindexErrors, err = meter.Int64Counter("cidgate.indexer.reindex_errors_total",
		metric.WithDescription("provider Reindex calls that returned an error"))
	if err != nil {
		panic(err)
	}
}

// RecordIngest counts a successful ingestion for the given provider.
func RecordIngest(ctx context.Context, providerID string, size int64) {
	attrs := metric.WithAttributes(attribute.String("provider.id", providerID))
	ingestTotal.Add(ctx, 1, attrs)
	ingestBytesTotal.Add(ctx, size, attrs)
}

// RecordReindex counts one provider's reindex pass, success or failure.
func RecordReindex(ctx context.Context, providerID string, err error) {
	attrs := metric.WithAttributes(attribute.String("provider.id", providerID))
	reindexRuns.Add(ctx, 1, attrs)
	if err != nil {
		reindexErrors.Add(ctx, 1, attrs)
	}
}
