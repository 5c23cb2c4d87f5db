package tqsdk

import (
	"context"
	"errors"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/0xc0d3d00d/tqfeed/internal/tqsdk"

const (
	queryKindBar  = "bar"
	queryKindTick = "tick"
)

type metrics struct {
	sessions metric.Int64Counter
	queries  metric.Int64Counter
	records  metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	meter := mp.Meter(meterName)

	sessions, err := meter.Int64Counter(
		"tqfeed.sessions",
		metric.WithDescription("Provider sessions attempted, by result."),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	queries, err := meter.Int64Counter(
		"tqfeed.queries",
		metric.WithDescription("History queries served, by kind and outcome."),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return nil, err
	}

	records, err := meter.Int64Counter(
		"tqfeed.records",
		metric.WithDescription("Records returned by history queries."),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"tqfeed.query.duration",
		metric.WithDescription("History query latency including session setup and teardown."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		sessions: sessions,
		queries:  queries,
		records:  records,
		duration: duration,
	}, nil
}

func (m *metrics) recordSession(ctx context.Context, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrMissingCredentials):
		result = "missing_credentials"
	case err != nil:
		result = "error"
	}
	m.sessions.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *metrics) recordQuery(ctx context.Context, kind string, records int, err error, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", queryOutcome(records, err)),
	)
	m.queries.Add(ctx, 1, attrs)
	m.records.Add(ctx, int64(records), metric.WithAttributes(attribute.String("kind", kind)))
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

func queryOutcome(records int, err error) string {
	switch {
	case errors.Is(err, domain.ErrNoData):
		return "no_data"
	case err != nil:
		return "error"
	case records == 0:
		return "empty"
	default:
		return "ok"
	}
}
