package service

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	tracer = otel.Tracer("service.api")
	meter  = otel.Meter("service.api")
)

// newCounter creates a counter on the global meter, falling back to a no-op on error.
func newCounter(name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		slog.Warn("Failed to create counter", "name", name, "error", err)
		return noop.Int64Counter{}
	}
	return counter
}
