// Package janitor periodically removes expired tokens and sessions.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("janitor")

// Task purges one kind of expired record and reports how many were removed.
type Task struct {
	Name  string
	Purge func(ctx context.Context) (int64, error)
}

// Janitor runs its tasks on a fixed interval until its context is cancelled.
type Janitor struct {
	interval time.Duration
	tasks    []Task
}

// New creates a new Janitor.
func New(interval time.Duration, tasks ...Task) *Janitor {
	return &Janitor{interval: interval, tasks: tasks}
}

// Run sweeps once immediately, then on every tick. It returns when ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Janitor started", "interval", j.interval, "tasks", len(j.tasks))
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Janitor stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs every task once. A failing task does not stop the others.
func (j *Janitor) Sweep(ctx context.Context) {
	for _, task := range j.tasks {
		sweepCtx, span := tracer.Start(ctx, "janitor.sweep", trace.WithAttributes(
			attribute.String("janitor.task", task.Name),
		))

		n, err := task.Purge(sweepCtx)
		if err != nil {
			slog.ErrorContext(sweepCtx, "Janitor task failed", "task", task.Name, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "purge failed")
			span.End()
			continue
		}
		span.SetAttributes(attribute.Int64("janitor.removed", n))
		if n > 0 {
			slog.InfoContext(sweepCtx, "Purged expired records", "task", task.Name, "removed", n)
		}
		span.End()
	}
}
