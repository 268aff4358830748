// Package service orchestrates record lifecycle operations on top of the
// store contract. Every update follows the same protocol: load the current
// record, mutate the entity through its validating methods, then commit with
// the version the load observed. A concurrent commit in between surfaces as a
// conflict for the caller to resolve; the service never retries on its own.
package service

import (
	"context"
	"log/slog"
	"time"

	"daybook/internal/records/metrics"
	"daybook/pkg/requestcontext"
)

// Record kind labels used in logs and metrics.
const (
	kindContact     = "contact"
	kindTask        = "task"
	kindAppointment = "appointment"
)

// base holds collaborators shared by the record services.
type base struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(b *base)

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) {
		b.metrics = m
	}
}

func (b *base) logEvent(ctx context.Context, event, kind, id string, attributes ...any) {
	if b.logger == nil {
		return
	}
	args := append(attributes, "kind", kind, "record_id", id)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	b.logger.InfoContext(ctx, event, args...)
}

func (b *base) incrementCreated(kind string) {
	if b.metrics != nil {
		b.metrics.IncrementCreated(kind)
	}
}

func (b *base) incrementUpdated(kind string) {
	if b.metrics != nil {
		b.metrics.IncrementUpdated(kind)
	}
}

func (b *base) incrementDeleted(kind string) {
	if b.metrics != nil {
		b.metrics.IncrementDeleted(kind)
	}
}

func (b *base) incrementVersionConflict(kind string) {
	if b.metrics != nil {
		b.metrics.IncrementVersionConflict(kind)
	}
}

func (b *base) observeUpdate(kind string, start time.Time) {
	if b.metrics != nil {
		b.metrics.ObserveUpdate(kind, start)
	}
}
