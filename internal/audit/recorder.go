package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"taskdeck/pkg/requestcontext"
)

var (
	entriesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskdeck_audit_entries_recorded_total",
		Help: "Audit entries successfully appended, by action",
	}, []string{"action"})
	recordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskdeck_audit_record_failures_total",
		Help: "Audit append failures (primary operations are not rolled back)",
	})
)

// Sink receives a copy of every recorded entry, fire-and-forget. Used to fan
// audit entries out to Kafka for downstream consumers.
type Sink interface {
	Publish(ctx context.Context, entry Entry)
}

// Recorder appends audit entries. It assigns the entry ID and server-side
// timestamp; callers supply everything else.
type Recorder struct {
	store  Store
	logger *slog.Logger
	sink   Sink
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithSink attaches a fan-out sink. Entries reach the sink only after the
// store accepted them, so the sink never sees entries the log does not hold.
func WithSink(sink Sink) Option {
	return func(r *Recorder) { r.sink = sink }
}

func NewRecorder(store Store, logger *slog.Logger, opts ...Option) *Recorder {
	r := &Recorder{store: store, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends the entry and returns it with ID and timestamp assigned.
// It never rejects on business grounds; only storage failures surface.
func (r *Recorder) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}
	if err := r.store.Append(ctx, entry); err != nil {
		recordFailures.Inc()
		return Entry{}, err
	}
	entriesRecorded.WithLabelValues(entry.Action.String()).Inc()
	if r.sink != nil {
		r.sink.Publish(ctx, entry)
	}
	return entry, nil
}

// Emit is the best-effort variant used after a primary mutation already
// succeeded: a failed append is surfaced to operational logging and metrics
// but never rolls back or fails the caller.
func (r *Recorder) Emit(ctx context.Context, entry Entry) {
	if _, err := r.Record(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "audit append failed",
			"action", entry.Action.String(),
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
