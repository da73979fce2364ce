// Package sink fans recorded audit entries out to Kafka for downstream
// consumers (compliance archival, SIEM). The store remains the source of
// truth for the in-app audit log; publishing here is fire-and-forget.
package sink

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kgo"

	"taskdeck/internal/audit"
)

var publishFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "taskdeck_audit_sink_publish_failures_total",
	Help: "Audit entries that could not be published to Kafka",
})

// Kafka publishes audit entries to a single topic, keyed by acting user so a
// user's trail stays ordered within a partition.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafka builds a sink from seed brokers. Returns nil when no brokers are
// configured so callers can wire it unconditionally.
func NewKafka(brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, err
	}
	return &Kafka{client: client, topic: topic, logger: logger}, nil
}

// Publish sends the entry asynchronously. Failures are logged and counted;
// they never reach the caller (audit fan-out is observability, not a
// transactional participant).
func (k *Kafka) Publish(ctx context.Context, entry audit.Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		publishFailures.Inc()
		k.logger.ErrorContext(ctx, "marshal audit entry for kafka", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(entry.UserID.String()),
		Value: payload,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			publishFailures.Inc()
			k.logger.Error("publish audit entry to kafka",
				"topic", k.topic,
				"action", entry.Action.String(),
				"error", err,
			)
		}
	})
}

// Close flushes buffered records and releases the client.
func (k *Kafka) Close(ctx context.Context) error {
	if err := k.client.Flush(ctx); err != nil {
		return err
	}
	k.client.Close()
	return nil
}
