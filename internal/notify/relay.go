package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/spec-kit/agentdesk/internal/config"
	"github.com/spec-kit/agentdesk/internal/domain"
)

// Outcome is the event emitted when a notification is delivered or parked.
type Outcome struct {
	NotificationID string                     `json:"notification_id"`
	AgentID        string                     `json:"agent_id"`
	Channel        domain.NotificationChannel `json:"channel"`
	Template       string                     `json:"template"`
	Status         domain.OutboxStatus        `json:"status"`
	Attempts       int                        `json:"attempts"`
	Error          string                     `json:"error,omitempty"`
	OccurredAt     time.Time                  `json:"occurred_at"`
}

// OutcomePublisher forwards delivery outcomes to an event stream.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, outcome Outcome) error
	Close() error
}

// NewRelay returns a Kafka relay, or a no-op publisher when no brokers are set.
func NewRelay(cfg config.KafkaConfig) OutcomePublisher {
	if len(cfg.Brokers) == 0 {
		return NoopPublisher{}
	}
	return &KafkaRelay{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  cfg.Brokers,
			Balancer: &kafka.Hash{},
		}),
		prefix: cfg.TopicPrefix,
	}
}

// KafkaRelay publishes outcomes keyed by agent id.
type KafkaRelay struct {
	writer *kafka.Writer
	prefix string
}

// OutcomeTopic names the topic for a terminal status.
func OutcomeTopic(prefix string, status domain.OutboxStatus) string {
	return prefix + "notification." + string(status) + ".v1"
}

func (r *KafkaRelay) PublishOutcome(ctx context.Context, outcome Outcome) error {
	value, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	topic := OutcomeTopic(r.prefix, outcome.Status)
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(outcome.AgentID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(outcome.NotificationID)},
			{Key: "event_type", Value: []byte(topic)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)
	return r.writer.WriteMessages(ctx, msg)
}

func (r *KafkaRelay) Close() error {
	return r.writer.Close()
}

// NoopPublisher discards outcomes.
type NoopPublisher struct{}

func (NoopPublisher) PublishOutcome(context.Context, Outcome) error { return nil }
func (NoopPublisher) Close() error                                  { return nil }

func injectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	carrier := &headerCarrier{headers: headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return carrier.headers
}

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
