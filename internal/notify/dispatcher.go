package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
)

const maxBackoff = time.Hour

// Backoff returns the retry delay after the given number of failed attempts:
// base * 2^(attempts-1), capped at one hour.
func Backoff(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		base = 30 * time.Second
	}
	if attempts < 1 {
		attempts = 1
	}
	delay := base
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}

// DispatcherConfig tunes the outbox poller.
type DispatcherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	BaseBackoff  time.Duration
	ClaimLease   time.Duration
}

// Dispatcher drains the notification outbox through the channel senders.
type Dispatcher struct {
	outbox    repository.OutboxRepository
	senders   Senders
	publisher OutcomePublisher
	cfg       DispatcherConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewDispatcher builds a Dispatcher.
func NewDispatcher(outbox repository.OutboxRepository, senders Senders, publisher OutcomePublisher, cfg DispatcherConfig, logger *zap.Logger) *Dispatcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 25
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = 2 * time.Minute
	}
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		outbox:    outbox,
		senders:   senders,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run polls until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.logger.Info("notification dispatcher started", zap.Duration("poll_interval", d.cfg.PollInterval))
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			if _, err := d.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				d.logger.Error("outbox batch failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch claims one batch of due messages and attempts delivery. It
// returns the number of messages delivered.
func (d *Dispatcher) ProcessBatch(ctx context.Context) (int, error) {
	msgs, err := d.outbox.ClaimDue(ctx, d.cfg.BatchSize, d.cfg.ClaimLease)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, msg := range msgs {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}
		ok, err := d.deliver(ctx, msg)
		if err != nil {
			d.logger.Error("outbox state update failed", zap.String("notification_id", msg.ID), zap.Error(err))
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

func (d *Dispatcher) deliver(ctx context.Context, msg domain.OutboxMessage) (bool, error) {
	sender, ok := d.senders.For(msg.Channel)
	var sendErr error
	if !ok {
		sendErr = errUnknownChannel(msg.Channel)
	} else {
		sendErr = sender.Send(ctx, Message{To: msg.Recipient, Subject: msg.Subject, Body: msg.Body})
	}

	if sendErr == nil {
		if err := d.outbox.MarkSent(ctx, msg.ID); err != nil {
			return false, err
		}
		d.publish(ctx, msg, domain.OutboxSent, msg.Attempts+1, "")
		return true, nil
	}

	attempts := msg.Attempts + 1
	next := d.now().Add(Backoff(d.cfg.BaseBackoff, attempts))
	status, err := d.outbox.MarkFailed(ctx, msg.ID, attempts, msg.MaxAttempts, next, sendErr.Error())
	if err != nil {
		return false, err
	}
	d.logger.Warn("notification delivery failed",
		zap.String("notification_id", msg.ID),
		zap.String("channel", string(msg.Channel)),
		zap.Int("attempts", attempts),
		zap.String("status", string(status)),
		zap.Error(sendErr))
	if status == domain.OutboxFailed {
		d.publish(ctx, msg, domain.OutboxFailed, attempts, sendErr.Error())
	}
	return false, nil
}

func (d *Dispatcher) publish(ctx context.Context, msg domain.OutboxMessage, status domain.OutboxStatus, attempts int, lastErr string) {
	err := d.publisher.PublishOutcome(ctx, Outcome{
		NotificationID: msg.ID,
		AgentID:        msg.AgentID,
		Channel:        msg.Channel,
		Template:       msg.Template,
		Status:         status,
		Attempts:       attempts,
		Error:          lastErr,
		OccurredAt:     d.now().UTC(),
	})
	if err != nil {
		d.logger.Warn("outcome publish failed", zap.String("notification_id", msg.ID), zap.Error(err))
	}
}

type errUnknownChannel domain.NotificationChannel

func (e errUnknownChannel) Error() string {
	return "no sender for channel " + string(e)
}
