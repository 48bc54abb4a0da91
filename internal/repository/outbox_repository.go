package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// OutboxRepository persists queued notifications and their delivery state.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg *domain.OutboxMessage) error
	ClaimDue(ctx context.Context, limit int, lease time.Duration) ([]domain.OutboxMessage, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempts, maxAttempts int, nextAttemptAt time.Time, lastError string) (domain.OutboxStatus, error)
	ListForAgent(ctx context.Context, agentID string, filter domain.NotificationFilter) ([]domain.OutboxMessage, int, error)
}

type outboxRepository struct {
	procs *Procedures
}

// NewOutboxRepository constructs an OutboxRepository.
func NewOutboxRepository(procs *Procedures) OutboxRepository {
	return &outboxRepository{procs: procs}
}

const outboxColumns = `notification_id, agent_id, channel, recipient, template, subject, body, payload,
	status, attempts, max_attempts, next_attempt_at, COALESCE(last_error, ''), created_at, sent_at`

func (r *outboxRepository) Enqueue(ctx context.Context, msg *domain.OutboxMessage) error {
	db, err := r.procs.DB()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return err
	}
	if msg.MaxAttempts <= 0 {
		msg.MaxAttempts = 5
	}
	var status string
	err = db.QueryRow(ctx, `
		INSERT INTO notification_outbox (agent_id, channel, recipient, template, subject, body, payload, max_attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING notification_id, status, next_attempt_at, created_at
	`, msg.AgentID, string(msg.Channel), msg.Recipient, msg.Template, msg.Subject, msg.Body, payload, msg.MaxAttempts,
	).Scan(&msg.ID, &status, &msg.NextAttemptAt, &msg.CreatedAt)
	msg.Status = domain.OutboxStatus(status)
	return err
}

// ClaimDue leases up to limit due rows. Rows stuck in processing past their
// lease are reclaimed.
func (r *outboxRepository) ClaimDue(ctx context.Context, limit int, lease time.Duration) ([]domain.OutboxMessage, error) {
	db, err := r.procs.DB()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, `
		WITH due AS (
			SELECT notification_id
			FROM notification_outbox
			WHERE status IN ('pending', 'processing') AND next_attempt_at <= now()
			ORDER BY next_attempt_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE notification_outbox o
		SET status = 'processing', next_attempt_at = now() + $2::float8 * interval '1 second'
		FROM due
		WHERE o.notification_id = due.notification_id
		RETURNING `+outboxColumns, limit, lease.Seconds())
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanOutbox)
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	db, err := r.procs.DB()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		UPDATE notification_outbox
		SET status = 'sent', attempts = attempts + 1, sent_at = now(), last_error = NULL
		WHERE notification_id = $1
	`, id)
	return err
}

// MarkFailed records a failed attempt. The row returns to pending until
// attempts reaches maxAttempts, after which it is parked as failed.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, attempts, maxAttempts int, nextAttemptAt time.Time, lastError string) (domain.OutboxStatus, error) {
	db, err := r.procs.DB()
	if err != nil {
		return "", err
	}
	status := domain.OutboxPending
	if attempts >= maxAttempts {
		status = domain.OutboxFailed
	}
	_, err = db.Exec(ctx, `
		UPDATE notification_outbox
		SET attempts = $2, status = $3, next_attempt_at = $4, last_error = $5
		WHERE notification_id = $1
	`, id, attempts, string(status), nextAttemptAt, lastError)
	return status, err
}

func (r *outboxRepository) ListForAgent(ctx context.Context, agentID string, f domain.NotificationFilter) ([]domain.OutboxMessage, int, error) {
	db, err := r.procs.DB()
	if err != nil {
		return nil, 0, err
	}
	page := f.Page.Normalize()
	rows, err := db.Query(ctx, `
		SELECT `+outboxColumns+`, count(*) OVER ()::integer
		FROM notification_outbox
		WHERE agent_id = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR channel = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`, agentID, text(f.Status), text(f.Channel), page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total := 0
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OutboxMessage, error) {
		return scanOutboxRow(row, &total)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func scanOutbox(row pgx.CollectableRow) (domain.OutboxMessage, error) {
	return scanOutboxRow(row)
}

func scanOutboxRow(row pgx.CollectableRow, extra ...any) (domain.OutboxMessage, error) {
	var (
		m       domain.OutboxMessage
		channel string
		status  string
		payload []byte
	)
	dest := []any{
		&m.ID,
		&m.AgentID,
		&channel,
		&m.Recipient,
		&m.Template,
		&m.Subject,
		&m.Body,
		&payload,
		&status,
		&m.Attempts,
		&m.MaxAttempts,
		&m.NextAttemptAt,
		&m.LastError,
		&m.CreatedAt,
		&m.SentAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return m, err
	}
	m.Channel = domain.NotificationChannel(channel)
	m.Status = domain.OutboxStatus(status)
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &m.Payload); err != nil {
			return m, err
		}
	}
	return m, nil
}
