package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// PasswordResetRepository manages password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, agentID, token string, expiresAt time.Time) (domain.MutationResult, error)
	GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) (domain.MutationResult, error)
}

type passwordResetRepository struct {
	procs *Procedures
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository(procs *Procedures) PasswordResetRepository {
	return &passwordResetRepository{procs: procs}
}

// Create stores a token and supersedes any outstanding token for the agent.
func (r *passwordResetRepository) Create(ctx context.Context, agentID, token string, expiresAt time.Time) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_create_password_reset", agentID, token, expiresAt)
}

func (r *passwordResetRepository) GetByToken(ctx context.Context, tokenStr string) (*domain.PasswordResetToken, error) {
	rows, err := r.procs.Query(ctx, "sp_get_password_reset", tokenStr)
	if err != nil {
		return nil, err
	}
	token, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (domain.PasswordResetToken, error) {
		var t domain.PasswordResetToken
		err := row.Scan(&t.ID, &t.AgentID, &t.Token, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
		return t, err
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_consume_password_reset", id)
}
