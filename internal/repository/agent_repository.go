package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// AgentRepository defines persistence access for agent accounts.
type AgentRepository interface {
	Register(ctx context.Context, agent *domain.Agent) (domain.MutationResult, error)
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	Update(ctx context.Context, id string, patch domain.AgentProfilePatch) (domain.MutationResult, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (domain.MutationResult, error)
	RecordLogin(ctx context.Context, id string) error
}

type agentRepository struct {
	procs *Procedures
}

// NewAgentRepository constructs an AgentRepository.
func NewAgentRepository(procs *Procedures) AgentRepository {
	return &agentRepository{procs: procs}
}

func (r *agentRepository) Register(ctx context.Context, a *domain.Agent) (domain.MutationResult, error) {
	res, err := r.procs.Mutate(ctx, "sp_register_agent", a.FirstName, a.LastName, a.Email, nullIfBlank(a.Phone), a.PasswordHash)
	if err == nil && res.Success {
		a.ID = res.ID
	}
	return res, err
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return r.one(ctx, "sp_get_agent", id)
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	return r.one(ctx, "sp_get_agent_by_email", email)
}

func (r *agentRepository) Update(ctx context.Context, id string, p domain.AgentProfilePatch) (domain.MutationResult, error) {
	var prefEmail, prefSMS, prefWhatsApp, prefPush, prefDigest *bool
	if p.Preferences != nil {
		prefEmail = &p.Preferences.Email
		prefSMS = &p.Preferences.SMS
		prefWhatsApp = &p.Preferences.WhatsApp
		prefPush = &p.Preferences.Push
		prefDigest = &p.Preferences.DailyDigest
	}
	return r.procs.Mutate(ctx, "sp_update_agent",
		id,
		p.FirstName,
		p.LastName,
		p.Phone,
		p.AgencyName,
		p.LicenseNumber,
		p.Timezone,
		prefEmail,
		prefSMS,
		prefWhatsApp,
		prefPush,
		prefDigest,
	)
}

func (r *agentRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_agent_password", id, passwordHash)
}

func (r *agentRepository) RecordLogin(ctx context.Context, id string) error {
	_, err := r.procs.Mutate(ctx, "sp_record_agent_login", id)
	return err
}

func (r *agentRepository) one(ctx context.Context, name string, arg any) (*domain.Agent, error) {
	rows, err := r.procs.Query(ctx, name, arg)
	if err != nil {
		return nil, err
	}
	agent, err := pgx.CollectOneRow(rows, scanAgent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func scanAgent(row pgx.CollectableRow) (domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.PasswordHash,
		&a.AgencyName,
		&a.LicenseNumber,
		&a.Timezone,
		&a.Preferences.Email,
		&a.Preferences.SMS,
		&a.Preferences.WhatsApp,
		&a.Preferences.Push,
		&a.Preferences.DailyDigest,
		&a.IsActive,
		&a.LastLoginAt,
		&a.CreatedDate,
		&a.ModifiedDate,
	)
	return a, err
}
