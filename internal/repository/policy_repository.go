package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// PolicyRepository defines persistence access for policies.
type PolicyRepository interface {
	Create(ctx context.Context, agentID string, draft domain.PolicyDraft) (domain.MutationResult, error)
	Update(ctx context.Context, agentID, id string, patch domain.PolicyPatch) (domain.MutationResult, error)
	Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	GetByID(ctx context.Context, agentID, id string) (*domain.Policy, error)
	List(ctx context.Context, agentID string, filter domain.PolicyFilter) ([]domain.Policy, int, error)
	Expiring(ctx context.Context, agentID string, today domain.Date, days int) ([]domain.Policy, error)
	Statistics(ctx context.Context, agentID string, today domain.Date) (*domain.PolicyStatistics, error)
}

type policyRepository struct {
	procs *Procedures
}

// NewPolicyRepository returns a procedure-backed implementation.
func NewPolicyRepository(procs *Procedures) PolicyRepository {
	return &policyRepository{procs: procs}
}

func (r *policyRepository) Create(ctx context.Context, agentID string, d domain.PolicyDraft) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_create_policy",
		agentID,
		d.ClientID,
		d.PolicyNumber,
		d.PolicyName,
		d.PolicyType,
		d.CompanyName,
		string(d.Status),
		dateParam(d.StartDate),
		optDateParam(d.EndDate),
		d.PremiumAmount,
		d.CoverageAmount,
		string(d.PremiumFrequency),
		d.Notes,
	)
}

func (r *policyRepository) Update(ctx context.Context, agentID, id string, p domain.PolicyPatch) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_policy",
		id,
		agentID,
		p.PolicyNumber,
		p.PolicyName,
		p.PolicyType,
		p.CompanyName,
		text(p.Status),
		optDateParam(p.StartDate),
		optDateParam(p.EndDate),
		p.PremiumAmount,
		p.CoverageAmount,
		text(p.PremiumFrequency),
		p.Notes,
	)
}

func (r *policyRepository) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_delete_policy", id, agentID)
}

func (r *policyRepository) GetByID(ctx context.Context, agentID, id string) (*domain.Policy, error) {
	rows, err := r.procs.Query(ctx, "sp_get_policy", id, agentID)
	if err != nil {
		return nil, err
	}
	p, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (domain.Policy, error) {
		return scanPolicyRow(row)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *policyRepository) List(ctx context.Context, agentID string, f domain.PolicyFilter) ([]domain.Policy, int, error) {
	page := f.Page.Normalize()
	rows, err := r.procs.Query(ctx, "sp_list_policies",
		agentID,
		f.ClientID,
		text(f.Status),
		nullIfBlankPtr(f.PolicyType),
		nullIfBlankPtr(f.SearchTerm),
		page.Size,
		page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Policy, error) {
		return scanPolicyRow(row, &total)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *policyRepository) Expiring(ctx context.Context, agentID string, today domain.Date, days int) ([]domain.Policy, error) {
	rows, err := r.procs.Query(ctx, "sp_get_expiring_policies", agentID, dateParam(today), days)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Policy, error) {
		return scanPolicyRow(row)
	})
}

func (r *policyRepository) Statistics(ctx context.Context, agentID string, today domain.Date) (*domain.PolicyStatistics, error) {
	rows, err := r.procs.Query(ctx, "sp_get_policy_statistics", agentID, dateParam(today))
	if err != nil {
		return nil, err
	}
	stats, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (domain.PolicyStatistics, error) {
		var s domain.PolicyStatistics
		err := row.Scan(&s.Total, &s.Active, &s.Lapsed, &s.Expired, &s.ExpiringSoon, &s.TotalPremium, &s.TotalCoverage)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanPolicyRow(row pgx.CollectableRow, extra ...any) (domain.Policy, error) {
	var (
		p          domain.Policy
		start, end pgtype.Date
		status     string
		frequency  string
	)
	dest := []any{
		&p.ID,
		&p.AgentID,
		&p.ClientID,
		&p.ClientName,
		&p.PolicyNumber,
		&p.PolicyName,
		&p.PolicyType,
		&p.CompanyName,
		&status,
		&start,
		&end,
		&p.PremiumAmount,
		&p.CoverageAmount,
		&frequency,
		&p.Notes,
		&p.CreatedDate,
		&p.ModifiedDate,
		&p.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return p, err
	}
	p.Status = domain.PolicyStatus(status)
	p.PremiumFrequency = domain.PremiumFrequency(frequency)
	p.StartDate = fromPgDate(start)
	p.EndDate = fromPgDatePtr(end)
	return p, nil
}
