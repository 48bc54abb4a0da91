package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// ClientRepository defines persistence access for clients.
type ClientRepository interface {
	Create(ctx context.Context, agentID string, draft domain.ClientDraft) (domain.MutationResult, error)
	Update(ctx context.Context, agentID, id string, patch domain.ClientPatch) (domain.MutationResult, error)
	ToggleFavorite(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	GetByID(ctx context.Context, agentID, id string) (*domain.Client, error)
	List(ctx context.Context, agentID string, filter domain.ClientFilter) ([]domain.Client, int, error)
	Statistics(ctx context.Context, agentID string, today domain.Date) (*domain.ClientStatistics, error)
	UpcomingBirthdays(ctx context.Context, agentID string, today domain.Date, days int) ([]domain.Birthday, error)
	BirthdayDigest(ctx context.Context, today domain.Date) ([]DigestEntry, error)
}

// DigestEntry is one client birthday addressed to an opted-in agent.
type DigestEntry struct {
	AgentID    string
	AgentEmail string
	AgentName  string
	Birthday   domain.Birthday
}

type clientRepository struct {
	procs *Procedures
}

// NewClientRepository returns a procedure-backed implementation.
func NewClientRepository(procs *Procedures) ClientRepository {
	return &clientRepository{procs: procs}
}

func (r *clientRepository) Create(ctx context.Context, agentID string, d domain.ClientDraft) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_create_client",
		agentID,
		d.FirstName,
		d.LastName,
		d.Email,
		d.Phone,
		d.WhatsApp,
		optDateParam(d.DateOfBirth),
		d.Address,
		string(d.ClientType),
		d.Notes,
		nonNilTags(tagsParam(d.Tags)),
	)
}

func (r *clientRepository) Update(ctx context.Context, agentID, id string, p domain.ClientPatch) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_client",
		id,
		agentID,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		p.WhatsApp,
		optDateParam(p.DateOfBirth),
		p.Address,
		text(p.ClientType),
		p.Notes,
		tagsParam(p.Tags),
	)
}

func (r *clientRepository) ToggleFavorite(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_toggle_client_favorite", id, agentID)
}

func (r *clientRepository) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_delete_client", id, agentID)
}

func (r *clientRepository) GetByID(ctx context.Context, agentID, id string) (*domain.Client, error) {
	rows, err := r.procs.Query(ctx, "sp_get_client", id, agentID)
	if err != nil {
		return nil, err
	}
	client, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (domain.Client, error) {
		return scanClientRow(row)
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, agentID string, f domain.ClientFilter) ([]domain.Client, int, error) {
	page := f.Page.Normalize()
	rows, err := r.procs.Query(ctx, "sp_list_clients",
		agentID,
		nullIfBlankPtr(f.SearchTerm),
		text(f.ClientType),
		f.IsFavorite,
		page.Size,
		page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Client, error) {
		return scanClientRow(row, &total)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *clientRepository) Statistics(ctx context.Context, agentID string, today domain.Date) (*domain.ClientStatistics, error) {
	rows, err := r.procs.Query(ctx, "sp_get_client_statistics", agentID, dateParam(today))
	if err != nil {
		return nil, err
	}
	stats, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (domain.ClientStatistics, error) {
		var s domain.ClientStatistics
		err := row.Scan(&s.Total, &s.Leads, &s.Prospects, &s.Policyholders, &s.Favorites, &s.NewThisMonth, &s.BirthdaysSoon)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *clientRepository) UpcomingBirthdays(ctx context.Context, agentID string, today domain.Date, days int) ([]domain.Birthday, error) {
	rows, err := r.procs.Query(ctx, "sp_get_upcoming_birthdays", agentID, dateParam(today), days)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Birthday, error) {
		var (
			b         domain.Birthday
			dob, next pgtype.Date
		)
		err := row.Scan(&b.ClientID, &b.AgentID, &b.ClientName, &b.Phone, &b.Email, &dob, &next, &b.DaysUntil, &b.Age)
		b.DateOfBirth = fromPgDate(dob)
		b.NextBirthday = fromPgDate(next)
		return b, err
	})
}

func (r *clientRepository) BirthdayDigest(ctx context.Context, today domain.Date) ([]DigestEntry, error) {
	rows, err := r.procs.Query(ctx, "sp_get_birthday_digest", dateParam(today))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (DigestEntry, error) {
		var (
			e   DigestEntry
			dob pgtype.Date
		)
		err := row.Scan(
			&e.AgentID,
			&e.AgentEmail,
			&e.AgentName,
			&e.Birthday.ClientID,
			&e.Birthday.ClientName,
			&e.Birthday.Phone,
			&e.Birthday.Email,
			&dob,
			&e.Birthday.Age,
		)
		e.Birthday.AgentID = e.AgentID
		e.Birthday.DateOfBirth = fromPgDate(dob)
		e.Birthday.NextBirthday = today
		return e, err
	})
}

func scanClientRow(row pgx.CollectableRow, extra ...any) (domain.Client, error) {
	var (
		c          domain.Client
		dob        pgtype.Date
		clientType string
	)
	dest := []any{
		&c.ID,
		&c.AgentID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.WhatsApp,
		&dob,
		&c.Address,
		&clientType,
		&c.Notes,
		&c.Tags,
		&c.IsFavorite,
		&c.PolicyCount,
		&c.CreatedDate,
		&c.ModifiedDate,
		&c.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return c, err
	}
	c.DateOfBirth = fromPgDatePtr(dob)
	c.ClientType = domain.ClientType(clientType)
	c.Tags = nonNilTags(c.Tags)
	return c, nil
}
