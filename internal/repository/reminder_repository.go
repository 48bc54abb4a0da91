package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// ReminderRepository defines persistence access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, agentID string, draft domain.ReminderDraft) (domain.MutationResult, error)
	Update(ctx context.Context, agentID, id string, patch domain.ReminderPatch) (domain.MutationResult, error)
	Complete(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	GetByID(ctx context.Context, agentID, id string) (*domain.Reminder, error)
	List(ctx context.Context, agentID string, filter domain.ReminderFilter) ([]domain.Reminder, int, error)
	ListInRange(ctx context.Context, agentID string, start, end domain.Date) ([]domain.Reminder, error)
	ClaimDue(ctx context.Context, today domain.Date, now domain.TimeOfDay, limit int) ([]domain.DueReminder, error)
}

type reminderRepository struct {
	procs *Procedures
}

// NewReminderRepository returns a procedure-backed implementation.
func NewReminderRepository(procs *Procedures) ReminderRepository {
	return &reminderRepository{procs: procs}
}

func (r *reminderRepository) Create(ctx context.Context, agentID string, d domain.ReminderDraft) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_create_reminder",
		agentID,
		d.ClientID,
		d.AppointmentID,
		d.Title,
		d.Description,
		string(d.ReminderType),
		dateParam(d.ReminderDate),
		optClockParam(d.ReminderTime),
		string(d.Priority),
		d.EnableSMS,
		d.EnableWhatsApp,
		d.EnablePush,
	)
}

func (r *reminderRepository) Update(ctx context.Context, agentID, id string, p domain.ReminderPatch) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_reminder",
		id,
		agentID,
		p.ClientID,
		p.Title,
		p.Description,
		text(p.ReminderType),
		optDateParam(p.ReminderDate),
		optClockParam(p.ReminderTime),
		text(p.Priority),
		text(p.Status),
		p.EnableSMS,
		p.EnableWhatsApp,
		p.EnablePush,
	)
}

func (r *reminderRepository) Complete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_complete_reminder", id, agentID)
}

func (r *reminderRepository) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_delete_reminder", id, agentID)
}

func (r *reminderRepository) GetByID(ctx context.Context, agentID, id string) (*domain.Reminder, error) {
	rows, err := r.procs.Query(ctx, "sp_get_reminder", id, agentID)
	if err != nil {
		return nil, err
	}
	rem, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (domain.Reminder, error) {
		return scanReminderRow(row)
	})
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *reminderRepository) List(ctx context.Context, agentID string, f domain.ReminderFilter) ([]domain.Reminder, int, error) {
	page := f.Page.Normalize()
	rows, err := r.procs.Query(ctx, "sp_list_reminders",
		agentID,
		text(f.ReminderType),
		text(f.Status),
		text(f.Priority),
		f.ClientID,
		optDateParam(f.StartDate),
		optDateParam(f.EndDate),
		page.Size,
		page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Reminder, error) {
		return scanReminderRow(row, &total)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *reminderRepository) ListInRange(ctx context.Context, agentID string, start, end domain.Date) ([]domain.Reminder, error) {
	rows, err := r.procs.Query(ctx, "sp_get_reminders_in_range", agentID, dateParam(start), dateParam(end))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Reminder, error) {
		return scanReminderRow(row)
	})
}

func (r *reminderRepository) ClaimDue(ctx context.Context, today domain.Date, now domain.TimeOfDay, limit int) ([]domain.DueReminder, error) {
	rows, err := r.procs.Query(ctx, "sp_claim_due_reminders", dateParam(today), clockParam(now), limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DueReminder, error) {
		var due domain.DueReminder
		rem, err := scanReminderRow(row, &due.AgentEmail, &due.AgentPhone, &due.AgentName, &due.ClientPhone)
		due.Reminder = rem
		return due, err
	})
}

func scanReminderRow(row pgx.CollectableRow, extra ...any) (domain.Reminder, error) {
	var (
		rem          domain.Reminder
		date         pgtype.Date
		at           pgtype.Time
		reminderType string
		priority     string
		status       string
	)
	dest := []any{
		&rem.ID,
		&rem.AgentID,
		&rem.ClientID,
		&rem.ClientName,
		&rem.AppointmentID,
		&rem.Title,
		&rem.Description,
		&reminderType,
		&date,
		&at,
		&priority,
		&status,
		&rem.EnableSMS,
		&rem.EnableWhatsApp,
		&rem.EnablePush,
		&rem.NotifiedAt,
		&rem.CompletedDate,
		&rem.CreatedDate,
		&rem.ModifiedDate,
		&rem.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return rem, err
	}
	rem.ReminderType = domain.ReminderType(reminderType)
	rem.ReminderDate = fromPgDate(date)
	rem.ReminderTime = fromPgTimePtr(at)
	rem.Priority = domain.Priority(priority)
	rem.Status = domain.ReminderStatus(status)
	return rem, nil
}
