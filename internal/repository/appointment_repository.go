package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// AppointmentRepository defines persistence access for appointments. Every
// call is scoped to the owning agent.
type AppointmentRepository interface {
	Create(ctx context.Context, agentID string, draft domain.AppointmentDraft) (domain.MutationResult, error)
	Update(ctx context.Context, agentID, id string, patch domain.AppointmentPatch) (domain.MutationResult, error)
	UpdateStatus(ctx context.Context, agentID, id string, status domain.AppointmentStatus) (domain.MutationResult, error)
	Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	GetByID(ctx context.Context, agentID, id string) (*domain.Appointment, error)
	List(ctx context.Context, agentID string, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	ListInRange(ctx context.Context, agentID string, start, end domain.Date) ([]domain.Appointment, error)
	Search(ctx context.Context, agentID, term string, limit int) ([]domain.Appointment, error)
	Calendar(ctx context.Context, agentID string, start, end domain.Date) ([]domain.CalendarDay, error)
	Statistics(ctx context.Context, agentID string, today domain.Date) (*domain.AppointmentStatistics, error)
	FindConflicts(ctx context.Context, q domain.ConflictQuery) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	procs *Procedures
}

// NewAppointmentRepository returns a procedure-backed implementation.
func NewAppointmentRepository(procs *Procedures) AppointmentRepository {
	return &appointmentRepository{procs: procs}
}

func (r *appointmentRepository) Create(ctx context.Context, agentID string, d domain.AppointmentDraft) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_create_appointment",
		agentID,
		d.ClientID,
		dateParam(d.AppointmentDate),
		clockParam(d.StartTime),
		clockParam(d.EndTime),
		d.Title,
		d.Description,
		string(d.Type),
		string(d.Priority),
		d.Location,
		d.Notes,
	)
}

func (r *appointmentRepository) Update(ctx context.Context, agentID, id string, p domain.AppointmentPatch) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_appointment",
		id,
		agentID,
		p.ClientID,
		optDateParam(p.AppointmentDate),
		optClockParam(p.StartTime),
		optClockParam(p.EndTime),
		p.Title,
		p.Description,
		text(p.Type),
		text(p.Status),
		text(p.Priority),
		p.Location,
		p.Notes,
	)
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, agentID, id string, status domain.AppointmentStatus) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_appointment_status", id, agentID, string(status))
}

func (r *appointmentRepository) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_delete_appointment", id, agentID)
}

func (r *appointmentRepository) GetByID(ctx context.Context, agentID, id string) (*domain.Appointment, error) {
	rows, err := r.procs.Query(ctx, "sp_get_appointment", id, agentID)
	if err != nil {
		return nil, err
	}
	appt, err := pgx.CollectOneRow(rows, scanAppointment)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, agentID string, f domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	page := f.Page.Normalize()
	rows, err := r.procs.Query(ctx, "sp_list_appointments",
		agentID,
		optDateParam(f.StartDate),
		optDateParam(f.EndDate),
		text(f.Status),
		text(f.Type),
		text(f.Priority),
		f.ClientID,
		nullIfBlankPtr(f.SearchTerm),
		page.Size,
		page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Appointment, error) {
		return scanAppointmentRow(row, &total)
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *appointmentRepository) ListInRange(ctx context.Context, agentID string, start, end domain.Date) ([]domain.Appointment, error) {
	return r.collect(ctx, "sp_get_appointments_in_range", agentID, dateParam(start), dateParam(end))
}

func (r *appointmentRepository) Search(ctx context.Context, agentID, term string, limit int) ([]domain.Appointment, error) {
	return r.collect(ctx, "sp_search_appointments", agentID, term, limit)
}

func (r *appointmentRepository) Calendar(ctx context.Context, agentID string, start, end domain.Date) ([]domain.CalendarDay, error) {
	rows, err := r.procs.Query(ctx, "sp_get_calendar", agentID, dateParam(start), dateParam(end))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CalendarDay, error) {
		var (
			day  domain.CalendarDay
			date pgtype.Date
		)
		err := row.Scan(&date, &day.AppointmentCount, &day.ConfirmedCount, &day.HighPriority)
		day.Date = fromPgDate(date)
		return day, err
	})
}

func (r *appointmentRepository) Statistics(ctx context.Context, agentID string, today domain.Date) (*domain.AppointmentStatistics, error) {
	rows, err := r.procs.Query(ctx, "sp_get_appointment_statistics", agentID, dateParam(today))
	if err != nil {
		return nil, err
	}
	stats, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (domain.AppointmentStatistics, error) {
		var s domain.AppointmentStatistics
		err := row.Scan(
			&s.Total,
			&s.Today,
			&s.Upcoming,
			&s.Scheduled,
			&s.Confirmed,
			&s.InProgress,
			&s.Completed,
			&s.Cancelled,
			&s.Rescheduled,
			&s.ThisWeek,
			&s.ThisMonth,
			&s.HighPriority,
		)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *appointmentRepository) FindConflicts(ctx context.Context, q domain.ConflictQuery) ([]domain.Appointment, error) {
	return r.collect(ctx, "sp_check_time_conflicts",
		q.AgentID,
		dateParam(q.Date),
		clockParam(q.StartTime),
		clockParam(q.EndTime),
		q.ExcludeAppointmentID,
	)
}

func (r *appointmentRepository) collect(ctx context.Context, name string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.procs.Query(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanAppointment)
}

func scanAppointment(row pgx.CollectableRow) (domain.Appointment, error) {
	return scanAppointmentRow(row)
}

// scanAppointmentRow maps the v_appointments column order. Extra destinations
// receive trailing columns such as total_count.
func scanAppointmentRow(row pgx.CollectableRow, extra ...any) (domain.Appointment, error) {
	var (
		a          domain.Appointment
		date       pgtype.Date
		start, end pgtype.Time
		apptType   string
		status     string
		priority   string
	)
	dest := []any{
		&a.ID,
		&a.AgentID,
		&a.ClientID,
		&a.ClientName,
		&a.ClientPhone,
		&a.ClientEmail,
		&date,
		&start,
		&end,
		&a.Title,
		&a.Description,
		&apptType,
		&status,
		&priority,
		&a.Location,
		&a.Notes,
		&a.ReminderSet,
		&a.CreatedDate,
		&a.ModifiedDate,
		&a.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return a, err
	}
	a.AppointmentDate = fromPgDate(date)
	a.StartTime = fromPgTime(start)
	a.EndTime = fromPgTime(end)
	a.Type = domain.AppointmentType(apptType)
	a.Status = domain.AppointmentStatus(status)
	a.Priority = domain.Priority(priority)
	return a, nil
}
