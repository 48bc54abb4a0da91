package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// AnalyticsRepository reads aggregate views of an agent's data.
type AnalyticsRepository interface {
	Dashboard(ctx context.Context, agentID string, today domain.Date) (*domain.DashboardOverview, error)
	Appointments(ctx context.Context, agentID string, start, end domain.Date) (*domain.AppointmentAnalytics, error)
	Policies(ctx context.Context, agentID string) (*domain.PolicyAnalytics, error)
}

type analyticsRepository struct {
	procs *Procedures
}

// NewAnalyticsRepository constructs an AnalyticsRepository.
func NewAnalyticsRepository(procs *Procedures) AnalyticsRepository {
	return &analyticsRepository{procs: procs}
}

func (r *analyticsRepository) Dashboard(ctx context.Context, agentID string, today domain.Date) (*domain.DashboardOverview, error) {
	rows, err := r.procs.Query(ctx, "sp_get_dashboard_overview", agentID, dateParam(today))
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (domain.DashboardOverview, error) {
		var d domain.DashboardOverview
		err := row.Scan(
			&d.TotalClients,
			&d.NewClientsThisMonth,
			&d.ActivePolicies,
			&d.ExpiringPolicies,
			&d.TodayAppointments,
			&d.UpcomingAppointments,
			&d.PendingReminders,
			&d.OverdueReminders,
			&d.TotalPremium,
			&d.UpcomingBirthdays,
		)
		return d, err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type dimensionRow struct {
	dimension string
	bucket    domain.CountBucket
}

func (r *analyticsRepository) Appointments(ctx context.Context, agentID string, start, end domain.Date) (*domain.AppointmentAnalytics, error) {
	rows, err := r.procs.Query(ctx, "sp_get_appointment_analytics", agentID, dateParam(start), dateParam(end))
	if err != nil {
		return nil, err
	}
	dims, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dimensionRow, error) {
		var d dimensionRow
		err := row.Scan(&d.dimension, &d.bucket.Label, &d.bucket.Count)
		return d, err
	})
	if err != nil {
		return nil, err
	}

	out := &domain.AppointmentAnalytics{
		StartDate: start,
		EndDate:   end,
		ByStatus:  []domain.CountBucket{},
		ByType:    []domain.CountBucket{},
		ByDay:     []domain.CountBucket{},
	}
	completed := 0
	for _, d := range dims {
		switch d.dimension {
		case "status":
			out.ByStatus = append(out.ByStatus, d.bucket)
			out.Total += d.bucket.Count
			if d.bucket.Label == string(domain.AppointmentStatusCompleted) {
				completed = d.bucket.Count
			}
		case "type":
			out.ByType = append(out.ByType, d.bucket)
		case "day":
			out.ByDay = append(out.ByDay, d.bucket)
		}
	}
	if out.Total > 0 {
		out.CompletionRate = float64(completed) / float64(out.Total)
	}
	return out, nil
}

func (r *analyticsRepository) Policies(ctx context.Context, agentID string) (*domain.PolicyAnalytics, error) {
	rows, err := r.procs.Query(ctx, "sp_get_policy_analytics", agentID)
	if err != nil {
		return nil, err
	}
	dims, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dimensionRow, error) {
		var d dimensionRow
		err := row.Scan(&d.dimension, &d.bucket.Label, &d.bucket.Count, &d.bucket.Value)
		return d, err
	})
	if err != nil {
		return nil, err
	}

	out := &domain.PolicyAnalytics{
		ByType:    []domain.CountBucket{},
		ByStatus:  []domain.CountBucket{},
		ByCompany: []domain.CountBucket{},
	}
	for _, d := range dims {
		switch d.dimension {
		case "type":
			out.ByType = append(out.ByType, d.bucket)
		case "status":
			out.ByStatus = append(out.ByStatus, d.bucket)
		case "company":
			out.ByCompany = append(out.ByCompany, d.bucket)
		}
	}
	return out, nil
}
