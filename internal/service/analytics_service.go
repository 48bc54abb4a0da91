package service

import (
	"context"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

const maxAnalyticsRangeDays = 366

// AnalyticsService serves dashboard and breakdown reports.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	cache     *cache.Store
	clock     Clock
}

// NewAnalyticsService builds the service.
func NewAnalyticsService(analytics repository.AnalyticsRepository, store *cache.Store, clock Clock) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, cache: store, clock: clock}
}

// Dashboard returns the overview, cached per agent and day until a mutation
// invalidates it.
func (s *AnalyticsService) Dashboard(ctx context.Context, agentID string) (*domain.DashboardOverview, error) {
	today := s.clock.Today()
	key := s.cache.AgentKey(agentID, "dashboard", today.String())
	return cache.Remember(ctx, s.cache, key, 0, func(ctx context.Context) (*domain.DashboardOverview, error) {
		return s.analytics.Dashboard(ctx, agentID, today)
	})
}

// Appointments breaks down appointments between start and end, defaulting to
// the last 30 days.
func (s *AnalyticsService) Appointments(ctx context.Context, agentID string, start, end *domain.Date) (*domain.AppointmentAnalytics, error) {
	to := s.clock.Today()
	if end != nil {
		to = *end
	}
	from := to.AddDays(-29)
	if start != nil {
		from = *start
	}
	if from.After(to.Time) {
		return nil, apperrors.NewValidationError("startDate must not be after endDate", nil)
	}
	if to.Sub(from.Time).Hours()/24 > maxAnalyticsRangeDays {
		return nil, apperrors.NewValidationError("date range must not exceed 366 days", nil)
	}
	key := s.cache.AgentKey(agentID, "analytics", "appointments", from.String(), to.String())
	return cache.Remember(ctx, s.cache, key, 0, func(ctx context.Context) (*domain.AppointmentAnalytics, error) {
		return s.analytics.Appointments(ctx, agentID, from, to)
	})
}

// Policies breaks down the agent's policies by type, status and company.
func (s *AnalyticsService) Policies(ctx context.Context, agentID string) (*domain.PolicyAnalytics, error) {
	key := s.cache.AgentKey(agentID, "analytics", "policies")
	return cache.Remember(ctx, s.cache, key, 0, func(ctx context.Context) (*domain.PolicyAnalytics, error) {
		return s.analytics.Policies(ctx, agentID)
	})
}

// FlushCache drops the agent's cached reports and suggestions.
func (s *AnalyticsService) FlushCache(ctx context.Context, agentID string) (int, error) {
	return s.cache.InvalidateAgent(ctx, agentID)
}
