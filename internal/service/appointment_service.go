package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/events"
	"github.com/spec-kit/agentdesk/internal/repository"
	"github.com/spec-kit/agentdesk/internal/scheduling"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// AppointmentService coordinates appointment workflows.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	dispatcher   events.Dispatcher
	cache        *cache.Store
	clock        Clock
	logger       *zap.Logger
}

// AppointmentDependencies bundles collaborators for the appointment service.
type AppointmentDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	Dispatcher      events.Dispatcher
	Cache           *cache.Store
	Clock           Clock
	Logger          *zap.Logger
}

// NewAppointmentService builds the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments: deps.AppointmentRepo,
		dispatcher:   deps.Dispatcher,
		cache:        deps.Cache,
		clock:        deps.Clock,
		logger:       orNop(deps.Logger),
	}
}

// Create stores a new appointment. Conflicts are not checked here; callers
// use CheckConflicts beforehand. The confirmation notification is published
// in the background and never fails the create.
func (s *AppointmentService) Create(ctx context.Context, agentID string, draft domain.AppointmentDraft) (domain.MutationResult, error) {
	if err := checkTimeRange(draft.StartTime, draft.EndTime); err != nil {
		return domain.MutationResult{}, err
	}
	if draft.Priority == "" {
		draft.Priority = domain.PriorityMedium
	}
	res, err := s.appointments.Create(ctx, agentID, draft)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	if res.Success && s.dispatcher != nil {
		s.dispatcher.PublishAsync(ctx, events.Event{
			Type:    events.EventAppointmentCreated,
			AgentID: agentID,
			Payload: events.AppointmentCreatedPayload{AppointmentID: res.ID},
		})
	}
	return res, nil
}

// Update applies a partial update.
func (s *AppointmentService) Update(ctx context.Context, agentID, id string, patch domain.AppointmentPatch) (domain.MutationResult, error) {
	if patch.IsEmpty() {
		return domain.MutationResult{}, apperrors.NewValidationError("No fields provided for update", nil)
	}
	if patch.StartTime != nil && patch.EndTime != nil {
		if err := checkTimeRange(*patch.StartTime, *patch.EndTime); err != nil {
			return domain.MutationResult{}, err
		}
	}
	res, err := s.appointments.Update(ctx, agentID, id, patch)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

// UpdateStatus sets the status label. Transitions are not restricted.
func (s *AppointmentService) UpdateStatus(ctx context.Context, agentID, id string, status domain.AppointmentStatus) (domain.MutationResult, error) {
	if !IsAppointmentStatus(status) {
		return domain.MutationResult{}, InvalidStatusError(status)
	}
	res, err := s.appointments.UpdateStatus(ctx, agentID, id, status)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

// Delete soft-deletes an appointment.
func (s *AppointmentService) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	res, err := s.appointments.Delete(ctx, agentID, id)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

// Get returns one appointment.
func (s *AppointmentService) Get(ctx context.Context, agentID, id string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, agentID, id)
	if err != nil {
		return nil, notFoundAs(err, "appointment")
	}
	return appt, nil
}

// List returns a filtered page of appointments.
func (s *AppointmentService) List(ctx context.Context, agentID string, filter domain.AppointmentFilter) ([]domain.Appointment, domain.Pagination, error) {
	return listPage(filter.Page, func(page domain.Page) ([]domain.Appointment, int, error) {
		f := filter
		f.Page = page
		return s.appointments.List(ctx, agentID, f)
	})
}

// Today returns the agent's appointments for the current day.
func (s *AppointmentService) Today(ctx context.Context, agentID string) ([]domain.Appointment, error) {
	return s.ForDate(ctx, agentID, s.clock.Today())
}

// ForDate returns appointments on a single day.
func (s *AppointmentService) ForDate(ctx context.Context, agentID string, date domain.Date) ([]domain.Appointment, error) {
	items, err := s.appointments.ListInRange(ctx, agentID, date, date)
	return nonNil(items), err
}

// Week returns seven days of appointments starting at weekStart, or the
// Monday of the current week when weekStart is nil.
func (s *AppointmentService) Week(ctx context.Context, agentID string, weekStart *domain.Date) ([]domain.WeekDay, error) {
	start := s.clock.Today().StartOfWeek()
	if weekStart != nil {
		start = *weekStart
	}
	items, err := s.appointments.ListInRange(ctx, agentID, start, start.AddDays(6))
	if err != nil {
		return nil, err
	}
	return scheduling.GroupByWeek(start, items), nil
}

// Calendar summarizes each day of a month.
func (s *AppointmentService) Calendar(ctx context.Context, agentID string, year int, month time.Month) ([]domain.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, apperrors.NewValidationError("month must be between 1 and 12", nil)
	}
	if year < 1900 || year > 9999 {
		return nil, apperrors.NewValidationError("year must be between 1900 and 9999", nil)
	}
	first, last := scheduling.MonthBounds(year, month)
	days, err := s.appointments.Calendar(ctx, agentID, first, last)
	return nonNil(days), err
}

// Search matches appointments by title, description, location or client.
func (s *AppointmentService) Search(ctx context.Context, agentID, term string, limit int) ([]domain.Appointment, error) {
	if limit <= 0 || limit > domain.MaxPageSize {
		limit = domain.DefaultPageSize
	}
	items, err := s.appointments.Search(ctx, agentID, term, limit)
	return nonNil(items), err
}

// Statistics aggregates the agent's appointment counts.
func (s *AppointmentService) Statistics(ctx context.Context, agentID string) (*domain.AppointmentStatistics, error) {
	return s.appointments.Statistics(ctx, agentID, s.clock.Today())
}

// CheckConflicts reports active appointments overlapping the candidate slot.
// Procedure output is re-filtered with the half-open overlap rule.
func (s *AppointmentService) CheckConflicts(ctx context.Context, q domain.ConflictQuery) (domain.ConflictReport, error) {
	if err := checkTimeRange(q.StartTime, q.EndTime); err != nil {
		return domain.ConflictReport{}, err
	}
	candidates, err := s.appointments.FindConflicts(ctx, q)
	if err != nil {
		return domain.ConflictReport{}, err
	}
	return scheduling.NewConflictReport(scheduling.FilterConflicts(q, candidates)), nil
}

// IsAppointmentStatus reports whether status is an accepted label.
func IsAppointmentStatus(status domain.AppointmentStatus) bool {
	for _, s := range domain.AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// InvalidStatusError is the 400 returned for an unknown status label.
func InvalidStatusError(status domain.AppointmentStatus) error {
	valid := make([]string, len(domain.AppointmentStatuses))
	for i, s := range domain.AppointmentStatuses {
		valid[i] = string(s)
	}
	return apperrors.NewValidationError(
		"Invalid status. Valid statuses are: "+strings.Join(valid, ", "),
		map[string]any{"status": string(status), "validStatuses": valid},
	)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func checkTimeRange(start, end domain.TimeOfDay) error {
	if start >= end {
		return apperrors.NewValidationError("startTime must be before endTime", nil)
	}
	return nil
}
