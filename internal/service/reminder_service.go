package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
)

// ReminderService coordinates reminder workflows.
type ReminderService struct {
	reminders repository.ReminderRepository
	cache     *cache.Store
	clock     Clock
	logger    *zap.Logger
}

// ReminderDependencies bundles collaborators for the reminder service.
type ReminderDependencies struct {
	ReminderRepo repository.ReminderRepository
	Cache        *cache.Store
	Clock        Clock
	Logger       *zap.Logger
}

// NewReminderService builds the service.
func NewReminderService(deps ReminderDependencies) *ReminderService {
	return &ReminderService{
		reminders: deps.ReminderRepo,
		cache:     deps.Cache,
		clock:     deps.Clock,
		logger:    orNop(deps.Logger),
	}
}

// Create stores a reminder. Linking an appointment marks its reminderSet flag.
func (s *ReminderService) Create(ctx context.Context, agentID string, draft domain.ReminderDraft) (domain.MutationResult, error) {
	if draft.Priority == "" {
		draft.Priority = domain.PriorityMedium
	}
	if draft.ReminderType == "" {
		draft.ReminderType = domain.ReminderTypeCustom
	}
	res, err := s.reminders.Create(ctx, agentID, draft)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ReminderService) Update(ctx context.Context, agentID, id string, patch domain.ReminderPatch) (domain.MutationResult, error) {
	res, err := s.reminders.Update(ctx, agentID, id, patch)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ReminderService) Complete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	res, err := s.reminders.Complete(ctx, agentID, id)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ReminderService) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	res, err := s.reminders.Delete(ctx, agentID, id)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ReminderService) Get(ctx context.Context, agentID, id string) (*domain.Reminder, error) {
	rem, err := s.reminders.GetByID(ctx, agentID, id)
	if err != nil {
		return nil, notFoundAs(err, "reminder")
	}
	return rem, nil
}

func (s *ReminderService) List(ctx context.Context, agentID string, filter domain.ReminderFilter) ([]domain.Reminder, domain.Pagination, error) {
	return listPage(filter.Page, func(page domain.Page) ([]domain.Reminder, int, error) {
		f := filter
		f.Page = page
		return s.reminders.List(ctx, agentID, f)
	})
}

// Today lists pending reminders dated today.
func (s *ReminderService) Today(ctx context.Context, agentID string) ([]domain.Reminder, error) {
	today := s.clock.Today()
	items, err := s.reminders.ListInRange(ctx, agentID, today, today)
	return nonNil(items), err
}

// Upcoming lists pending reminders from today through the next days days.
func (s *ReminderService) Upcoming(ctx context.Context, agentID string, days int) ([]domain.Reminder, error) {
	if days <= 0 {
		days = 7
	}
	if days > maxBirthdayWindow {
		days = maxBirthdayWindow
	}
	today := s.clock.Today()
	items, err := s.reminders.ListInRange(ctx, agentID, today, today.AddDays(days))
	return nonNil(items), err
}
