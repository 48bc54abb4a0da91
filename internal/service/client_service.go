package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
)

const maxBirthdayWindow = 365

// ClientService coordinates client workflows.
type ClientService struct {
	clients repository.ClientRepository
	cache   *cache.Store
	clock   Clock
	logger  *zap.Logger
}

// ClientDependencies bundles collaborators for the client service.
type ClientDependencies struct {
	ClientRepo repository.ClientRepository
	Cache      *cache.Store
	Clock      Clock
	Logger     *zap.Logger
}

// NewClientService builds the service.
func NewClientService(deps ClientDependencies) *ClientService {
	return &ClientService{
		clients: deps.ClientRepo,
		cache:   deps.Cache,
		clock:   deps.Clock,
		logger:  orNop(deps.Logger),
	}
}

func (s *ClientService) Create(ctx context.Context, agentID string, draft domain.ClientDraft) (domain.MutationResult, error) {
	if draft.ClientType == "" {
		draft.ClientType = domain.ClientTypeProspect
	}
	res, err := s.clients.Create(ctx, agentID, draft)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ClientService) Update(ctx context.Context, agentID, id string, patch domain.ClientPatch) (domain.MutationResult, error) {
	res, err := s.clients.Update(ctx, agentID, id, patch)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ClientService) ToggleFavorite(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	res, err := s.clients.ToggleFavorite(ctx, agentID, id)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

// Delete soft-deletes the client; its open appointments are cancelled by the
// procedure.
func (s *ClientService) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	res, err := s.clients.Delete(ctx, agentID, id)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *ClientService) Get(ctx context.Context, agentID, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, agentID, id)
	if err != nil {
		return nil, notFoundAs(err, "client")
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, agentID string, filter domain.ClientFilter) ([]domain.Client, domain.Pagination, error) {
	return listPage(filter.Page, func(page domain.Page) ([]domain.Client, int, error) {
		f := filter
		f.Page = page
		return s.clients.List(ctx, agentID, f)
	})
}

func (s *ClientService) Statistics(ctx context.Context, agentID string) (*domain.ClientStatistics, error) {
	return s.clients.Statistics(ctx, agentID, s.clock.Today())
}

// UpcomingBirthdays lists birthdays in the next days days, today included.
func (s *ClientService) UpcomingBirthdays(ctx context.Context, agentID string, days int) ([]domain.Birthday, error) {
	if days < 0 {
		days = 0
	}
	if days > maxBirthdayWindow {
		days = maxBirthdayWindow
	}
	items, err := s.clients.UpcomingBirthdays(ctx, agentID, s.clock.Today(), days)
	return nonNil(items), err
}
