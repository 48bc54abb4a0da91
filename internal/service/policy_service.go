package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// PolicyService coordinates policy workflows.
type PolicyService struct {
	policies repository.PolicyRepository
	cache    *cache.Store
	clock    Clock
	logger   *zap.Logger
}

// PolicyDependencies bundles collaborators for the policy service.
type PolicyDependencies struct {
	PolicyRepo repository.PolicyRepository
	Cache      *cache.Store
	Clock      Clock
	Logger     *zap.Logger
}

// NewPolicyService builds the service.
func NewPolicyService(deps PolicyDependencies) *PolicyService {
	return &PolicyService{
		policies: deps.PolicyRepo,
		cache:    deps.Cache,
		clock:    deps.Clock,
		logger:   orNop(deps.Logger),
	}
}

// Create stores a policy. A duplicate policy number surfaces as 409 from the
// unique index.
func (s *PolicyService) Create(ctx context.Context, agentID string, draft domain.PolicyDraft) (domain.MutationResult, error) {
	if draft.EndDate != nil && !draft.EndDate.After(draft.StartDate.Time) {
		return domain.MutationResult{}, apperrors.NewValidationError("endDate must be after startDate", nil)
	}
	if draft.Status == "" {
		draft.Status = domain.PolicyStatusActive
	}
	if draft.PremiumFrequency == "" {
		draft.PremiumFrequency = domain.PremiumAnnual
	}
	res, err := s.policies.Create(ctx, agentID, draft)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *PolicyService) Update(ctx context.Context, agentID, id string, patch domain.PolicyPatch) (domain.MutationResult, error) {
	if patch.StartDate != nil && patch.EndDate != nil && !patch.EndDate.After(patch.StartDate.Time) {
		return domain.MutationResult{}, apperrors.NewValidationError("endDate must be after startDate", nil)
	}
	res, err := s.policies.Update(ctx, agentID, id, patch)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *PolicyService) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	res, err := s.policies.Delete(ctx, agentID, id)
	if err != nil {
		return res, err
	}
	invalidate(ctx, s.cache, s.logger, agentID, res)
	return res, nil
}

func (s *PolicyService) Get(ctx context.Context, agentID, id string) (*domain.Policy, error) {
	policy, err := s.policies.GetByID(ctx, agentID, id)
	if err != nil {
		return nil, notFoundAs(err, "policy")
	}
	return policy, nil
}

func (s *PolicyService) List(ctx context.Context, agentID string, filter domain.PolicyFilter) ([]domain.Policy, domain.Pagination, error) {
	return listPage(filter.Page, func(page domain.Page) ([]domain.Policy, int, error) {
		f := filter
		f.Page = page
		return s.policies.List(ctx, agentID, f)
	})
}

// Expiring lists active policies ending within days.
func (s *PolicyService) Expiring(ctx context.Context, agentID string, days int) ([]domain.Policy, error) {
	if days <= 0 {
		days = 30
	}
	items, err := s.policies.Expiring(ctx, agentID, s.clock.Today(), days)
	return nonNil(items), err
}

func (s *PolicyService) Statistics(ctx context.Context, agentID string) (*domain.PolicyStatistics, error) {
	return s.policies.Statistics(ctx, agentID, s.clock.Today())
}
