package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

const (
	minSearchLength      = 2
	defaultSearchLimit   = 10
	maxSearchLimit       = 50
	defaultRecentLimit   = 10
	defaultAutocomplete  = 10
	maxAutocompleteLimit = 20
	autocompleteCacheTTL = 5 * time.Minute
)

// SearchService runs global search, search history and autocomplete.
type SearchService struct {
	search repository.SearchRepository
	cache  *cache.Store
	logger *zap.Logger
}

// NewSearchService builds the service.
func NewSearchService(search repository.SearchRepository, store *cache.Store, logger *zap.Logger) *SearchService {
	return &SearchService{search: search, cache: store, logger: orNop(logger)}
}

// Global searches every requested entity kind and groups the hits. The query
// is recorded in the agent's search history.
func (s *SearchService) Global(ctx context.Context, agentID, query string, entities []domain.SearchEntity, limit int) (*domain.SearchResults, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minSearchLength {
		return nil, apperrors.NewValidationError("Search query must be at least 2 characters", map[string]any{"q": query})
	}
	if len(entities) == 0 {
		entities = domain.SearchEntities
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	hits, err := s.search.Global(ctx, agentID, query, entities, limit)
	if err != nil {
		return nil, err
	}

	out := &domain.SearchResults{
		Query:   query,
		Total:   len(hits),
		Results: make(map[domain.SearchEntity][]domain.SearchHit, len(entities)),
	}
	for _, e := range entities {
		out.Results[e] = []domain.SearchHit{}
	}
	for _, hit := range hits {
		out.Results[hit.Entity] = append(out.Results[hit.Entity], hit)
	}

	if err := s.search.RecordSearch(ctx, agentID, query, out.Total); err != nil {
		s.logger.Warn("record search failed", zap.String("agent_id", agentID), zap.Error(err))
	}
	return out, nil
}

// Recent returns the agent's latest distinct queries.
func (s *SearchService) Recent(ctx context.Context, agentID string, limit int) ([]domain.RecentSearch, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultRecentLimit
	}
	items, err := s.search.Recent(ctx, agentID, limit)
	return nonNil(items), err
}

// Autocomplete returns cached prefix suggestions.
func (s *SearchService) Autocomplete(ctx context.Context, kind repository.AutocompleteKind, agentID, prefix string, limit int) ([]domain.Suggestion, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, apperrors.NewValidationError("q must be at least 1 character", nil)
	}
	if limit <= 0 {
		limit = defaultAutocomplete
	}
	if limit > maxAutocompleteLimit {
		limit = maxAutocompleteLimit
	}

	key := s.cache.AgentKey(agentID, "autocomplete", string(kind), strings.ToLower(prefix), strconv.Itoa(limit))
	items, err := cache.Remember(ctx, s.cache, key, autocompleteCacheTTL, func(ctx context.Context) ([]domain.Suggestion, error) {
		return s.search.Autocomplete(ctx, kind, agentID, prefix, limit)
	})
	return nonNil(items), err
}
