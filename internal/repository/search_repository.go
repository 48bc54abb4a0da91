package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// AutocompleteKind selects an autocomplete source.
type AutocompleteKind string

const (
	AutocompleteClients     AutocompleteKind = "clients"
	AutocompletePolicyTypes AutocompleteKind = "policy-types"
	AutocompleteCompanies   AutocompleteKind = "companies"
)

var autocompleteProcedures = map[AutocompleteKind]string{
	AutocompleteClients:     "sp_autocomplete_clients",
	AutocompletePolicyTypes: "sp_autocomplete_policy_types",
	AutocompleteCompanies:   "sp_autocomplete_companies",
}

// SearchRepository backs global search, search history and autocomplete.
type SearchRepository interface {
	Global(ctx context.Context, agentID, term string, entities []domain.SearchEntity, limit int) ([]domain.SearchHit, error)
	RecordSearch(ctx context.Context, agentID, query string, resultCount int) error
	Recent(ctx context.Context, agentID string, limit int) ([]domain.RecentSearch, error)
	Autocomplete(ctx context.Context, kind AutocompleteKind, agentID, prefix string, limit int) ([]domain.Suggestion, error)
}

type searchRepository struct {
	procs *Procedures
}

// NewSearchRepository constructs a SearchRepository.
func NewSearchRepository(procs *Procedures) SearchRepository {
	return &searchRepository{procs: procs}
}

func (r *searchRepository) Global(ctx context.Context, agentID, term string, entities []domain.SearchEntity, limit int) ([]domain.SearchHit, error) {
	types := make([]string, len(entities))
	for i, e := range entities {
		types[i] = string(e)
	}
	rows, err := r.procs.Query(ctx, "sp_global_search", agentID, term, types, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SearchHit, error) {
		var (
			hit    domain.SearchHit
			entity string
		)
		err := row.Scan(&entity, &hit.ID, &hit.Title, &hit.Subtitle, &hit.ClientID, &hit.Rank)
		hit.Entity = domain.SearchEntity(entity)
		return hit, err
	})
}

func (r *searchRepository) RecordSearch(ctx context.Context, agentID, query string, resultCount int) error {
	_, err := r.procs.Mutate(ctx, "sp_record_search", agentID, query, resultCount)
	return err
}

func (r *searchRepository) Recent(ctx context.Context, agentID string, limit int) ([]domain.RecentSearch, error) {
	rows, err := r.procs.Query(ctx, "sp_get_recent_searches", agentID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RecentSearch, error) {
		var s domain.RecentSearch
		err := row.Scan(&s.Query, &s.ResultCount, &s.SearchedAt)
		return s, err
	})
}

func (r *searchRepository) Autocomplete(ctx context.Context, kind AutocompleteKind, agentID, prefix string, limit int) ([]domain.Suggestion, error) {
	name, ok := autocompleteProcedures[kind]
	if !ok {
		return nil, fmt.Errorf("unknown autocomplete kind %q", kind)
	}
	rows, err := r.procs.Query(ctx, name, agentID, prefix, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Suggestion, error) {
		var s domain.Suggestion
		err := row.Scan(&s.Value, &s.Label, &s.ID)
		return s, err
	})
}
