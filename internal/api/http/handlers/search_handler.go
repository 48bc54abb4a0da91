package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// SearchHandler serves global search and autocomplete.
type SearchHandler struct {
	search *service.SearchService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Global GET /api/search?q=&types=&limit=.
func (h *SearchHandler) Global(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.SearchQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	entities := q.Entities()
	for _, e := range entities {
		if !knownEntity(e) {
			return apperrors.NewValidationError("Invalid search type: "+string(e), map[string]any{"validTypes": domain.SearchEntities})
		}
	}
	results, err := h.search.Global(c.UserContext(), agentID, q.Q, entities, q.Limit)
	if err != nil {
		return err
	}
	return ok(c, results)
}

// Recent GET /api/search/recent.
func (h *SearchHandler) Recent(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	items, err := h.search.Recent(c.UserContext(), agentID, limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Autocomplete GET /api/autocomplete/:kind?q=.
func (h *SearchHandler) Autocomplete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	kind := repository.AutocompleteKind(c.Params("kind"))
	switch kind {
	case repository.AutocompleteClients, repository.AutocompletePolicyTypes, repository.AutocompleteCompanies:
	default:
		return apperrors.NewDomainError("NOT_FOUND", "Unknown autocomplete source: "+string(kind), http.StatusNotFound, nil)
	}
	var q dto.AutocompleteQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	items, err := h.search.Autocomplete(c.UserContext(), kind, agentID, q.Q, q.Limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}

func knownEntity(e domain.SearchEntity) bool {
	for _, known := range domain.SearchEntities {
		if e == known {
			return true
		}
	}
	return false
}
