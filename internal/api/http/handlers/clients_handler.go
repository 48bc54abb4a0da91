package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// ClientsHandler serves /api/clients and the client-scoped note routes.
type ClientsHandler struct {
	clients *service.ClientService
	notes   *service.NoteService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clients *service.ClientService, notes *service.NoteService) *ClientsHandler {
	return &ClientsHandler{clients: clients, notes: notes}
}

// Create POST /api/clients.
func (h *ClientsHandler) Create(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.CreateClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	draft, err := req.ToDraft()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.clients.Create(c.UserContext(), agentID, draft)
	if err != nil {
		return err
	}
	return createdResult(c, res, "clientId")
}

// Get GET /api/clients/:clientId.
func (h *ClientsHandler) Get(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	client, err := h.clients.Get(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return ok(c, client)
}

// List GET /api/clients.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.ClientListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	items, page, err := h.clients.List(c.UserContext(), agentID, q.ToFilter())
	if err != nil {
		return err
	}
	return ok(c, dto.ClientListResponse{Clients: items, Pagination: page})
}

// Update PUT /api/clients/:clientId.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	var req dto.UpdateClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.IsEmpty() {
		return apperrors.NewValidationError("No fields provided for update", nil)
	}
	patch, err := req.ToPatch()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.clients.Update(c.UserContext(), agentID, id, patch)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "client")
}

// ToggleFavorite PATCH /api/clients/:clientId/favorite.
func (h *ClientsHandler) ToggleFavorite(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	res, err := h.clients.ToggleFavorite(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "client")
}

// Delete DELETE /api/clients/:clientId.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	res, err := h.clients.Delete(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "client")
}

// Statistics GET /api/clients/statistics.
func (h *ClientsHandler) Statistics(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	stats, err := h.clients.Statistics(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, stats)
}

// Birthdays GET /api/clients/birthdays?days=.
func (h *ClientsHandler) Birthdays(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	days, err := queryInt(c, "days", 7)
	if err != nil {
		return err
	}
	items, err := h.clients.UpcomingBirthdays(c.UserContext(), agentID, days)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// ListNotes GET /api/clients/:clientId/notes.
func (h *ClientsHandler) ListNotes(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	items, err := h.notes.ListByClient(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// CreateNote POST /api/clients/:clientId/notes. The path client wins over any body value.
func (h *ClientsHandler) CreateNote(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "clientId")
	if err != nil {
		return err
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.ClientID = id
	if err := validate.Struct(&req); err != nil {
		return err
	}
	res, err := h.notes.Create(c.UserContext(), agentID, req.ToDraft())
	if err != nil {
		return err
	}
	return createdResult(c, res, "noteId")
}
