package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// NotesHandler serves /api/notes.
type NotesHandler struct {
	notes *service.NoteService
}

// NewNotesHandler constructs handler.
func NewNotesHandler(notes *service.NoteService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// Create POST /api/notes.
func (h *NotesHandler) Create(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.CreateNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.notes.Create(c.UserContext(), agentID, req.ToDraft())
	if err != nil {
		return err
	}
	return createdResult(c, res, "noteId")
}

// Get GET /api/notes/:noteId.
func (h *NotesHandler) Get(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "noteId")
	if err != nil {
		return err
	}
	note, err := h.notes.Get(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return ok(c, note)
}

// Update PUT /api/notes/:noteId.
func (h *NotesHandler) Update(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "noteId")
	if err != nil {
		return err
	}
	var req dto.UpdateNoteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.notes.Update(c.UserContext(), agentID, id, req.ToPatch())
	if err != nil {
		return err
	}
	return mutationResult(c, res, "note")
}

// Delete DELETE /api/notes/:noteId.
func (h *NotesHandler) Delete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "noteId")
	if err != nil {
		return err
	}
	res, err := h.notes.Delete(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "note")
}

// Important GET /api/notes/important.
func (h *NotesHandler) Important(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	items, err := h.notes.ListImportant(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Search GET /api/notes/search?q=&limit=.
func (h *NotesHandler) Search(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	term := c.Query("q")
	if term == "" {
		return apperrors.NewValidationError("Missing required fields: q", map[string]any{"missingFields": []string{"q"}})
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return err
	}
	items, err := h.notes.Search(c.UserContext(), agentID, term, limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}
