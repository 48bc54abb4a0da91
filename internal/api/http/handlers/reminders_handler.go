package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// RemindersHandler serves /api/reminders.
type RemindersHandler struct {
	reminders *service.ReminderService
}

// NewRemindersHandler constructs handler.
func NewRemindersHandler(reminders *service.ReminderService) *RemindersHandler {
	return &RemindersHandler{reminders: reminders}
}

// Create POST /api/reminders.
func (h *RemindersHandler) Create(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.CreateReminderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	draft, err := req.ToDraft()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.reminders.Create(c.UserContext(), agentID, draft)
	if err != nil {
		return err
	}
	return createdResult(c, res, "reminderId")
}

// Get GET /api/reminders/:reminderId.
func (h *RemindersHandler) Get(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "reminderId")
	if err != nil {
		return err
	}
	rem, err := h.reminders.Get(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return ok(c, rem)
}

// List GET /api/reminders.
func (h *RemindersHandler) List(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.ReminderListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	filter, err := q.ToFilter()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	items, page, err := h.reminders.List(c.UserContext(), agentID, filter)
	if err != nil {
		return err
	}
	return ok(c, dto.ReminderListResponse{Reminders: items, Pagination: page})
}

// Update PUT /api/reminders/:reminderId.
func (h *RemindersHandler) Update(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "reminderId")
	if err != nil {
		return err
	}
	var req dto.UpdateReminderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.reminders.Update(c.UserContext(), agentID, id, patch)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "reminder")
}

// Complete PATCH /api/reminders/:reminderId/complete.
func (h *RemindersHandler) Complete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "reminderId")
	if err != nil {
		return err
	}
	res, err := h.reminders.Complete(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "reminder")
}

// Delete DELETE /api/reminders/:reminderId.
func (h *RemindersHandler) Delete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "reminderId")
	if err != nil {
		return err
	}
	res, err := h.reminders.Delete(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "reminder")
}

// Today GET /api/reminders/today.
func (h *RemindersHandler) Today(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	items, err := h.reminders.Today(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Upcoming GET /api/reminders/upcoming?days=.
func (h *RemindersHandler) Upcoming(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	days, err := queryInt(c, "days", 0)
	if err != nil {
		return err
	}
	items, err := h.reminders.Upcoming(c.UserContext(), agentID, days)
	if err != nil {
		return err
	}
	return ok(c, items)
}
