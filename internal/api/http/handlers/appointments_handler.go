package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// AppointmentsHandler serves /api/appointments.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointments *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointments}
}

// Create POST /api/appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.CreateAppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	draft, err := req.ToDraft()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.service.Create(c.UserContext(), agentID, draft)
	if err != nil {
		return err
	}
	return createdResult(c, res, "appointmentId")
}

// Update PUT /api/appointments/:appointmentId.
func (h *AppointmentsHandler) Update(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "appointmentId")
	if err != nil {
		return err
	}
	var req dto.UpdateAppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.service.Update(c.UserContext(), agentID, id, patch)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "appointment")
}

// UpdateStatus PATCH /api/appointments/:appointmentId/status.
func (h *AppointmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "appointmentId")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.service.UpdateStatus(c.UserContext(), agentID, id, domain.AppointmentStatus(req.Status))
	if err != nil {
		return err
	}
	return mutationResult(c, res, "appointment")
}

// Delete DELETE /api/appointments/:appointmentId.
func (h *AppointmentsHandler) Delete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "appointmentId")
	if err != nil {
		return err
	}
	res, err := h.service.Delete(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "appointment")
}

// Get GET /api/appointments/:appointmentId.
func (h *AppointmentsHandler) Get(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "appointmentId")
	if err != nil {
		return err
	}
	appt, err := h.service.Get(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return ok(c, appt)
}

// List GET /api/appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.AppointmentListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	filter, err := q.ToFilter()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	items, page, err := h.service.List(c.UserContext(), agentID, filter)
	if err != nil {
		return err
	}
	return ok(c, dto.AppointmentListResponse{Appointments: items, Pagination: page})
}

// Today GET /api/appointments/today.
func (h *AppointmentsHandler) Today(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	items, err := h.service.Today(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// ForDate GET /api/appointments/for-date?date=YYYY-MM-DD.
func (h *AppointmentsHandler) ForDate(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	date, err := queryDate(c, "date", true)
	if err != nil {
		return err
	}
	items, err := h.service.ForDate(c.UserContext(), agentID, *date)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Week GET /api/appointments/week-view?weekStart=YYYY-MM-DD.
func (h *AppointmentsHandler) Week(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	start, err := queryDate(c, "weekStart", false)
	if err != nil {
		return err
	}
	days, err := h.service.Week(c.UserContext(), agentID, start)
	if err != nil {
		return err
	}
	return ok(c, days)
}

// Calendar GET /api/appointments/calendar?month=&year=.
func (h *AppointmentsHandler) Calendar(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	if c.Query("month") == "" || c.Query("year") == "" {
		return apperrors.NewValidationError("month and year are required", nil)
	}
	month, err := queryInt(c, "month", 0)
	if err != nil {
		return err
	}
	year, err := queryInt(c, "year", 0)
	if err != nil {
		return err
	}
	days, err := h.service.Calendar(c.UserContext(), agentID, year, time.Month(month))
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"year": year, "month": month, "days": days})
}

// Search GET /api/appointments/search?q=&limit=.
func (h *AppointmentsHandler) Search(c *fiber.Ctx) error {
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
	items, err := h.service.Search(c.UserContext(), agentID, term, limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Statistics GET /api/appointments/statistics.
func (h *AppointmentsHandler) Statistics(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Statistics(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, stats)
}

// CheckConflicts POST /api/appointments/check-conflicts.
func (h *AppointmentsHandler) CheckConflicts(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.CheckConflictsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	q, err := req.ToQuery(agentID)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	report, err := h.service.CheckConflicts(c.UserContext(), q)
	if err != nil {
		return err
	}
	return ok(c, report)
}
