package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// AnalyticsHandler serves /api/analytics.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard GET /api/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	overview, err := h.analytics.Dashboard(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, overview)
}

// Appointments GET /api/analytics/appointments?startDate=&endDate=.
func (h *AnalyticsHandler) Appointments(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.DateRangeQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	start, end, err := q.Bounds()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	report, err := h.analytics.Appointments(c.UserContext(), agentID, start, end)
	if err != nil {
		return err
	}
	return ok(c, report)
}

// Policies GET /api/analytics/policies.
func (h *AnalyticsHandler) Policies(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	report, err := h.analytics.Policies(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, report)
}
