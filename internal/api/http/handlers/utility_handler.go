package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/service"
	"github.com/spec-kit/agentdesk/internal/validation"
)

// UtilityHandler exposes enum lists, server time, sample validation and cache flush.
type UtilityHandler struct {
	analytics *service.AnalyticsService
	clock     service.Clock
}

// NewUtilityHandler constructs handler.
func NewUtilityHandler(analytics *service.AnalyticsService, clock service.Clock) *UtilityHandler {
	return &UtilityHandler{analytics: analytics, clock: clock}
}

// Enums GET /api/utility/enums.
func (h *UtilityHandler) Enums(c *fiber.Ctx) error {
	return ok(c, fiber.Map{
		"appointmentTypes":    domain.AppointmentTypes,
		"appointmentStatuses": domain.AppointmentStatuses,
		"priorities":          domain.Priorities,
		"clientTypes":         domain.ClientTypes,
		"policyStatuses":      domain.PolicyStatuses,
		"premiumFrequencies":  domain.PremiumFrequencies,
		"reminderTypes":       domain.ReminderTypes,
		"reminderStatuses":    domain.ReminderStatuses,
		"searchTypes":         domain.SearchEntities,
	})
}

// Time GET /api/utility/time.
func (h *UtilityHandler) Time(c *fiber.Ctx) error {
	now := h.clock.Time()
	today := h.clock.Today()
	weekStart := today.StartOfWeek()
	return ok(c, fiber.Map{
		"now":       now,
		"timezone":  now.Location().String(),
		"today":     today,
		"time":      h.clock.TimeOfDay(),
		"weekStart": weekStart,
		"weekEnd":   weekStart.AddDays(6),
	})
}

// Validate POST /api/utility/validate.
func (h *UtilityHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateSamplesRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return ok(c, fiber.Map{
		"uuids": check(req.UUIDs, validation.IsUUID),
		"dates": check(req.Dates, validation.IsDate),
		"times": check(req.Times, validation.IsClockTime),
	})
}

// FlushCache DELETE /api/utility/cache.
func (h *UtilityHandler) FlushCache(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	n, err := h.analytics.FlushCache(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return okMessage(c, "Cache flushed", fiber.Map{"removedKeys": n})
}

func check(values []string, valid func(string) bool) []dto.SampleResult {
	out := make([]dto.SampleResult, 0, len(values))
	for _, v := range values {
		out = append(out, dto.SampleResult{Value: v, Valid: valid(v)})
	}
	return out
}
