package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
)

// NotificationsHandler lists the agent's outbox history.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.NotificationListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	items, page, err := h.notifications.History(c.UserContext(), agentID, q.ToFilter())
	if err != nil {
		return err
	}
	return ok(c, dto.NotificationListResponse{Notifications: items, Pagination: page})
}
