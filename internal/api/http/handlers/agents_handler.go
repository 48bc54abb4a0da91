package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
)

// AgentsHandler exposes registration, login and profile endpoints.
type AgentsHandler struct {
	agents *service.AgentService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(agents *service.AgentService) *AgentsHandler {
	return &AgentsHandler{agents: agents}
}

// Register handles POST /api/agents/register.
func (h *AgentsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterAgentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.agents.Register(c.UserContext(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return created(c, authResponse(res))
}

// Login handles POST /api/agents/login.
func (h *AgentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	res, err := h.agents.Login(c.UserContext(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return err
	}
	return ok(c, authResponse(res))
}

// RequestPasswordReset handles POST /api/agents/password/reset. The response
// does not reveal whether the email is registered.
func (h *AgentsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.agents.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"message": "If the email is registered, a reset code has been sent",
	})
}

// ConfirmPasswordReset handles POST /api/agents/password/reset/confirm.
func (h *AgentsHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.agents.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return okMessage(c, "Password has been reset", nil)
}

// Me handles GET /api/agents/me.
func (h *AgentsHandler) Me(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	agent, err := h.agents.Profile(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewAgentResponse(agent))
}

// UpdateMe handles PUT /api/agents/me.
func (h *AgentsHandler) UpdateMe(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	agent, err := h.agents.UpdateProfile(c.UserContext(), agentID, req.ToPatch())
	if err != nil {
		return err
	}
	return okMessage(c, "Profile updated", dto.NewAgentResponse(agent))
}

// ChangePassword handles POST /api/agents/me/password.
func (h *AgentsHandler) ChangePassword(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.agents.ChangePassword(c.UserContext(), agentID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return okMessage(c, "Password changed", nil)
}

func authResponse(res *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Agent:     dto.NewAgentResponse(res.Agent),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}
}
