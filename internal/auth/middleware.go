package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

const (
	agentIDKey = "auth_agent_id"
	agentKey   = "auth_agent"
)

// AuthMiddleware validates bearer tokens and resolves the calling agent.
type AuthMiddleware struct {
	tokens *TokenManager
	agents repository.AgentRepository
}

// NewAuthMiddleware constructs middleware. When agents is nil the token
// subject is trusted without a lookup.
func NewAuthMiddleware(tokens *TokenManager, agents repository.AgentRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, agents: agents}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.agents != nil {
		agent, err := m.agents.GetByID(c.UserContext(), claims.AgentID())
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("agent not found")
			}
			return apperrors.MapError(err)
		}
		c.Locals(agentKey, agent)
	}

	c.Locals(agentIDKey, claims.AgentID())
	return c.Next()
}

// AgentIDFromContext retrieves the authenticated agent id.
func AgentIDFromContext(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(agentIDKey).(string)
	return id, ok && id != ""
}

// AgentFromContext retrieves the loaded agent, when the middleware looked it up.
func AgentFromContext(c *fiber.Ctx) (*domain.Agent, bool) {
	agent, ok := c.Locals(agentKey).(*domain.Agent)
	return agent, ok
}

// SetAgentID stores an agent id in the request locals.
func SetAgentID(c *fiber.Ctx, agentID string) {
	c.Locals(agentIDKey, agentID)
}
