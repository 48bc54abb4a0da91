package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/auth"
	"github.com/spec-kit/agentdesk/internal/config"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/events"
	"github.com/spec-kit/agentdesk/internal/repository"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// AgentService coordinates registration, login and profile flows.
type AgentService struct {
	agents     repository.AgentRepository
	resets     repository.PasswordResetRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// AgentDependencies encapsulates repo requirements for the agent service.
type AgentDependencies struct {
	AgentRepo         repository.AgentRepository
	PasswordResetRepo repository.PasswordResetRepository
	Dispatcher        events.Dispatcher
	Logger            *zap.Logger
}

// RegisterInput is a new agent account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// LoginInput carries credentials and request metadata for the login alert.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// AuthResult is an authenticated agent with its access token.
type AuthResult struct {
	Agent     *domain.Agent
	Token     string
	ExpiresAt time.Time
}

// NewAgentService builds the service.
func NewAgentService(cfg config.Config, deps AgentDependencies) *AgentService {
	return &AgentService{
		agents:     deps.AgentRepo,
		resets:     deps.PasswordResetRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		logger:     orNop(deps.Logger),
		now:        time.Now,
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AgentService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new agent account and signs it in.
func (s *AgentService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.agents.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	agent := &domain.Agent{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Timezone:     "UTC",
		IsActive:     true,
		CreatedDate:  s.now().UTC(),
		Preferences:  domain.NotificationPreferences{Email: true, Push: true, DailyDigest: true},
	}
	res, err := s.agents.Register(ctx, agent)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, apperrors.NewValidationError(res.Message, nil)
	}

	out, err := s.issue(agent)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventAgentRegistered, agent.ID, events.AgentPayload{Agent: *agent})
	return out, nil
}

// Login authenticates an agent by email and password.
func (s *AgentService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	agent, err := s.agents.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(agent.PasswordHash, in.Password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := s.agents.RecordLogin(ctx, agent.ID); err != nil {
		s.logger.Warn("record login failed", zap.String("agent_id", agent.ID), zap.Error(err))
	}

	out, err := s.issue(agent)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventAgentLoggedIn, agent.ID, events.AgentPayload{
		Agent:     *agent,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	})
	return out, nil
}

// Profile returns the agent's account.
func (s *AgentService) Profile(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, notFoundAs(err, "agent")
	}
	return agent, nil
}

// UpdateProfile applies a partial profile update and returns the fresh row.
func (s *AgentService) UpdateProfile(ctx context.Context, agentID string, patch domain.AgentProfilePatch) (*domain.Agent, error) {
	if patch.Timezone != nil {
		if _, err := time.LoadLocation(*patch.Timezone); err != nil {
			return nil, apperrors.NewValidationError("invalid timezone", map[string]any{"timezone": *patch.Timezone})
		}
	}
	res, err := s.agents.Update(ctx, agentID, patch)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, apperrors.NewNotFound("agent", nil)
	}
	return s.Profile(ctx, agentID)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AgentService) ChangePassword(ctx context.Context, agentID, currentPassword, newPassword string) error {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return notFoundAs(err, "agent")
	}
	if err := auth.ComparePassword(agent.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}
	return s.setPassword(ctx, agentID, newPassword)
}

// RequestPasswordReset issues a reset token for the email when it belongs to
// an active agent. Unknown emails succeed silently.
func (s *AgentService) RequestPasswordReset(ctx context.Context, email string) error {
	agent, err := s.agents.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiresAt := s.now().Add(s.resetTTL).UTC()
	if _, err := s.resets.Create(ctx, agent.ID, token, expiresAt); err != nil {
		return err
	}
	s.publish(ctx, events.EventPasswordResetRequested, agent.ID, events.PasswordResetPayload{
		Agent:     *agent,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	return nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AgentService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	invalid := apperrors.NewValidationError("reset token is invalid or expired", nil)
	token, err := s.resets.GetByToken(ctx, strings.TrimSpace(tokenStr))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invalid
		}
		return err
	}
	if token.UsedAt != nil || s.now().After(token.ExpiresAt) {
		return invalid
	}
	res, err := s.resets.MarkUsed(ctx, token.ID)
	if err != nil {
		return err
	}
	if !res.Success {
		return invalid
	}
	return s.setPassword(ctx, token.AgentID, newPassword)
}

func (s *AgentService) setPassword(ctx context.Context, agentID, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	res, err := s.agents.UpdatePassword(ctx, agentID, hash)
	if err != nil {
		return err
	}
	if !res.Success {
		return apperrors.NewNotFound("agent", nil)
	}
	return nil
}

func (s *AgentService) issue(agent *domain.Agent) (*AuthResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(agent.ID, agent.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Agent: agent, Token: token, ExpiresAt: exp}, nil
}

func (s *AgentService) publish(ctx context.Context, eventType events.EventType, agentID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.PublishAsync(ctx, events.Event{Type: eventType, AgentID: agentID, Payload: payload})
}
