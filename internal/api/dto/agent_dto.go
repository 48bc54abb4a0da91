package dto

import (
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// RegisterAgentRequest payload for POST /api/agents/register.
type RegisterAgentRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest payload for POST /api/agents/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest payload for POST /api/agents/password/reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest payload for POST /api/agents/password/reset/confirm.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ChangePasswordRequest payload for POST /api/agents/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// PreferencesPayload mirrors domain.NotificationPreferences on the wire.
type PreferencesPayload struct {
	Email       bool `json:"email"`
	SMS         bool `json:"sms"`
	WhatsApp    bool `json:"whatsApp"`
	Push        bool `json:"push"`
	DailyDigest bool `json:"dailyDigest"`
}

// UpdateProfileRequest payload for PUT /api/agents/me.
type UpdateProfileRequest struct {
	FirstName     *string             `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName      *string             `json:"lastName" validate:"omitempty,max=100"`
	Phone         *string             `json:"phone" validate:"omitempty,max=30"`
	AgencyName    *string             `json:"agencyName" validate:"omitempty,max=200"`
	LicenseNumber *string             `json:"licenseNumber" validate:"omitempty,max=100"`
	Timezone      *string             `json:"timezone" validate:"omitempty,max=64"`
	Preferences   *PreferencesPayload `json:"notificationPreferences"`
}

// ToPatch converts a validated request.
func (r UpdateProfileRequest) ToPatch() domain.AgentProfilePatch {
	patch := domain.AgentProfilePatch{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Phone:         r.Phone,
		AgencyName:    r.AgencyName,
		LicenseNumber: r.LicenseNumber,
		Timezone:      r.Timezone,
	}
	if r.Preferences != nil {
		prefs := domain.NotificationPreferences(*r.Preferences)
		patch.Preferences = &prefs
	}
	return patch
}

// AgentResponse is the public view of an agent.
type AgentResponse struct {
	AgentID       string             `json:"agentId"`
	FirstName     string             `json:"firstName"`
	LastName      string             `json:"lastName"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone,omitempty"`
	AgencyName    string             `json:"agencyName,omitempty"`
	LicenseNumber string             `json:"licenseNumber,omitempty"`
	Timezone      string             `json:"timezone"`
	Preferences   PreferencesPayload `json:"notificationPreferences"`
	LastLoginAt   *time.Time         `json:"lastLoginAt,omitempty"`
	CreatedDate   time.Time          `json:"createdDate"`
}

// NewAgentResponse builds the public view.
func NewAgentResponse(a *domain.Agent) AgentResponse {
	return AgentResponse{
		AgentID:       a.ID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		Phone:         a.Phone,
		AgencyName:    a.AgencyName,
		LicenseNumber: a.LicenseNumber,
		Timezone:      a.Timezone,
		Preferences:   PreferencesPayload(a.Preferences),
		LastLoginAt:   a.LastLoginAt,
		CreatedDate:   a.CreatedDate,
	}
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Agent     AgentResponse `json:"agent"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
}
