package events

import (
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAgentRegistered        EventType = "agent_registered"
	EventAgentLoggedIn          EventType = "agent_logged_in"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventAppointmentCreated     EventType = "appointment_created"
	EventReminderDue            EventType = "reminder_due"
	EventBirthdayDigest         EventType = "birthday_digest"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AgentID   string      `json:"agent_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AgentPayload carries the agent for account lifecycle events.
type AgentPayload struct {
	Agent     domain.Agent `json:"agent"`
	IPAddress string       `json:"ip_address,omitempty"`
	UserAgent string       `json:"user_agent,omitempty"`
}

// PasswordResetPayload carries the reset token to deliver.
type PasswordResetPayload struct {
	Agent     domain.Agent `json:"agent"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// AppointmentCreatedPayload identifies the new appointment. Handlers load the
// schedule context they need.
type AppointmentCreatedPayload struct {
	AppointmentID string `json:"appointment_id"`
}

// ReminderDuePayload carries a reminder claimed by the scheduler.
type ReminderDuePayload struct {
	Reminder domain.DueReminder `json:"reminder"`
}

// BirthdayDigestPayload lists today's client birthdays for one agent.
type BirthdayDigestPayload struct {
	AgentEmail string            `json:"agent_email"`
	AgentName  string            `json:"agent_name"`
	Birthdays  []domain.Birthday `json:"birthdays"`
}
