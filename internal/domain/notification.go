package domain

import "time"

// NotificationChannel identifies a delivery transport.
type NotificationChannel string

const (
	ChannelEmail    NotificationChannel = "email"
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelPush     NotificationChannel = "push"
)

// OutboxStatus tracks an outbox row through delivery.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxSent       OutboxStatus = "sent"
	OutboxFailed     OutboxStatus = "failed"
)

// OutboxMessage is a queued notification awaiting delivery.
type OutboxMessage struct {
	ID            string              `json:"notificationId"`
	AgentID       string              `json:"agentId"`
	Channel       NotificationChannel `json:"channel"`
	Recipient     string              `json:"recipient"`
	Template      string              `json:"template"`
	Subject       string              `json:"subject"`
	Body          string              `json:"body"`
	Payload       map[string]any      `json:"payload,omitempty"`
	Status        OutboxStatus        `json:"status"`
	Attempts      int                 `json:"attempts"`
	MaxAttempts   int                 `json:"maxAttempts"`
	NextAttemptAt time.Time           `json:"nextAttemptAt"`
	LastError     string              `json:"lastError,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	SentAt        *time.Time          `json:"sentAt,omitempty"`
}

// NotificationFilter narrows outbox history listings.
type NotificationFilter struct {
	Status  *OutboxStatus
	Channel *NotificationChannel
	Page    Page
}
