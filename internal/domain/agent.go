package domain

import "time"

// Agent is the insurance agent who owns clients, appointments, policies and reminders.
type Agent struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	PasswordHash  string `json:"-"`
	AgencyName    string
	LicenseNumber string
	Timezone      string
	Preferences   NotificationPreferences
	IsActive      bool
	LastLoginAt   *time.Time
	CreatedDate   time.Time
	ModifiedDate  *time.Time
}

// FullName joins first and last name.
func (a Agent) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// NotificationPreferences controls which channels an agent receives.
type NotificationPreferences struct {
	Email       bool `json:"email"`
	SMS         bool `json:"sms"`
	WhatsApp    bool `json:"whatsApp"`
	Push        bool `json:"push"`
	DailyDigest bool `json:"dailyDigest"`
}

// AgentProfilePatch is a partial profile update.
type AgentProfilePatch struct {
	FirstName     *string
	LastName      *string
	Phone         *string
	AgencyName    *string
	LicenseNumber *string
	Timezone      *string
	Preferences   *NotificationPreferences
}

// PasswordResetToken represents stored reset tokens.
type PasswordResetToken struct {
	ID        string
	AgentID   string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
