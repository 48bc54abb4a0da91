package domain

import "time"

// ReminderType enumerates reminder categories.
type ReminderType string

const (
	ReminderTypeCall         ReminderType = "Call"
	ReminderTypeVisit        ReminderType = "Visit"
	ReminderTypePolicyExpiry ReminderType = "Policy Expiry"
	ReminderTypeBirthday     ReminderType = "Birthday"
	ReminderTypeHoliday      ReminderType = "Holiday"
	ReminderTypeCustom       ReminderType = "Custom"
)

// ReminderTypes lists accepted reminder types.
var ReminderTypes = []ReminderType{
	ReminderTypeCall,
	ReminderTypeVisit,
	ReminderTypePolicyExpiry,
	ReminderTypeBirthday,
	ReminderTypeHoliday,
	ReminderTypeCustom,
}

// ReminderStatus enumerates reminder states.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "Pending"
	ReminderStatusCompleted ReminderStatus = "Completed"
	ReminderStatusCancelled ReminderStatus = "Cancelled"
)

// ReminderStatuses lists accepted reminder statuses.
var ReminderStatuses = []ReminderStatus{ReminderStatusPending, ReminderStatusCompleted, ReminderStatusCancelled}

// Reminder is a dated follow-up for an agent, optionally tied to a client or appointment.
type Reminder struct {
	ID             string         `json:"reminderId"`
	AgentID        string         `json:"agentId"`
	ClientID       *string        `json:"clientId,omitempty"`
	ClientName     string         `json:"clientName,omitempty"`
	AppointmentID  *string        `json:"appointmentId,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	ReminderType   ReminderType   `json:"reminderType"`
	ReminderDate   Date           `json:"reminderDate"`
	ReminderTime   *TimeOfDay     `json:"reminderTime,omitempty"`
	Priority       Priority       `json:"priority"`
	Status         ReminderStatus `json:"status"`
	EnableSMS      bool           `json:"enableSMS"`
	EnableWhatsApp bool           `json:"enableWhatsApp"`
	EnablePush     bool           `json:"enablePush"`
	NotifiedAt     *time.Time     `json:"notifiedAt,omitempty"`
	CompletedDate  *time.Time     `json:"completedDate,omitempty"`
	CreatedDate    time.Time      `json:"createdDate"`
	ModifiedDate   *time.Time     `json:"modifiedDate,omitempty"`
	IsActive       bool           `json:"isActive"`
}

// ReminderDraft carries fields for a new reminder.
type ReminderDraft struct {
	ClientID       *string
	AppointmentID  *string
	Title          string
	Description    string
	ReminderType   ReminderType
	ReminderDate   Date
	ReminderTime   *TimeOfDay
	Priority       Priority
	EnableSMS      bool
	EnableWhatsApp bool
	EnablePush     bool
}

// ReminderPatch is a partial reminder update.
type ReminderPatch struct {
	ClientID       *string
	Title          *string
	Description    *string
	ReminderType   *ReminderType
	ReminderDate   *Date
	ReminderTime   *TimeOfDay
	Priority       *Priority
	Status         *ReminderStatus
	EnableSMS      *bool
	EnableWhatsApp *bool
	EnablePush     *bool
}

// ReminderFilter narrows reminder listings.
type ReminderFilter struct {
	ReminderType *ReminderType
	Status       *ReminderStatus
	Priority     *Priority
	ClientID     *string
	StartDate    *Date
	EndDate      *Date
	Page         Page
}

// DueReminder is a reminder claimed for notification by the scheduler.
type DueReminder struct {
	Reminder
	AgentEmail  string
	AgentPhone  string
	AgentName   string
	ClientPhone string
}
