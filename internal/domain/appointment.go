package domain

import "time"

// AppointmentType enumerates the kinds of client interactions.
type AppointmentType string

const (
	AppointmentTypeCall            AppointmentType = "Call"
	AppointmentTypeMeeting         AppointmentType = "Meeting"
	AppointmentTypeSiteVisit       AppointmentType = "Site Visit"
	AppointmentTypePolicyReview    AppointmentType = "Policy Review"
	AppointmentTypeClaimProcessing AppointmentType = "Claim Processing"
)

// AppointmentTypes lists accepted appointment types in display order.
var AppointmentTypes = []AppointmentType{
	AppointmentTypeCall,
	AppointmentTypeMeeting,
	AppointmentTypeSiteVisit,
	AppointmentTypePolicyReview,
	AppointmentTypeClaimProcessing,
}

// AppointmentStatus enumerates lifecycle labels. Transitions are not enforced.
type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "Scheduled"
	AppointmentStatusConfirmed   AppointmentStatus = "Confirmed"
	AppointmentStatusInProgress  AppointmentStatus = "In Progress"
	AppointmentStatusCompleted   AppointmentStatus = "Completed"
	AppointmentStatusCancelled   AppointmentStatus = "Cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "Rescheduled"
)

// AppointmentStatuses lists accepted statuses in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusConfirmed,
	AppointmentStatusInProgress,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusRescheduled,
}

// Priority is shared by appointments and reminders.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists accepted priorities.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Appointment is a scheduled interaction between an agent and a client.
type Appointment struct {
	ID              string            `json:"appointmentId"`
	AgentID         string            `json:"agentId"`
	ClientID        string            `json:"clientId"`
	ClientName      string            `json:"clientName,omitempty"`
	ClientPhone     string            `json:"clientPhone,omitempty"`
	ClientEmail     string            `json:"clientEmail,omitempty"`
	AppointmentDate Date              `json:"appointmentDate"`
	StartTime       TimeOfDay         `json:"startTime"`
	EndTime         TimeOfDay         `json:"endTime"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Type            AppointmentType   `json:"type"`
	Status          AppointmentStatus `json:"status"`
	Priority        Priority          `json:"priority"`
	Location        string            `json:"location,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	ReminderSet     bool              `json:"reminderSet"`
	CreatedDate     time.Time         `json:"createdDate"`
	ModifiedDate    *time.Time        `json:"modifiedDate,omitempty"`
	IsActive        bool              `json:"isActive"`
}

// AppointmentDraft carries the fields for a new appointment.
type AppointmentDraft struct {
	ClientID        string
	AppointmentDate Date
	StartTime       TimeOfDay
	EndTime         TimeOfDay
	Title           string
	Description     string
	Type            AppointmentType
	Priority        Priority
	Location        string
	Notes           string
}

// AppointmentPatch holds a partial update; nil fields are left untouched.
type AppointmentPatch struct {
	ClientID        *string
	AppointmentDate *Date
	StartTime       *TimeOfDay
	EndTime         *TimeOfDay
	Title           *string
	Description     *string
	Type            *AppointmentType
	Status          *AppointmentStatus
	Priority        *Priority
	Location        *string
	Notes           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AppointmentPatch) IsEmpty() bool {
	return p.ClientID == nil && p.AppointmentDate == nil && p.StartTime == nil && p.EndTime == nil &&
		p.Title == nil && p.Description == nil && p.Type == nil && p.Status == nil &&
		p.Priority == nil && p.Location == nil && p.Notes == nil
}

// AppointmentFilter narrows list queries. AgentID is always applied.
type AppointmentFilter struct {
	StartDate  *Date
	EndDate    *Date
	Status     *AppointmentStatus
	Type       *AppointmentType
	Priority   *Priority
	ClientID   *string
	SearchTerm *string
	Page       Page
}

// ConflictQuery describes a candidate slot to check against existing appointments.
type ConflictQuery struct {
	AgentID              string
	Date                 Date
	StartTime            TimeOfDay
	EndTime              TimeOfDay
	ExcludeAppointmentID *string
}

// ConflictReport is the outcome of a conflict check.
type ConflictReport struct {
	HasConflicts  bool          `json:"hasConflicts"`
	ConflictCount int           `json:"conflictCount"`
	Conflicts     []Appointment `json:"conflicts"`
}

// AppointmentStatistics aggregates an agent's appointment counts.
type AppointmentStatistics struct {
	Total        int `json:"totalAppointments"`
	Today        int `json:"todayAppointments"`
	Upcoming     int `json:"upcomingAppointments"`
	Scheduled    int `json:"scheduledAppointments"`
	Confirmed    int `json:"confirmedAppointments"`
	InProgress   int `json:"inProgressAppointments"`
	Completed    int `json:"completedAppointments"`
	Cancelled    int `json:"cancelledAppointments"`
	Rescheduled  int `json:"rescheduledAppointments"`
	ThisWeek     int `json:"thisWeekAppointments"`
	ThisMonth    int `json:"thisMonthAppointments"`
	HighPriority int `json:"highPriorityAppointments"`
}

// WeekDay groups appointments for a single day of a week view.
type WeekDay struct {
	Date         Date          `json:"date"`
	DayName      string        `json:"dayName"`
	Appointments []Appointment `json:"appointments"`
}

// CalendarDay summarizes a day of a month calendar.
type CalendarDay struct {
	Date             Date `json:"date"`
	AppointmentCount int  `json:"appointmentCount"`
	ConfirmedCount   int  `json:"confirmedCount"`
	HighPriority     int  `json:"highPriorityCount"`
}
