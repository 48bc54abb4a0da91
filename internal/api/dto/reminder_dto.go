package dto

import (
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/validation"
)

// CreateReminderRequest payload for POST /api/reminders.
type CreateReminderRequest struct {
	ClientID       *string `json:"clientId" validate:"omitempty,uuid_canonical"`
	AppointmentID  *string `json:"appointmentId" validate:"omitempty,uuid_canonical"`
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description" validate:"max=2000"`
	ReminderType   string  `json:"reminderType" validate:"omitempty,oneof=Call Visit 'Policy Expiry' Birthday Holiday Custom"`
	ReminderDate   string  `json:"reminderDate" validate:"required,caldate"`
	ReminderTime   *string `json:"reminderTime" validate:"omitempty,clock"`
	Priority       string  `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	EnableSMS      bool    `json:"enableSMS"`
	EnableWhatsApp bool    `json:"enableWhatsApp"`
	EnablePush     bool    `json:"enablePush"`
}

// ToDraft converts a validated request.
func (r CreateReminderRequest) ToDraft() (domain.ReminderDraft, error) {
	date, err := validation.ParseDate(r.ReminderDate)
	if err != nil {
		return domain.ReminderDraft{}, err
	}
	at, err := optClock(r.ReminderTime)
	if err != nil {
		return domain.ReminderDraft{}, err
	}
	return domain.ReminderDraft{
		ClientID:       r.ClientID,
		AppointmentID:  r.AppointmentID,
		Title:          r.Title,
		Description:    r.Description,
		ReminderType:   domain.ReminderType(r.ReminderType),
		ReminderDate:   date,
		ReminderTime:   at,
		Priority:       domain.Priority(r.Priority),
		EnableSMS:      r.EnableSMS,
		EnableWhatsApp: r.EnableWhatsApp,
		EnablePush:     r.EnablePush,
	}, nil
}

// UpdateReminderRequest payload for PUT /api/reminders/:reminderId.
type UpdateReminderRequest struct {
	ClientID       *string `json:"clientId" validate:"omitempty,uuid_canonical"`
	Title          *string `json:"title" validate:"omitempty,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=2000"`
	ReminderType   *string `json:"reminderType" validate:"omitempty,oneof=Call Visit 'Policy Expiry' Birthday Holiday Custom"`
	ReminderDate   *string `json:"reminderDate" validate:"omitempty,caldate"`
	ReminderTime   *string `json:"reminderTime" validate:"omitempty,clock"`
	Priority       *string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Status         *string `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	EnableSMS      *bool   `json:"enableSMS"`
	EnableWhatsApp *bool   `json:"enableWhatsApp"`
	EnablePush     *bool   `json:"enablePush"`
}

// ToPatch converts a validated request.
func (r UpdateReminderRequest) ToPatch() (domain.ReminderPatch, error) {
	date, err := optDate(r.ReminderDate)
	if err != nil {
		return domain.ReminderPatch{}, err
	}
	at, err := optClock(r.ReminderTime)
	if err != nil {
		return domain.ReminderPatch{}, err
	}
	return domain.ReminderPatch{
		ClientID:       r.ClientID,
		Title:          r.Title,
		Description:    r.Description,
		ReminderType:   optEnum[domain.ReminderType](r.ReminderType),
		ReminderDate:   date,
		ReminderTime:   at,
		Priority:       optEnum[domain.Priority](r.Priority),
		Status:         optEnum[domain.ReminderStatus](r.Status),
		EnableSMS:      r.EnableSMS,
		EnableWhatsApp: r.EnableWhatsApp,
		EnablePush:     r.EnablePush,
	}, nil
}

// ReminderListQuery binds GET /api/reminders query parameters.
type ReminderListQuery struct {
	ReminderType string `query:"reminderType" validate:"omitempty,oneof=Call Visit 'Policy Expiry' Birthday Holiday Custom"`
	Status       string `query:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	Priority     string `query:"priority" validate:"omitempty,oneof=High Medium Low"`
	ClientID     string `query:"clientId" validate:"omitempty,uuid_canonical"`
	StartDate    string `query:"startDate" validate:"omitempty,caldate"`
	EndDate      string `query:"endDate" validate:"omitempty,caldate"`
	Page         int    `query:"page" validate:"omitempty,min=1,max=10000"`
	PageSize     int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ToFilter converts validated query parameters.
func (q ReminderListQuery) ToFilter() (domain.ReminderFilter, error) {
	start, err := optDate(&q.StartDate)
	if err != nil {
		return domain.ReminderFilter{}, err
	}
	end, err := optDate(&q.EndDate)
	if err != nil {
		return domain.ReminderFilter{}, err
	}
	return domain.ReminderFilter{
		ReminderType: optEnum[domain.ReminderType](nonBlank(q.ReminderType)),
		Status:       optEnum[domain.ReminderStatus](nonBlank(q.Status)),
		Priority:     optEnum[domain.Priority](nonBlank(q.Priority)),
		ClientID:     nonBlank(q.ClientID),
		StartDate:    start,
		EndDate:      end,
		Page:         domain.Page{Number: q.Page, Size: q.PageSize},
	}, nil
}

// ReminderListResponse is the list payload.
type ReminderListResponse struct {
	Reminders  []domain.Reminder `json:"reminders"`
	Pagination domain.Pagination `json:"pagination"`
}
