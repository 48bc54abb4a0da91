package dto

import (
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/validation"
)

// CreateAppointmentRequest payload for POST /api/appointments.
type CreateAppointmentRequest struct {
	ClientID        string `json:"clientId" validate:"required,uuid_canonical"`
	Title           string `json:"title" validate:"required,max=200"`
	AppointmentDate string `json:"appointmentDate" validate:"required,caldate"`
	StartTime       string `json:"startTime" validate:"required,clock"`
	EndTime         string `json:"endTime" validate:"required,clock"`
	Type            string `json:"type" validate:"required,oneof=Call Meeting 'Site Visit' 'Policy Review' 'Claim Processing'"`
	Priority        string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Description     string `json:"description" validate:"max=2000"`
	Location        string `json:"location" validate:"max=500"`
	Notes           string `json:"notes" validate:"max=2000"`
}

// ToDraft converts a validated request.
func (r CreateAppointmentRequest) ToDraft() (domain.AppointmentDraft, error) {
	date, err := validation.ParseDate(r.AppointmentDate)
	if err != nil {
		return domain.AppointmentDraft{}, err
	}
	start, err := validation.ParseClock(r.StartTime)
	if err != nil {
		return domain.AppointmentDraft{}, err
	}
	end, err := validation.ParseClock(r.EndTime)
	if err != nil {
		return domain.AppointmentDraft{}, err
	}
	return domain.AppointmentDraft{
		ClientID:        r.ClientID,
		AppointmentDate: date,
		StartTime:       start,
		EndTime:         end,
		Title:           r.Title,
		Description:     r.Description,
		Type:            domain.AppointmentType(r.Type),
		Priority:        domain.Priority(r.Priority),
		Location:        r.Location,
		Notes:           r.Notes,
	}, nil
}

// UpdateAppointmentRequest payload for PUT /api/appointments/:appointmentId.
// Only present fields are validated and applied.
type UpdateAppointmentRequest struct {
	ClientID        *string `json:"clientId" validate:"omitempty,uuid_canonical"`
	Title           *string `json:"title" validate:"omitempty,max=200"`
	AppointmentDate *string `json:"appointmentDate" validate:"omitempty,caldate"`
	StartTime       *string `json:"startTime" validate:"omitempty,clock"`
	EndTime         *string `json:"endTime" validate:"omitempty,clock"`
	Type            *string `json:"type" validate:"omitempty,oneof=Call Meeting 'Site Visit' 'Policy Review' 'Claim Processing'"`
	Status          *string `json:"status" validate:"omitempty,oneof=Scheduled Confirmed 'In Progress' Completed Cancelled Rescheduled"`
	Priority        *string `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	Location        *string `json:"location" validate:"omitempty,max=500"`
	Notes           *string `json:"notes" validate:"omitempty,max=2000"`
}

// ToPatch converts a validated request.
func (r UpdateAppointmentRequest) ToPatch() (domain.AppointmentPatch, error) {
	date, err := optDate(r.AppointmentDate)
	if err != nil {
		return domain.AppointmentPatch{}, err
	}
	start, err := optClock(r.StartTime)
	if err != nil {
		return domain.AppointmentPatch{}, err
	}
	end, err := optClock(r.EndTime)
	if err != nil {
		return domain.AppointmentPatch{}, err
	}
	return domain.AppointmentPatch{
		ClientID:        r.ClientID,
		AppointmentDate: date,
		StartTime:       start,
		EndTime:         end,
		Title:           r.Title,
		Description:     r.Description,
		Type:            optEnum[domain.AppointmentType](r.Type),
		Status:          optEnum[domain.AppointmentStatus](r.Status),
		Priority:        optEnum[domain.Priority](r.Priority),
		Location:        r.Location,
		Notes:           r.Notes,
	}, nil
}

// UpdateStatusRequest payload for PATCH /api/appointments/:appointmentId/status.
// The value is checked against the status whitelist by the service.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CheckConflictsRequest payload for POST /api/appointments/check-conflicts.
type CheckConflictsRequest struct {
	AppointmentDate      string  `json:"appointmentDate" validate:"required,caldate"`
	StartTime            string  `json:"startTime" validate:"required,clock"`
	EndTime              string  `json:"endTime" validate:"required,clock"`
	ExcludeAppointmentID *string `json:"excludeAppointmentId" validate:"omitempty,uuid_canonical"`
}

// ToQuery converts a validated request for agentID.
func (r CheckConflictsRequest) ToQuery(agentID string) (domain.ConflictQuery, error) {
	date, err := validation.ParseDate(r.AppointmentDate)
	if err != nil {
		return domain.ConflictQuery{}, err
	}
	start, err := validation.ParseClock(r.StartTime)
	if err != nil {
		return domain.ConflictQuery{}, err
	}
	end, err := validation.ParseClock(r.EndTime)
	if err != nil {
		return domain.ConflictQuery{}, err
	}
	return domain.ConflictQuery{
		AgentID:              agentID,
		Date:                 date,
		StartTime:            start,
		EndTime:              end,
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}, nil
}

// AppointmentListQuery binds GET /api/appointments query parameters.
type AppointmentListQuery struct {
	StartDate  string `query:"startDate" validate:"omitempty,caldate"`
	EndDate    string `query:"endDate" validate:"omitempty,caldate"`
	Status     string `query:"status" validate:"omitempty,oneof=Scheduled Confirmed 'In Progress' Completed Cancelled Rescheduled"`
	Type       string `query:"type" validate:"omitempty,oneof=Call Meeting 'Site Visit' 'Policy Review' 'Claim Processing'"`
	Priority   string `query:"priority" validate:"omitempty,oneof=High Medium Low"`
	ClientID   string `query:"clientId" validate:"omitempty,uuid_canonical"`
	SearchTerm string `query:"searchTerm"`
	Page       int    `query:"page" validate:"omitempty,min=1,max=10000"`
	PageSize   int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ToFilter converts validated query parameters.
func (q AppointmentListQuery) ToFilter() (domain.AppointmentFilter, error) {
	start, err := optDate(&q.StartDate)
	if err != nil {
		return domain.AppointmentFilter{}, err
	}
	end, err := optDate(&q.EndDate)
	if err != nil {
		return domain.AppointmentFilter{}, err
	}
	return domain.AppointmentFilter{
		StartDate:  start,
		EndDate:    end,
		Status:     optEnum[domain.AppointmentStatus](nonBlank(q.Status)),
		Type:       optEnum[domain.AppointmentType](nonBlank(q.Type)),
		Priority:   optEnum[domain.Priority](nonBlank(q.Priority)),
		ClientID:   nonBlank(q.ClientID),
		SearchTerm: nonBlank(q.SearchTerm),
		Page:       domain.Page{Number: q.Page, Size: q.PageSize},
	}, nil
}

// AppointmentListResponse is the list payload.
type AppointmentListResponse struct {
	Appointments []domain.Appointment `json:"appointments"`
	Pagination   domain.Pagination    `json:"pagination"`
}
