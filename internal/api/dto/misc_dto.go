package dto

import (
	"strings"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// SearchQuery binds GET /api/search.
type SearchQuery struct {
	Q     string `query:"q"`
	Types string `query:"types"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// Entities splits the comma separated types parameter. Unknown names are returned as-is
// so the caller can reject them.
func (q SearchQuery) Entities() []domain.SearchEntity {
	var out []domain.SearchEntity
	for _, part := range strings.Split(q.Types, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, domain.SearchEntity(part))
		}
	}
	return out
}

// AutocompleteQuery binds GET /api/autocomplete/:kind.
type AutocompleteQuery struct {
	Q     string `query:"q"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=20"`
}

// DateRangeQuery binds optional startDate/endDate parameters.
type DateRangeQuery struct {
	StartDate string `query:"startDate" validate:"omitempty,caldate"`
	EndDate   string `query:"endDate" validate:"omitempty,caldate"`
}

// Bounds parses the validated range.
func (q DateRangeQuery) Bounds() (*domain.Date, *domain.Date, error) {
	start, err := optDate(&q.StartDate)
	if err != nil {
		return nil, nil, err
	}
	end, err := optDate(&q.EndDate)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// NotificationListQuery binds GET /api/notifications.
type NotificationListQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=pending processing sent failed"`
	Channel  string `query:"channel" validate:"omitempty,oneof=email sms whatsapp push"`
	Page     int    `query:"page" validate:"omitempty,min=1,max=10000"`
	PageSize int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ToFilter converts validated query parameters.
func (q NotificationListQuery) ToFilter() domain.NotificationFilter {
	return domain.NotificationFilter{
		Status:  optEnum[domain.OutboxStatus](nonBlank(q.Status)),
		Channel: optEnum[domain.NotificationChannel](nonBlank(q.Channel)),
		Page:    domain.Page{Number: q.Page, Size: q.PageSize},
	}
}

// NotificationListResponse is the list payload.
type NotificationListResponse struct {
	Notifications []domain.OutboxMessage `json:"notifications"`
	Pagination    domain.Pagination      `json:"pagination"`
}

// ValidateSamplesRequest payload for POST /api/utility/validate.
type ValidateSamplesRequest struct {
	UUIDs []string `json:"uuids"`
	Dates []string `json:"dates"`
	Times []string `json:"times"`
}

// SampleResult reports one validated sample.
type SampleResult struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}
