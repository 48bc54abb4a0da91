package dto

import (
	"github.com/spec-kit/agentdesk/internal/domain"
)

// CreateClientRequest payload for POST /api/clients.
type CreateClientRequest struct {
	FirstName   string   `json:"firstName" validate:"required,max=100"`
	LastName    string   `json:"lastName" validate:"required,max=100"`
	Phone       string   `json:"phone" validate:"required,max=30"`
	Email       string   `json:"email" validate:"omitempty,email"`
	WhatsApp    string   `json:"whatsApp" validate:"omitempty,max=30"`
	DateOfBirth *string  `json:"dateOfBirth" validate:"omitempty,caldate"`
	Address     string   `json:"address" validate:"max=500"`
	ClientType  string   `json:"clientType" validate:"omitempty,oneof=Lead Prospect Policyholder"`
	Notes       string   `json:"notes" validate:"max=2000"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

// ToDraft converts a validated request.
func (r CreateClientRequest) ToDraft() (domain.ClientDraft, error) {
	dob, err := optDate(r.DateOfBirth)
	if err != nil {
		return domain.ClientDraft{}, err
	}
	return domain.ClientDraft{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		WhatsApp:    r.WhatsApp,
		DateOfBirth: dob,
		Address:     r.Address,
		ClientType:  domain.ClientType(r.ClientType),
		Notes:       r.Notes,
		Tags:        r.Tags,
	}, nil
}

// UpdateClientRequest payload for PUT /api/clients/:clientId.
type UpdateClientRequest struct {
	FirstName   *string  `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string  `json:"lastName" validate:"omitempty,max=100"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	WhatsApp    *string  `json:"whatsApp" validate:"omitempty,max=30"`
	DateOfBirth *string  `json:"dateOfBirth" validate:"omitempty,caldate"`
	Address     *string  `json:"address" validate:"omitempty,max=500"`
	ClientType  *string  `json:"clientType" validate:"omitempty,oneof=Lead Prospect Policyholder"`
	Notes       *string  `json:"notes" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// ToPatch converts a validated request.
func (r UpdateClientRequest) ToPatch() (domain.ClientPatch, error) {
	dob, err := optDate(r.DateOfBirth)
	if err != nil {
		return domain.ClientPatch{}, err
	}
	return domain.ClientPatch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		WhatsApp:    r.WhatsApp,
		DateOfBirth: dob,
		Address:     r.Address,
		ClientType:  optEnum[domain.ClientType](r.ClientType),
		Notes:       r.Notes,
		Tags:        r.Tags,
	}, nil
}

// IsEmpty reports whether the request carries no fields.
func (r UpdateClientRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Phone == nil && r.Email == nil &&
		r.WhatsApp == nil && r.DateOfBirth == nil && r.Address == nil && r.ClientType == nil &&
		r.Notes == nil && r.Tags == nil
}

// ClientListQuery binds GET /api/clients query parameters.
type ClientListQuery struct {
	SearchTerm string `query:"search"`
	ClientType string `query:"clientType" validate:"omitempty,oneof=Lead Prospect Policyholder"`
	IsFavorite string `query:"isFavorite" validate:"omitempty,oneof=true false"`
	Page       int    `query:"page" validate:"omitempty,min=1,max=10000"`
	PageSize   int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ToFilter converts validated query parameters.
func (q ClientListQuery) ToFilter() domain.ClientFilter {
	var fav *bool
	if q.IsFavorite != "" {
		v := q.IsFavorite == "true"
		fav = &v
	}
	return domain.ClientFilter{
		SearchTerm: nonBlank(q.SearchTerm),
		ClientType: optEnum[domain.ClientType](nonBlank(q.ClientType)),
		IsFavorite: fav,
		Page:       domain.Page{Number: q.Page, Size: q.PageSize},
	}
}

// ClientListResponse is the list payload.
type ClientListResponse struct {
	Clients    []domain.Client   `json:"clients"`
	Pagination domain.Pagination `json:"pagination"`
}
