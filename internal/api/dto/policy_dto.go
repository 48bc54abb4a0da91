package dto

import (
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/validation"
)

// CreatePolicyRequest payload for POST /api/policies.
type CreatePolicyRequest struct {
	ClientID         string  `json:"clientId" validate:"required,uuid_canonical"`
	PolicyNumber     string  `json:"policyNumber" validate:"max=100"`
	PolicyName       string  `json:"policyName" validate:"required,max=200"`
	PolicyType       string  `json:"policyType" validate:"required,max=100"`
	CompanyName      string  `json:"companyName" validate:"max=200"`
	Status           string  `json:"status" validate:"omitempty,oneof=Active Inactive Lapsed Expired Cancelled"`
	StartDate        string  `json:"startDate" validate:"required,caldate"`
	EndDate          *string `json:"endDate" validate:"omitempty,caldate"`
	PremiumAmount    float64 `json:"premiumAmount" validate:"gte=0"`
	CoverageAmount   float64 `json:"coverageAmount" validate:"gte=0"`
	PremiumFrequency string  `json:"premiumFrequency" validate:"omitempty,oneof=Monthly Quarterly Semi-Annual Annual"`
	Notes            string  `json:"notes" validate:"max=2000"`
}

// ToDraft converts a validated request.
func (r CreatePolicyRequest) ToDraft() (domain.PolicyDraft, error) {
	start, err := validation.ParseDate(r.StartDate)
	if err != nil {
		return domain.PolicyDraft{}, err
	}
	end, err := optDate(r.EndDate)
	if err != nil {
		return domain.PolicyDraft{}, err
	}
	return domain.PolicyDraft{
		ClientID:         r.ClientID,
		PolicyNumber:     r.PolicyNumber,
		PolicyName:       r.PolicyName,
		PolicyType:       r.PolicyType,
		CompanyName:      r.CompanyName,
		Status:           domain.PolicyStatus(r.Status),
		StartDate:        start,
		EndDate:          end,
		PremiumAmount:    r.PremiumAmount,
		CoverageAmount:   r.CoverageAmount,
		PremiumFrequency: domain.PremiumFrequency(r.PremiumFrequency),
		Notes:            r.Notes,
	}, nil
}

// UpdatePolicyRequest payload for PUT /api/policies/:policyId.
type UpdatePolicyRequest struct {
	PolicyNumber     *string  `json:"policyNumber" validate:"omitempty,max=100"`
	PolicyName       *string  `json:"policyName" validate:"omitempty,max=200"`
	PolicyType       *string  `json:"policyType" validate:"omitempty,max=100"`
	CompanyName      *string  `json:"companyName" validate:"omitempty,max=200"`
	Status           *string  `json:"status" validate:"omitempty,oneof=Active Inactive Lapsed Expired Cancelled"`
	StartDate        *string  `json:"startDate" validate:"omitempty,caldate"`
	EndDate          *string  `json:"endDate" validate:"omitempty,caldate"`
	PremiumAmount    *float64 `json:"premiumAmount" validate:"omitempty,gte=0"`
	CoverageAmount   *float64 `json:"coverageAmount" validate:"omitempty,gte=0"`
	PremiumFrequency *string  `json:"premiumFrequency" validate:"omitempty,oneof=Monthly Quarterly Semi-Annual Annual"`
	Notes            *string  `json:"notes" validate:"omitempty,max=2000"`
}

// ToPatch converts a validated request.
func (r UpdatePolicyRequest) ToPatch() (domain.PolicyPatch, error) {
	start, err := optDate(r.StartDate)
	if err != nil {
		return domain.PolicyPatch{}, err
	}
	end, err := optDate(r.EndDate)
	if err != nil {
		return domain.PolicyPatch{}, err
	}
	return domain.PolicyPatch{
		PolicyNumber:     r.PolicyNumber,
		PolicyName:       r.PolicyName,
		PolicyType:       r.PolicyType,
		CompanyName:      r.CompanyName,
		Status:           optEnum[domain.PolicyStatus](r.Status),
		StartDate:        start,
		EndDate:          end,
		PremiumAmount:    r.PremiumAmount,
		CoverageAmount:   r.CoverageAmount,
		PremiumFrequency: optEnum[domain.PremiumFrequency](r.PremiumFrequency),
		Notes:            r.Notes,
	}, nil
}

// PolicyListQuery binds GET /api/policies query parameters.
type PolicyListQuery struct {
	ClientID   string `query:"clientId" validate:"omitempty,uuid_canonical"`
	Status     string `query:"status" validate:"omitempty,oneof=Active Inactive Lapsed Expired Cancelled"`
	PolicyType string `query:"policyType"`
	SearchTerm string `query:"search"`
	Page       int    `query:"page" validate:"omitempty,min=1,max=10000"`
	PageSize   int    `query:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ToFilter converts validated query parameters.
func (q PolicyListQuery) ToFilter() domain.PolicyFilter {
	return domain.PolicyFilter{
		ClientID:   nonBlank(q.ClientID),
		Status:     optEnum[domain.PolicyStatus](nonBlank(q.Status)),
		PolicyType: nonBlank(q.PolicyType),
		SearchTerm: nonBlank(q.SearchTerm),
		Page:       domain.Page{Number: q.Page, Size: q.PageSize},
	}
}

// PolicyListResponse is the list payload.
type PolicyListResponse struct {
	Policies   []domain.Policy   `json:"policies"`
	Pagination domain.Pagination `json:"pagination"`
}
