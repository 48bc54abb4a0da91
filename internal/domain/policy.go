package domain

import "time"

// PolicyStatus enumerates policy lifecycle states.
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "Active"
	PolicyStatusInactive  PolicyStatus = "Inactive"
	PolicyStatusLapsed    PolicyStatus = "Lapsed"
	PolicyStatusExpired   PolicyStatus = "Expired"
	PolicyStatusCancelled PolicyStatus = "Cancelled"
)

// PolicyStatuses lists accepted policy statuses.
var PolicyStatuses = []PolicyStatus{
	PolicyStatusActive,
	PolicyStatusInactive,
	PolicyStatusLapsed,
	PolicyStatusExpired,
	PolicyStatusCancelled,
}

// PremiumFrequency enumerates premium payment schedules.
type PremiumFrequency string

const (
	PremiumMonthly    PremiumFrequency = "Monthly"
	PremiumQuarterly  PremiumFrequency = "Quarterly"
	PremiumSemiAnnual PremiumFrequency = "Semi-Annual"
	PremiumAnnual     PremiumFrequency = "Annual"
)

// PremiumFrequencies lists accepted payment schedules.
var PremiumFrequencies = []PremiumFrequency{PremiumMonthly, PremiumQuarterly, PremiumSemiAnnual, PremiumAnnual}

// Policy is an insurance policy held by a client.
type Policy struct {
	ID               string           `json:"policyId"`
	AgentID          string           `json:"agentId"`
	ClientID         string           `json:"clientId"`
	ClientName       string           `json:"clientName,omitempty"`
	PolicyNumber     string           `json:"policyNumber,omitempty"`
	PolicyName       string           `json:"policyName"`
	PolicyType       string           `json:"policyType"`
	CompanyName      string           `json:"companyName,omitempty"`
	Status           PolicyStatus     `json:"status"`
	StartDate        Date             `json:"startDate"`
	EndDate          *Date            `json:"endDate,omitempty"`
	PremiumAmount    float64          `json:"premiumAmount"`
	CoverageAmount   float64          `json:"coverageAmount"`
	PremiumFrequency PremiumFrequency `json:"premiumFrequency"`
	Notes            string           `json:"notes,omitempty"`
	CreatedDate      time.Time        `json:"createdDate"`
	ModifiedDate     *time.Time       `json:"modifiedDate,omitempty"`
	IsActive         bool             `json:"isActive"`
}

// PolicyDraft carries fields for a new policy.
type PolicyDraft struct {
	ClientID         string
	PolicyNumber     string
	PolicyName       string
	PolicyType       string
	CompanyName      string
	Status           PolicyStatus
	StartDate        Date
	EndDate          *Date
	PremiumAmount    float64
	CoverageAmount   float64
	PremiumFrequency PremiumFrequency
	Notes            string
}

// PolicyPatch is a partial policy update.
type PolicyPatch struct {
	PolicyNumber     *string
	PolicyName       *string
	PolicyType       *string
	CompanyName      *string
	Status           *PolicyStatus
	StartDate        *Date
	EndDate          *Date
	PremiumAmount    *float64
	CoverageAmount   *float64
	PremiumFrequency *PremiumFrequency
	Notes            *string
}

// PolicyFilter narrows policy listings.
type PolicyFilter struct {
	ClientID   *string
	Status     *PolicyStatus
	PolicyType *string
	SearchTerm *string
	Page       Page
}

// PolicyStatistics aggregates an agent's policies.
type PolicyStatistics struct {
	Total         int     `json:"totalPolicies"`
	Active        int     `json:"activePolicies"`
	Lapsed        int     `json:"lapsedPolicies"`
	Expired       int     `json:"expiredPolicies"`
	ExpiringSoon  int     `json:"expiringSoon"`
	TotalPremium  float64 `json:"totalPremium"`
	TotalCoverage float64 `json:"totalCoverage"`
}
