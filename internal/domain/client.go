package domain

import "time"

// ClientType classifies where a client is in the sales funnel.
type ClientType string

const (
	ClientTypeLead         ClientType = "Lead"
	ClientTypeProspect     ClientType = "Prospect"
	ClientTypePolicyholder ClientType = "Policyholder"
)

// ClientTypes lists accepted client types.
var ClientTypes = []ClientType{ClientTypeLead, ClientTypeProspect, ClientTypePolicyholder}

// Client is a prospect or policyholder managed by an agent.
type Client struct {
	ID           string     `json:"clientId"`
	AgentID      string     `json:"agentId"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone"`
	WhatsApp     string     `json:"whatsApp,omitempty"`
	DateOfBirth  *Date      `json:"dateOfBirth,omitempty"`
	Address      string     `json:"address,omitempty"`
	ClientType   ClientType `json:"clientType"`
	Notes        string     `json:"notes,omitempty"`
	Tags         []string   `json:"tags"`
	IsFavorite   bool       `json:"isFavorite"`
	PolicyCount  int        `json:"policyCount"`
	CreatedDate  time.Time  `json:"createdDate"`
	ModifiedDate *time.Time `json:"modifiedDate,omitempty"`
	IsActive     bool       `json:"isActive"`
}

// FullName joins first and last name.
func (c Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// ClientDraft carries fields for a new client.
type ClientDraft struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	WhatsApp    string
	DateOfBirth *Date
	Address     string
	ClientType  ClientType
	Notes       string
	Tags        []string
}

// ClientPatch is a partial client update.
type ClientPatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	WhatsApp    *string
	DateOfBirth *Date
	Address     *string
	ClientType  *ClientType
	Notes       *string
	Tags        []string
}

// ClientFilter narrows client listings.
type ClientFilter struct {
	SearchTerm *string
	ClientType *ClientType
	IsFavorite *bool
	Page       Page
}

// ClientStatistics aggregates an agent's book of clients.
type ClientStatistics struct {
	Total         int `json:"totalClients"`
	Leads         int `json:"leads"`
	Prospects     int `json:"prospects"`
	Policyholders int `json:"policyholders"`
	Favorites     int `json:"favorites"`
	NewThisMonth  int `json:"newThisMonth"`
	BirthdaysSoon int `json:"upcomingBirthdays"`
}

// Birthday is an upcoming client birthday.
type Birthday struct {
	ClientID     string `json:"clientId"`
	AgentID      string `json:"agentId"`
	ClientName   string `json:"clientName"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	DateOfBirth  Date   `json:"dateOfBirth"`
	NextBirthday Date   `json:"nextBirthday"`
	DaysUntil    int    `json:"daysUntil"`
	Age          int    `json:"turningAge"`
}
