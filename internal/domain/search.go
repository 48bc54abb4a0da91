package domain

import "time"

// SearchEntity names a searchable record kind.
type SearchEntity string

const (
	SearchClients      SearchEntity = "clients"
	SearchPolicies     SearchEntity = "policies"
	SearchAppointments SearchEntity = "appointments"
	SearchReminders    SearchEntity = "reminders"
	SearchNotes        SearchEntity = "notes"
)

// SearchEntities lists every searchable kind.
var SearchEntities = []SearchEntity{SearchClients, SearchPolicies, SearchAppointments, SearchReminders, SearchNotes}

// SearchHit is one matching record in a global search.
type SearchHit struct {
	Entity   SearchEntity `json:"entity"`
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	ClientID *string      `json:"clientId,omitempty"`
	Rank     float64      `json:"rank"`
}

// SearchResults groups hits by entity.
type SearchResults struct {
	Query   string                       `json:"query"`
	Total   int                          `json:"total"`
	Results map[SearchEntity][]SearchHit `json:"results"`
}

// RecentSearch is a past query by an agent.
type RecentSearch struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"resultCount"`
	SearchedAt  time.Time `json:"searchedAt"`
}

// Suggestion is an autocomplete candidate.
type Suggestion struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	ID    *string `json:"id,omitempty"`
}
