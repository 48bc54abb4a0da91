package domain

import "time"

// Note is free-form text an agent keeps about a client.
type Note struct {
	ID           string     `json:"noteId"`
	AgentID      string     `json:"agentId"`
	ClientID     string     `json:"clientId"`
	ClientName   string     `json:"clientName,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	IsImportant  bool       `json:"isImportant"`
	Tags         []string   `json:"tags"`
	CreatedDate  time.Time  `json:"createdDate"`
	ModifiedDate *time.Time `json:"modifiedDate,omitempty"`
	IsActive     bool       `json:"isActive"`
}

// NoteDraft carries fields for a new note.
type NoteDraft struct {
	ClientID    string
	Title       string
	Content     string
	IsImportant bool
	Tags        []string
}

// NotePatch is a partial note update.
type NotePatch struct {
	Title       *string
	Content     *string
	IsImportant *bool
	Tags        []string
}
