package dto

import "github.com/spec-kit/agentdesk/internal/domain"

// CreateNoteRequest payload for POST /api/notes and POST /api/clients/:clientId/notes.
type CreateNoteRequest struct {
	ClientID    string   `json:"clientId" validate:"required,uuid_canonical"`
	Title       string   `json:"title" validate:"required,max=200"`
	Content     string   `json:"content" validate:"required,max=10000"`
	IsImportant bool     `json:"isImportant"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=50"`
}

// ToDraft converts a validated request.
func (r CreateNoteRequest) ToDraft() domain.NoteDraft {
	return domain.NoteDraft{
		ClientID:    r.ClientID,
		Title:       r.Title,
		Content:     r.Content,
		IsImportant: r.IsImportant,
		Tags:        r.Tags,
	}
}

// UpdateNoteRequest payload for PUT /api/notes/:noteId.
type UpdateNoteRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string  `json:"content" validate:"omitempty,max=10000"`
	IsImportant *bool    `json:"isImportant"`
	Tags        []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// ToPatch converts a validated request.
func (r UpdateNoteRequest) ToPatch() domain.NotePatch {
	return domain.NotePatch{Title: r.Title, Content: r.Content, IsImportant: r.IsImportant, Tags: r.Tags}
}
