package service

import (
	"context"

	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/repository"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// NoteService coordinates client notes.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService builds the service.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) Create(ctx context.Context, agentID string, draft domain.NoteDraft) (domain.MutationResult, error) {
	return s.notes.Create(ctx, agentID, draft)
}

func (s *NoteService) Update(ctx context.Context, agentID, id string, patch domain.NotePatch) (domain.MutationResult, error) {
	if patch.Title == nil && patch.Content == nil && patch.IsImportant == nil && patch.Tags == nil {
		return domain.MutationResult{}, apperrors.NewValidationError("No fields provided for update", nil)
	}
	return s.notes.Update(ctx, agentID, id, patch)
}

func (s *NoteService) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return s.notes.Delete(ctx, agentID, id)
}

func (s *NoteService) Get(ctx context.Context, agentID, id string) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, agentID, id)
	if err != nil {
		return nil, notFoundAs(err, "note")
	}
	return note, nil
}

func (s *NoteService) ListByClient(ctx context.Context, agentID, clientID string) ([]domain.Note, error) {
	items, err := s.notes.ListByClient(ctx, agentID, clientID)
	return nonNil(items), err
}

func (s *NoteService) ListImportant(ctx context.Context, agentID string) ([]domain.Note, error) {
	items, err := s.notes.ListImportant(ctx, agentID)
	return nonNil(items), err
}

func (s *NoteService) Search(ctx context.Context, agentID, term string, limit int) ([]domain.Note, error) {
	if limit <= 0 || limit > domain.MaxPageSize {
		limit = domain.DefaultPageSize
	}
	items, err := s.notes.Search(ctx, agentID, term, limit)
	return nonNil(items), err
}
