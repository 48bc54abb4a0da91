package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agentdesk/internal/domain"
)

// NoteRepository defines persistence access for client notes.
type NoteRepository interface {
	Create(ctx context.Context, agentID string, draft domain.NoteDraft) (domain.MutationResult, error)
	Update(ctx context.Context, agentID, id string, patch domain.NotePatch) (domain.MutationResult, error)
	Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error)
	GetByID(ctx context.Context, agentID, id string) (*domain.Note, error)
	ListByClient(ctx context.Context, agentID, clientID string) ([]domain.Note, error)
	ListImportant(ctx context.Context, agentID string) ([]domain.Note, error)
	Search(ctx context.Context, agentID, term string, limit int) ([]domain.Note, error)
}

type noteRepository struct {
	procs *Procedures
}

// NewNoteRepository returns a procedure-backed implementation.
func NewNoteRepository(procs *Procedures) NoteRepository {
	return &noteRepository{procs: procs}
}

func (r *noteRepository) Create(ctx context.Context, agentID string, d domain.NoteDraft) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_create_note", agentID, d.ClientID, d.Title, d.Content, d.IsImportant, nonNilTags(tagsParam(d.Tags)))
}

func (r *noteRepository) Update(ctx context.Context, agentID, id string, p domain.NotePatch) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_update_note", id, agentID, p.Title, p.Content, p.IsImportant, tagsParam(p.Tags))
}

func (r *noteRepository) Delete(ctx context.Context, agentID, id string) (domain.MutationResult, error) {
	return r.procs.Mutate(ctx, "sp_delete_note", id, agentID)
}

func (r *noteRepository) GetByID(ctx context.Context, agentID, id string) (*domain.Note, error) {
	rows, err := r.procs.Query(ctx, "sp_get_note", id, agentID)
	if err != nil {
		return nil, err
	}
	n, err := pgx.CollectOneRow(rows, scanNote)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepository) ListByClient(ctx context.Context, agentID, clientID string) ([]domain.Note, error) {
	return r.collect(ctx, "sp_list_client_notes", agentID, clientID)
}

func (r *noteRepository) ListImportant(ctx context.Context, agentID string) ([]domain.Note, error) {
	return r.collect(ctx, "sp_list_important_notes", agentID)
}

func (r *noteRepository) Search(ctx context.Context, agentID, term string, limit int) ([]domain.Note, error) {
	return r.collect(ctx, "sp_search_notes", agentID, term, limit)
}

func (r *noteRepository) collect(ctx context.Context, name string, args ...any) ([]domain.Note, error) {
	rows, err := r.procs.Query(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanNote)
}

func scanNote(row pgx.CollectableRow) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(
		&n.ID,
		&n.AgentID,
		&n.ClientID,
		&n.ClientName,
		&n.Title,
		&n.Content,
		&n.IsImportant,
		&n.Tags,
		&n.CreatedDate,
		&n.ModifiedDate,
		&n.IsActive,
	)
	n.Tags = nonNilTags(n.Tags)
	return n, err
}
