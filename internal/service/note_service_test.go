package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/agentdesk/internal/domain"
)

func TestNoteSearchLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, domain.DefaultPageSize},
		{-1, domain.DefaultPageSize},
		{domain.MaxPageSize + 1, domain.DefaultPageSize},
		{50, 50},
	}
	for _, tt := range tests {
		repo := &fakeNotes{}
		items, err := NewNoteService(repo).Search(context.Background(), testAgent, "renewal", tt.limit)
		if err != nil || items == nil {
			t.Fatalf("limit=%d: expected empty slice, got %v %v", tt.limit, items, err)
		}
		if repo.limits[0] != tt.want {
			t.Errorf("limit=%d: expected %d, got %d", tt.limit, tt.want, repo.limits[0])
		}
	}
}

func TestNoteUpdateAndGet(t *testing.T) {
	repo := &fakeNotes{}
	svc := NewNoteService(repo)
	if _, err := svc.Update(context.Background(), testAgent, "note-1", domain.NotePatch{}); statusOf(t, err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch")
	}
	important := true
	if _, err := svc.Update(context.Background(), testAgent, "note-1", domain.NotePatch{IsImportant: &important}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updates != 1 {
		t.Fatalf("expected one repository update, got %d", repo.updates)
	}
	if _, err := svc.Get(context.Background(), testAgent, "missing"); statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
}
