package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/spec-kit/agentdesk/internal/domain"
)

func TestClientCreateDefaultsToProspect(t *testing.T) {
	repo := &fakeClients{result: domain.MutationResult{Success: true, ID: "client-1"}}
	svc := NewClientService(ClientDependencies{ClientRepo: repo, Clock: testClock()})

	if _, err := svc.Create(context.Background(), testAgent, domain.ClientDraft{FirstName: "Ann"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), testAgent, domain.ClientDraft{FirstName: "Bo", ClientType: domain.ClientTypeLead}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.drafts[0].ClientType != domain.ClientTypeProspect || repo.drafts[1].ClientType != domain.ClientTypeLead {
		t.Fatalf("unexpected client types %q %q", repo.drafts[0].ClientType, repo.drafts[1].ClientType)
	}
}

func TestClientGetNotFound(t *testing.T) {
	svc := NewClientService(ClientDependencies{ClientRepo: &fakeClients{}})
	if _, err := svc.Get(context.Background(), testAgent, "missing"); statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
}

func TestClientUpcomingBirthdaysWindow(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{-5, 0},
		{0, 0},
		{30, 30},
		{1000, 365},
	}
	for _, tt := range tests {
		repo := &fakeClients{}
		svc := NewClientService(ClientDependencies{ClientRepo: repo, Clock: testClock()})
		items, err := svc.UpcomingBirthdays(context.Background(), testAgent, tt.days)
		if err != nil {
			t.Fatalf("days=%d: unexpected error: %v", tt.days, err)
		}
		if items == nil {
			t.Fatalf("days=%d: expected an empty slice, not nil", tt.days)
		}
		if repo.birthdayDays[0] != tt.want {
			t.Errorf("days=%d: expected window %d, got %d", tt.days, tt.want, repo.birthdayDays[0])
		}
		if repo.birthdayFrom.String() != "2024-06-05" {
			t.Errorf("expected window to start today, got %s", repo.birthdayFrom)
		}
	}
}
