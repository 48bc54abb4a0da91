package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/agentdesk/internal/domain"
)

func TestBackoff(t *testing.T) {
	base := 30 * time.Second
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{1, 30 * time.Second},
		{2, time.Minute},
		{3, 2 * time.Minute},
		{7, 32 * time.Minute},
		{8, time.Hour},
		{60, time.Hour},
	}
	for _, tt := range tests {
		if got := Backoff(base, tt.attempts); got != tt.want {
			t.Errorf("Backoff(%v, %d) = %v, want %v", base, tt.attempts, got, tt.want)
		}
	}
}

type fakeOutbox struct {
	due    []domain.OutboxMessage
	sent   []string
	failed map[string]int
	nextAt map[string]time.Time
}

func (f *fakeOutbox) Enqueue(context.Context, *domain.OutboxMessage) error { return nil }

func (f *fakeOutbox) ClaimDue(context.Context, int, time.Duration) ([]domain.OutboxMessage, error) {
	out := f.due
	f.due = nil
	return out, nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(_ context.Context, id string, attempts, maxAttempts int, next time.Time, _ string) (domain.OutboxStatus, error) {
	if f.failed == nil {
		f.failed = map[string]int{}
		f.nextAt = map[string]time.Time{}
	}
	f.failed[id] = attempts
	f.nextAt[id] = next
	if attempts >= maxAttempts {
		return domain.OutboxFailed, nil
	}
	return domain.OutboxPending, nil
}

func (f *fakeOutbox) ListForAgent(context.Context, string, domain.NotificationFilter) ([]domain.OutboxMessage, int, error) {
	return nil, 0, nil
}

type fakeSender struct {
	err  error
	sent []Message
}

func (s *fakeSender) Name() string { return "fake" }

func (s *fakeSender) Send(_ context.Context, msg Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type recordingPublisher struct {
	outcomes []Outcome
}

func (p *recordingPublisher) PublishOutcome(_ context.Context, o Outcome) error {
	p.outcomes = append(p.outcomes, o)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestProcessBatch(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	outbox := &fakeOutbox{due: []domain.OutboxMessage{
		{ID: "ok", AgentID: "a1", Channel: domain.ChannelEmail, Recipient: "a@example.com", Subject: "hi", Body: "body", MaxAttempts: 5},
		{ID: "retry", AgentID: "a1", Channel: domain.ChannelSMS, Recipient: "+15550100", Attempts: 1, MaxAttempts: 5},
		{ID: "park", AgentID: "a1", Channel: domain.ChannelSMS, Recipient: "+15550100", Attempts: 4, MaxAttempts: 5},
		{ID: "nochannel", AgentID: "a1", Channel: "fax", MaxAttempts: 1},
	}}
	email := &fakeSender{}
	sms := &fakeSender{err: errors.New("gateway down")}
	pub := &recordingPublisher{}

	d := NewDispatcher(outbox, Senders{domain.ChannelEmail: email, domain.ChannelSMS: sms}, pub,
		DispatcherConfig{BaseBackoff: 30 * time.Second}, nil)
	d.now = func() time.Time { return now }

	sent, err := d.ProcessBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 1 || len(outbox.sent) != 1 || outbox.sent[0] != "ok" {
		t.Fatalf("expected only ok to be sent, got %d %v", sent, outbox.sent)
	}
	if len(email.sent) != 1 || email.sent[0].To != "a@example.com" {
		t.Fatalf("unexpected email deliveries %+v", email.sent)
	}
	if outbox.failed["retry"] != 2 {
		t.Fatalf("expected retry attempts to be 2, got %d", outbox.failed["retry"])
	}
	if want := now.Add(time.Minute); !outbox.nextAt["retry"].Equal(want) {
		t.Fatalf("expected next attempt %v, got %v", want, outbox.nextAt["retry"])
	}

	statuses := map[string]domain.OutboxStatus{}
	for _, o := range pub.outcomes {
		statuses[o.NotificationID] = o.Status
	}
	want := map[string]domain.OutboxStatus{
		"ok":        domain.OutboxSent,
		"park":      domain.OutboxFailed,
		"nochannel": domain.OutboxFailed,
	}
	if len(statuses) != len(want) {
		t.Fatalf("unexpected outcomes %+v", pub.outcomes)
	}
	for id, status := range want {
		if statuses[id] != status {
			t.Errorf("outcome for %s = %q, want %q", id, statuses[id], status)
		}
	}
}
