package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls int32
	d.Subscribe(EventAgentRegistered, func(context.Context, Event) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("smtp down")
	})
	d.Subscribe(EventAgentRegistered, func(_ context.Context, e Event) error {
		atomic.AddInt32(&calls, 1)
		if e.ID == "" || e.Timestamp.IsZero() {
			t.Errorf("expected id and timestamp to be stamped")
		}
		return nil
	})
	d.Subscribe(EventAgentLoggedIn, func(context.Context, Event) error {
		t.Errorf("handler for another event type must not run")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAgentRegistered, AgentID: "a1"})
	if err == nil {
		t.Fatalf("expected joined handler error")
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected both handlers to run, got %d", calls)
	}
}

func TestPublishAsyncSurvivesCancel(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	done := make(chan error, 1)
	d.Subscribe(EventAppointmentCreated, func(ctx context.Context, _ Event) error {
		done <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.PublishAsync(ctx, Event{Type: EventAppointmentCreated})
	d.Wait()

	if err := <-done; err != nil {
		t.Fatalf("expected detached context, got %v", err)
	}
}
