package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKeys(t *testing.T) {
	s := New(nil, "agentdesk:", time.Minute, nil)
	if got := s.Key("autocomplete", "clients"); got != "agentdesk:autocomplete:clients" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := s.AgentKey("a1", "dashboard"); got != "agentdesk:agent:a1:dashboard" {
		t.Fatalf("unexpected agent key %q", got)
	}
	bare := New(nil, "", time.Minute, nil)
	if got := bare.Key("x"); got != "x" {
		t.Fatalf("unexpected unprefixed key %q", got)
	}
}

func TestDisabledStore(t *testing.T) {
	ctx := context.Background()
	s := New(nil, "p", 0, nil)
	if s.Enabled() {
		t.Fatalf("expected store without client to be disabled")
	}
	var v map[string]int
	hit, err := s.Get(ctx, "k", &v)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := s.Set(ctx, "k", 1, 0); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if n, err := s.DeletePrefix(ctx, "p:"); n != 0 || err != nil {
		t.Fatalf("unexpected delete result %d %v", n, err)
	}
	ok, err := s.AcquireLock(ctx, "digest", time.Minute)
	if !ok || err != nil {
		t.Fatalf("expected lock granted without redis")
	}
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	s := New(nil, "p", time.Minute, nil)

	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}
	for i := 0; i < 2; i++ {
		got, err := Remember(ctx, s, "answer", 0, load)
		if err != nil || got != 42 {
			t.Fatalf("unexpected result %d %v", got, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected loader to run on every miss, ran %d times", calls)
	}

	boom := errors.New("boom")
	if _, err := Remember(ctx, s, "answer", 0, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}
