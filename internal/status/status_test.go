package status_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"careerflix/backend/internal/model"
	"careerflix/backend/internal/status"
	"careerflix/backend/internal/store"
)

type capturingPublisher struct {
	mu      sync.Mutex
	events  [][]byte
	channel string
}

func (p *capturingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channel = channel
	p.events = append(p.events, payload)
	return nil
}

func newService(pub status.Publisher) (*status.Service, *store.Store) {
	st := store.New(store.NewMemoryKV())
	now := func() time.Time { return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC) }
	return status.NewService(st, pub, now), st
}

func job(id int) model.Job {
	return model.Job{ID: id, Title: "Backend Engineer", Company: "Acme"}
}

// ── Parse ──────────────────────────────────────────────────────────────────

func TestParse_ValidValues(t *testing.T) {
	for _, s := range []string{"Not Applied", "Applied", "Rejected", "Selected"} {
		got, err := status.Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("Parse(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParse_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "APPLIED", "Interview"} {
		if _, err := status.Parse(s); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", s)
		}
	}
}

// ── Recorded ───────────────────────────────────────────────────────────────

func TestRecorded(t *testing.T) {
	cases := []struct {
		s    status.Status
		want bool
	}{
		{status.StatusApplied, true},
		{status.StatusRejected, true},
		{status.StatusSelected, true},
		{status.StatusNotApplied, false},
	}
	for _, c := range cases {
		if got := status.Recorded(c.s); got != c.want {
			t.Errorf("Recorded(%s) = %v, want %v", c.s, got, c.want)
		}
	}
}

// ── Service.Set ────────────────────────────────────────────────────────────

func TestSet_DefaultsToNotApplied(t *testing.T) {
	svc, _ := newService(nil)
	got, err := svc.Of(context.Background(), "u1", 42)
	if err != nil {
		t.Fatal(err)
	}
	if got != status.StatusNotApplied {
		t.Errorf("Of(untracked) = %q, want Not Applied", got)
	}
}

func TestSet_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newService(nil)
	_, err := svc.Set(context.Background(), "u1", job(1), "Ghosted")
	if err == nil {
		t.Fatal("expected validation error for unknown status")
	}
	var vErr *status.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected *ValidationError, got %T", err)
	}
}

func TestSet_RecordsHistoryForTerminalStatuses(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	for _, s := range []string{"Applied", "Rejected", "Selected"} {
		if _, err := svc.Set(ctx, "u1", job(1), s); err != nil {
			t.Fatalf("Set(%s): %v", s, err)
		}
	}
	hist, err := svc.History(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	// Newest first.
	if hist[0].Status != "Selected" || hist[2].Status != "Applied" {
		t.Errorf("history order wrong: %q ... %q", hist[0].Status, hist[2].Status)
	}
	if hist[0].Title != "Backend Engineer" || hist[0].Company != "Acme" {
		t.Errorf("history entry missing job fields: %+v", hist[0])
	}
}

func TestSet_RevertToNotAppliedSkipsHistory(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", job(1), "Applied"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Set(ctx, "u1", job(1), "Not Applied"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Of(ctx, "u1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != status.StatusNotApplied {
		t.Errorf("status after revert = %q, want Not Applied", got)
	}

	hist, _ := svc.History(ctx, "u1")
	if len(hist) != 1 {
		t.Errorf("revert must not append history, got %d entries", len(hist))
	}
}

func TestSet_PublishesEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc, _ := newService(pub)

	if _, err := svc.Set(context.Background(), "u1", job(7), "Applied"); err != nil {
		t.Fatal(err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	if pub.channel != status.EventChannel {
		t.Errorf("channel = %q, want %q", pub.channel, status.EventChannel)
	}
}

func TestSet_NoEventOnRevert(t *testing.T) {
	pub := &capturingPublisher{}
	svc, _ := newService(pub)

	if _, err := svc.Set(context.Background(), "u1", job(7), "Not Applied"); err != nil {
		t.Fatal(err)
	}
	if len(pub.events) != 0 {
		t.Errorf("revert must not publish, got %d events", len(pub.events))
	}
}

// ── Lookup ─────────────────────────────────────────────────────────────────

func TestLookup(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()
	if _, err := svc.Set(ctx, "u1", job(1), "Applied"); err != nil {
		t.Fatal(err)
	}

	lookup := svc.Lookup(ctx, "u1")
	if got := lookup(1); got != "Applied" {
		t.Errorf("lookup(1) = %q, want Applied", got)
	}
	if got := lookup(999); got != "Not Applied" {
		t.Errorf("lookup(999) = %q, want Not Applied", got)
	}
}
