package store_test

import (
	"context"
	"testing"
	"time"

	"careerflix/backend/internal/model"
	"careerflix/backend/internal/store"
)

func newStore() (*store.Store, *store.MemoryKV) {
	kv := store.NewMemoryKV()
	return store.New(kv), kv
}

// ── Preferences ────────────────────────────────────────────────────────────

func TestPreferences_AbsentIsNil(t *testing.T) {
	s, _ := newStore()
	p, err := s.Preferences(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil preferences for fresh user, got %+v", p)
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	want := model.Preferences{
		RoleKeywords:       "backend, golang",
		PreferredLocations: []string{"Remote"},
		MinMatchScore:      55,
	}
	if err := s.SavePreferences(ctx, "u1", want); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	got, err := s.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if got == nil || got.RoleKeywords != want.RoleKeywords || got.MinMatchScore != 55 {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestPreferences_CorruptRecordTreatedAsAbsent(t *testing.T) {
	s, kv := newStore()
	ctx := context.Background()
	if err := kv.Set(ctx, store.UserKey("u1", "prefs"), "{not json"); err != nil {
		t.Fatal(err)
	}
	p, err := s.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("corrupt record must not error, got %v", err)
	}
	if p != nil {
		t.Errorf("corrupt record must read as absent, got %+v", p)
	}
}

func TestPreferences_NamespacedPerUser(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	if err := s.SavePreferences(ctx, "u1", model.Preferences{RoleKeywords: "backend"}); err != nil {
		t.Fatal(err)
	}
	p, err := s.Preferences(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("u2 must not see u1's preferences, got %+v", p)
	}
}

// ── Saved jobs ─────────────────────────────────────────────────────────────

func TestSavedJobs(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	for _, id := range []int{3, 1, 3} { // duplicate save is a no-op
		if err := s.SaveJob(ctx, "u1", id); err != nil {
			t.Fatalf("SaveJob(%d): %v", id, err)
		}
	}
	ids, err := s.SavedJobIDs(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("SavedJobIDs = %v, want [3 1]", ids)
	}

	if err := s.UnsaveJob(ctx, "u1", 3); err != nil {
		t.Fatal(err)
	}
	ids, _ = s.SavedJobIDs(ctx, "u1")
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("after unsave, SavedJobIDs = %v, want [1]", ids)
	}
}

// ── Status map and history ─────────────────────────────────────────────────

func TestStatusMapRoundTrip(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	if err := s.SetStatus(ctx, "u1", 7, "Applied"); err != nil {
		t.Fatal(err)
	}
	m, err := s.StatusMap(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if m[7] != "Applied" {
		t.Errorf("StatusMap[7] = %q, want Applied", m[7])
	}
}

func TestStatusHistoryCappedNewestFirst(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	for i := 0; i < store.HistoryCap+10; i++ {
		entry := model.StatusEntry{JobID: i, Status: "Applied", Timestamp: time.Now()}
		if err := s.PushStatusHistory(ctx, "u1", entry); err != nil {
			t.Fatalf("PushStatusHistory(%d): %v", i, err)
		}
	}
	hist, err := s.StatusHistory(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != store.HistoryCap {
		t.Fatalf("history length = %d, want %d", len(hist), store.HistoryCap)
	}
	if hist[0].JobID != store.HistoryCap+9 {
		t.Errorf("newest entry JobID = %d, want %d", hist[0].JobID, store.HistoryCap+9)
	}
}

// ── Digest ─────────────────────────────────────────────────────────────────

func TestDigest_AbsentVersusEmpty(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	_, ok, err := s.Digest(ctx, "u1", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("fresh user must have no digest")
	}

	if err := s.SaveDigest(ctx, "u1", "2026-08-30", nil); err != nil {
		t.Fatal(err)
	}
	jobs, ok, err := s.Digest(ctx, "u1", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("an explicitly saved empty digest must read back as present")
	}
	if len(jobs) != 0 {
		t.Errorf("expected zero jobs, got %d", len(jobs))
	}
}

func TestDigest_OverwritesSameDate(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	first := []model.ScoredJob{{Job: model.Job{ID: 1}, MatchScore: 10}}
	second := []model.ScoredJob{{Job: model.Job{ID: 2}, MatchScore: 90}}

	if err := s.SaveDigest(ctx, "u1", "2026-08-30", first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDigest(ctx, "u1", "2026-08-30", second); err != nil {
		t.Fatal(err)
	}
	jobs, _, err := s.Digest(ctx, "u1", "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].ID != 2 {
		t.Errorf("regenerated digest must win: got %+v", jobs)
	}
}

// ── Checklist / artifacts ──────────────────────────────────────────────────

func TestChecklistAndReset(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	if err := s.SetChecklistItem(ctx, "u1", "match-score", true); err != nil {
		t.Fatal(err)
	}
	m, err := s.Checklist(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !m["match-score"] {
		t.Error("checklist item not persisted")
	}

	if err := s.ResetChecklist(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	m, _ = s.Checklist(ctx, "u1")
	if len(m) != 0 {
		t.Errorf("reset checklist = %v, want empty", m)
	}
}

func TestProofArtifactsRoundTrip(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()
	want := store.Artifacts{
		Lovable:  "https://lovable.dev/p/x",
		GitHub:   "https://github.com/u/r",
		Deployed: "https://app.example.com",
	}
	if err := s.SaveProofArtifacts(ctx, "u1", want); err != nil {
		t.Fatal(err)
	}
	got, err := s.ProofArtifacts(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("artifacts = %+v, want %+v", got, want)
	}
}
