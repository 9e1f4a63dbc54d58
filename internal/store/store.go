package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"careerflix/backend/internal/model"
)

// schemaVersion is baked into every key so a future record-shape change can
// migrate by bumping the version instead of parsing ambiguous payloads.
const schemaVersion = "v1"

// HistoryCap bounds the status history log to the newest entries.
const HistoryCap = 50

// Artifacts are the three proof URLs collected before shipping.
type Artifacts struct {
	Lovable  string `json:"lovable"`
	GitHub   string `json:"github"`
	Deployed string `json:"deployed"`
}

// Store reads and writes typed, user-namespaced records.
// Keys look like "careerflix:v1:user:<id>:prefs".
type Store struct {
	kv KV
}

// New returns a Store over kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

func userKey(userID, field string) string {
	return fmt.Sprintf("careerflix:%s:user:%s:%s", schemaVersion, userID, field)
}

// GlobalKey builds a non-user-scoped key (user registry, sessions).
func GlobalKey(field string) string {
	return fmt.Sprintf("careerflix:%s:%s", schemaVersion, field)
}

// getJSON unmarshals the record at key into v, reporting whether a usable
// record existed. Parse failures are logged and reported as absent.
func (s *Store) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		slog.Warn("discarding corrupt record", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(raw))
}

// GetJSON exposes the raw typed read for collaborators that keep their own
// record types (movie collections, auth registry).
func (s *Store) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	return s.getJSON(ctx, key, v)
}

// SetJSON is the write counterpart of GetJSON.
func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	return s.setJSON(ctx, key, v)
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.kv.Del(ctx, key)
}

// UserKey builds a user-scoped key for collaborators using GetJSON/SetJSON.
func UserKey(userID, field string) string {
	return userKey(userID, field)
}

// ─── Preferences ─────────────────────────────────────────────────────────────

// Preferences returns the user's preference record, or nil when none is
// configured (the "absent" sentinel the match engine keys off).
func (s *Store) Preferences(ctx context.Context, userID string) (*model.Preferences, error) {
	var p model.Preferences
	ok, err := s.getJSON(ctx, userKey(userID, "prefs"), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// SavePreferences overwrites the preference record wholesale.
func (s *Store) SavePreferences(ctx context.Context, userID string, p model.Preferences) error {
	return s.setJSON(ctx, userKey(userID, "prefs"), p)
}

// ─── Saved jobs ──────────────────────────────────────────────────────────────

// SavedJobIDs returns the user's saved job ids in save order.
func (s *Store) SavedJobIDs(ctx context.Context, userID string) ([]int, error) {
	var ids []int
	if _, err := s.getJSON(ctx, userKey(userID, "saved"), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveJob appends id to the saved list if not already present.
func (s *Store) SaveJob(ctx context.Context, userID string, id int) error {
	ids, err := s.SavedJobIDs(ctx, userID)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return s.setJSON(ctx, userKey(userID, "saved"), append(ids, id))
}

// UnsaveJob removes id from the saved list.
func (s *Store) UnsaveJob(ctx context.Context, userID string, id int) error {
	ids, err := s.SavedJobIDs(ctx, userID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return s.setJSON(ctx, userKey(userID, "saved"), kept)
}

// ─── Status ──────────────────────────────────────────────────────────────────

// StatusMap returns the job id → status mapping. Jobs absent from the map
// are "Not Applied".
func (s *Store) StatusMap(ctx context.Context, userID string) (map[int]string, error) {
	m := make(map[int]string)
	if _, err := s.getJSON(ctx, userKey(userID, "status"), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// SetStatus records the status for one job.
func (s *Store) SetStatus(ctx context.Context, userID string, jobID int, status string) error {
	m, err := s.StatusMap(ctx, userID)
	if err != nil {
		return err
	}
	m[jobID] = status
	return s.setJSON(ctx, userKey(userID, "status"), m)
}

// StatusHistory returns the bounded history log, newest first.
func (s *Store) StatusHistory(ctx context.Context, userID string) ([]model.StatusEntry, error) {
	var hist []model.StatusEntry
	if _, err := s.getJSON(ctx, userKey(userID, "status-history"), &hist); err != nil {
		return nil, err
	}
	return hist, nil
}

// PushStatusHistory prepends entry and trims the log to HistoryCap.
func (s *Store) PushStatusHistory(ctx context.Context, userID string, entry model.StatusEntry) error {
	hist, err := s.StatusHistory(ctx, userID)
	if err != nil {
		return err
	}
	hist = append([]model.StatusEntry{entry}, hist...)
	if len(hist) > HistoryCap {
		hist = hist[:HistoryCap]
	}
	return s.setJSON(ctx, userKey(userID, "status-history"), hist)
}

// ─── Digest ──────────────────────────────────────────────────────────────────

// Digest returns the snapshot stored for dateStr (zero-padded YYYY-MM-DD).
// ok distinguishes "no digest generated" from "generated with zero jobs".
func (s *Store) Digest(ctx context.Context, userID, dateStr string) (jobs []model.ScoredJob, ok bool, err error) {
	ok, err = s.getJSON(ctx, userKey(userID, "digest:"+dateStr), &jobs)
	return jobs, ok, err
}

// SaveDigest freezes the snapshot for dateStr, overwriting any prior one.
func (s *Store) SaveDigest(ctx context.Context, userID, dateStr string, jobs []model.ScoredJob) error {
	if jobs == nil {
		jobs = []model.ScoredJob{} // "generated, empty" must round-trip as present
	}
	return s.setJSON(ctx, userKey(userID, "digest:"+dateStr), jobs)
}

// ─── Test checklist / proof artifacts ────────────────────────────────────────

// Checklist returns the test-checklist item → checked map.
func (s *Store) Checklist(ctx context.Context, userID string) (map[string]bool, error) {
	m := make(map[string]bool)
	if _, err := s.getJSON(ctx, userKey(userID, "checklist"), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// SetChecklistItem records a single checkbox.
func (s *Store) SetChecklistItem(ctx context.Context, userID, itemID string, checked bool) error {
	m, err := s.Checklist(ctx, userID)
	if err != nil {
		return err
	}
	m[itemID] = checked
	return s.setJSON(ctx, userKey(userID, "checklist"), m)
}

// ResetChecklist clears every checkbox.
func (s *Store) ResetChecklist(ctx context.Context, userID string) error {
	return s.setJSON(ctx, userKey(userID, "checklist"), map[string]bool{})
}

// ProofArtifacts returns the stored artifact URLs (zero value when unset).
func (s *Store) ProofArtifacts(ctx context.Context, userID string) (Artifacts, error) {
	var a Artifacts
	if _, err := s.getJSON(ctx, userKey(userID, "artifacts"), &a); err != nil {
		return Artifacts{}, err
	}
	return a, nil
}

// SaveProofArtifacts overwrites the artifact record.
func (s *Store) SaveProofArtifacts(ctx context.Context, userID string, a Artifacts) error {
	return s.setJSON(ctx, userKey(userID, "artifacts"), a)
}
