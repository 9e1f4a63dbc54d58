// Package digest builds the date-keyed top-10 digest of the catalog.
//
// A digest is a frozen snapshot: once generated for a calendar day it is
// served as stored, with the scores it had at generation time. Regenerating
// the same day overwrites the prior snapshot, but only on an explicit force.
package digest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"careerflix/backend/internal/match"
	"careerflix/backend/internal/model"
	"careerflix/backend/internal/store"
)

// Size is the number of jobs in a digest.
const Size = 10

// Generate scores every job against prefs and returns the top Size, ranked
// by score descending with postedDaysAgo ascending breaking ties (newer
// listings win).
func Generate(jobs []model.Job, prefs *model.Preferences) []model.ScoredJob {
	scored := make([]model.ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		scored = append(scored, model.ScoredJob{Job: j, MatchScore: match.Score(j, prefs)})
	}
	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].MatchScore != scored[b].MatchScore {
			return scored[a].MatchScore > scored[b].MatchScore
		}
		return scored[a].PostedDaysAgo < scored[b].PostedDaysAgo
	})
	if len(scored) > Size {
		scored = scored[:Size]
	}
	return scored
}

// DateKey formats t's local calendar day as zero-padded YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Service persists digests per user and calendar day.
type Service struct {
	store *store.Store
	now   func() time.Time
}

// NewService returns a Service using now for calendar-day keys. The clock is
// injected so tests can pin the day boundary.
func NewService(st *store.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, now: now}
}

// Today returns today's snapshot. ok is false when no digest has been
// generated today — callers use it to show the generate prompt instead of
// the "zero qualifying jobs" empty state.
func (s *Service) Today(ctx context.Context, userID string) (jobs []model.ScoredJob, ok bool, err error) {
	return s.store.Digest(ctx, userID, DateKey(s.now()))
}

// GenerateToday builds today's digest from jobs and prefs and freezes it.
// When a snapshot already exists for today it is returned untouched unless
// force is set.
func (s *Service) GenerateToday(ctx context.Context, userID string, jobs []model.Job, prefs *model.Preferences, force bool) ([]model.ScoredJob, error) {
	dateStr := DateKey(s.now())

	if !force {
		existing, ok, err := s.store.Digest(ctx, userID, dateStr)
		if err != nil {
			return nil, err
		}
		if ok {
			return existing, nil
		}
	}

	top := Generate(jobs, prefs)
	if err := s.store.SaveDigest(ctx, userID, dateStr, top); err != nil {
		return nil, fmt.Errorf("save digest %s: %w", dateStr, err)
	}
	return top, nil
}

// FormatPlainText renders the digest as the shareable plain-text block used
// by the copy-to-clipboard and mailto flows.
func (s *Service) FormatPlainText(jobs []model.ScoredJob) string {
	var b strings.Builder
	b.WriteString("Top 10 Jobs For You — 9AM Digest\n")
	b.WriteString(s.now().Format("Monday, January 2, 2006"))
	b.WriteString("\n\n")
	for i, j := range jobs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, j.Title)
		fmt.Fprintf(&b, "   %s · %s · %s\n", j.Company, j.Location, j.Experience)
		fmt.Fprintf(&b, "   Match: %d%%\n", j.MatchScore)
		fmt.Fprintf(&b, "   Apply: %s\n\n", j.ApplyURL)
	}
	b.WriteString("This digest was generated based on your preferences.")
	return b.String()
}
