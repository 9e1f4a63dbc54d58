// Package ship derives ship-readiness from the test checklist and the proof
// artifacts. The gate is pure presentation logic: it is recomputed from the
// two underlying records on every read and never stored.
package ship

import (
	"fmt"
	"net/url"
	"strings"

	"careerflix/backend/internal/store"
)

// State is the externally observable ship-readiness state.
type State string

const (
	StateNotStarted State = "Not Started"
	StateInProgress State = "In Progress"
	StateShipped    State = "Shipped"
)

// ChecklistItem is one manual verification step.
type ChecklistItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip"`
}

// Checklist lists every test item, in display order. All must be checked
// before shipping.
var Checklist = []ChecklistItem{
	{ID: "prefs-persist", Label: "Preferences persist after refresh", Tooltip: "Save preferences in Settings, refresh page, confirm form is prefilled."},
	{ID: "match-score", Label: "Match score calculates correctly", Tooltip: "Set role keywords in Settings, check job cards show match % badge."},
	{ID: "show-matches", Label: "\"Show only matches\" toggle works", Tooltip: "Enable toggle on Dashboard, verify only jobs above threshold appear."},
	{ID: "save-persist", Label: "Save job persists after refresh", Tooltip: "Save a job on Dashboard, refresh, confirm it appears in Saved."},
	{ID: "apply-new-tab", Label: "Apply opens in new tab", Tooltip: "Click Apply on any job card, verify URL opens in new tab."},
	{ID: "status-persist", Label: "Status update persists after refresh", Tooltip: "Change job status to Applied, refresh, confirm status remains."},
	{ID: "status-filter", Label: "Status filter works correctly", Tooltip: "Filter by Applied on Dashboard, confirm only Applied jobs show."},
	{ID: "digest-top10", Label: "Digest generates top 10 by score", Tooltip: "Generate digest, confirm 10 jobs sorted by match score."},
	{ID: "digest-persist", Label: "Digest persists for the day", Tooltip: "Generate digest, refresh page, confirm digest still visible."},
	{ID: "no-console", Label: "No console errors on main pages", Tooltip: "Open DevTools console, visit Dashboard, Settings, Digest, Saved; check for errors."},
}

// KnownItem reports whether id names a checklist item.
func KnownItem(id string) bool {
	for _, item := range Checklist {
		if item.ID == id {
			return true
		}
	}
	return false
}

// AllTestsPassed reports whether every checklist item is checked.
func AllTestsPassed(checked map[string]bool) bool {
	for _, item := range Checklist {
		if !checked[item.ID] {
			return false
		}
	}
	return true
}

// ValidateURL reports whether s parses as an absolute http or https URL.
// Any other input — empty, relative, other schemes, garbage — is invalid;
// the function never panics.
func ValidateURL(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AllArtifactsComplete reports whether all three proof URLs are valid.
func AllArtifactsComplete(a store.Artifacts) bool {
	return ValidateURL(a.Lovable) && ValidateURL(a.GitHub) && ValidateURL(a.Deployed)
}

// CanShip reports whether both gates are open.
func CanShip(checked map[string]bool, a store.Artifacts) bool {
	return AllTestsPassed(checked) && AllArtifactsComplete(a)
}

// Derive computes the ship-readiness state: both gates ⇒ Shipped, exactly
// one ⇒ In Progress, neither ⇒ Not Started.
func Derive(checked map[string]bool, a store.Artifacts) State {
	testsOK := AllTestsPassed(checked)
	artifactsOK := AllArtifactsComplete(a)
	switch {
	case testsOK && artifactsOK:
		return StateShipped
	case testsOK || artifactsOK:
		return StateInProgress
	default:
		return StateNotStarted
	}
}

// FormatFinalSubmission renders the copyable submission block. Missing
// artifacts render as "(not provided)" rather than blank lines.
func FormatFinalSubmission(a store.Artifacts) string {
	orNot := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "(not provided)"
		}
		return s
	}
	return fmt.Sprintf(`------------------------------------------
Job Notification Tracker — Final Submission

Lovable Project:
%s

GitHub Repository:
%s

Live Deployment:
%s

Core Features:
- Intelligent match scoring
- Daily digest simulation
- Status tracking
- Test checklist enforced
------------------------------------------`, orNot(a.Lovable), orNot(a.GitHub), orNot(a.Deployed))
}
