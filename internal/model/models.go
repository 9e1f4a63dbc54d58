// Package model defines the shared data structures for the tracker backend.
package model

import "time"

// Job is one posting from the catalog. Catalog rows are immutable reference
// data — the scoring and filter code never mutates them, and MatchScore is
// never stored on a Job.
type Job struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`       // Remote | Hybrid | Onsite
	Experience    string   `json:"experience"` // Fresher | 0-1 | 1-3 | 3-5
	Skills        []string `json:"skills"`
	SalaryRange   string   `json:"salaryRange"` // free text, e.g. "₹10-15 LPA"
	PostedDaysAgo int      `json:"postedDaysAgo"`
	Source        string   `json:"source"` // e.g. "LinkedIn"
	ApplyURL      string   `json:"applyUrl"`
}

// ScoredJob pairs a Job with its match score against the current
// preferences. The score is derived on every read, never persisted with the
// job, so it can never go stale when preferences change.
type ScoredJob struct {
	Job
	MatchScore int `json:"matchScore"`
}

// DefaultMinMatchScore is the threshold applied when preferences don't set one.
const DefaultMinMatchScore = 40

// Preferences is the single per-user preference record, overwritten wholesale
// by the settings form. RoleKeywords and Skills are comma-separated free text.
type Preferences struct {
	RoleKeywords       string   `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             string   `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// Threshold returns the minimum match score. Zero means unset (a JSON body
// that omits minMatchScore decodes to 0), so anything outside 1–100 falls
// back to the default.
func (p *Preferences) Threshold() int {
	if p == nil || p.MinMatchScore <= 0 || p.MinMatchScore > 100 {
		return DefaultMinMatchScore
	}
	return p.MinMatchScore
}

// StatusEntry is one row of the append-only status history log.
type StatusEntry struct {
	JobID     int       `json:"jobId"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"date"`
}
