// Package pipeline implements the dashboard filter + sort chain over scored
// jobs. All functions are pure: the input slice is copied before ordering.
package pipeline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"careerflix/backend/internal/model"
)

// Sort modes. Exactly one is active per request.
const (
	SortLatest = "latest" // ascending postedDaysAgo — most recent first
	SortSalary = "salary" // descending first-number extraction from salary text
	SortMatch  = "match"  // descending match score
)

// Filters holds the active dashboard filters. Zero values are no-ops, so an
// empty Filters passes every job through.
type Filters struct {
	Keyword         string
	Location        string
	Mode            string
	Experience      string
	Source          string
	Status          string
	ShowMatchesOnly bool
	SortBy          string // defaults to SortLatest
}

// StatusLookup resolves the externally tracked status for a job id.
// Status lives in the status store, never on the job record.
type StatusLookup func(jobID int) string

// FilterAndSort narrows scored by every active filter (AND semantics, fixed
// order) and then applies the selected sort mode. Sorting is stable: ties
// keep their filtered-stage relative order.
//
// The ShowMatchesOnly filter needs prefs to threshold against; when prefs is
// nil it is ignored regardless of the flag, so an unconfigured user never
// sees an artificially empty dashboard.
func FilterAndSort(scored []model.ScoredJob, f Filters, prefs *model.Preferences, statusOf StatusLookup) []model.ScoredJob {
	result := make([]model.ScoredJob, len(scored))
	copy(result, scored)

	if f.Keyword != "" {
		k := strings.ToLower(f.Keyword)
		result = keep(result, func(j model.ScoredJob) bool {
			return strings.Contains(strings.ToLower(j.Title), k) ||
				strings.Contains(strings.ToLower(j.Company), k)
		})
	}
	if f.Location != "" {
		result = keep(result, func(j model.ScoredJob) bool { return j.Location == f.Location })
	}
	if f.Mode != "" {
		result = keep(result, func(j model.ScoredJob) bool { return j.Mode == f.Mode })
	}
	if f.Experience != "" {
		result = keep(result, func(j model.ScoredJob) bool { return j.Experience == f.Experience })
	}
	if f.Source != "" {
		result = keep(result, func(j model.ScoredJob) bool { return j.Source == f.Source })
	}
	if f.Status != "" && statusOf != nil {
		result = keep(result, func(j model.ScoredJob) bool { return statusOf(j.ID) == f.Status })
	}
	if f.ShowMatchesOnly && prefs != nil {
		threshold := prefs.Threshold()
		result = keep(result, func(j model.ScoredJob) bool { return j.MatchScore >= threshold })
	}

	switch f.SortBy {
	case SortSalary:
		sort.SliceStable(result, func(a, b int) bool {
			return ExtractSalaryNum(result[a].SalaryRange) > ExtractSalaryNum(result[b].SalaryRange)
		})
	case SortMatch:
		sort.SliceStable(result, func(a, b int) bool {
			return result[a].MatchScore > result[b].MatchScore
		})
	default: // SortLatest
		sort.SliceStable(result, func(a, b int) bool {
			return result[a].PostedDaysAgo < result[b].PostedDaysAgo
		})
	}

	return result
}

var firstNumber = regexp.MustCompile(`\d+`)

// ExtractSalaryNum pulls the first integer out of free-text salary copy,
// e.g. "₹10-15 LPA" → 10. Non-numeric or empty text extracts to 0 so it
// sorts last under the descending salary mode.
func ExtractSalaryNum(s string) int {
	m := firstNumber.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// Values holds the distinct categorical values present in the catalog,
// sorted, for populating the dashboard filter controls.
type Values struct {
	Locations   []string `json:"locations"`
	Modes       []string `json:"modes"`
	Experiences []string `json:"experiences"`
	Sources     []string `json:"sources"`
}

// FilterValues collects the sorted distinct locations, modes, experience
// levels and sources across jobs, skipping empty fields.
func FilterValues(jobs []model.Job) Values {
	return Values{
		Locations:   distinct(jobs, func(j model.Job) string { return j.Location }),
		Modes:       distinct(jobs, func(j model.Job) string { return j.Mode }),
		Experiences: distinct(jobs, func(j model.Job) string { return j.Experience }),
		Sources:     distinct(jobs, func(j model.Job) string { return j.Source }),
	}
}

func distinct(jobs []model.Job, field func(model.Job) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, j := range jobs {
		v := field(j)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func keep(jobs []model.ScoredJob, pred func(model.ScoredJob) bool) []model.ScoredJob {
	out := jobs[:0]
	for _, j := range jobs {
		if pred(j) {
			out = append(out, j)
		}
	}
	return out
}
