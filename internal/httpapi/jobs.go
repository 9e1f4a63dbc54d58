package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"careerflix/backend/internal/match"
	"careerflix/backend/internal/model"
	"careerflix/backend/internal/pipeline"
)

// jobView adds the presentation-only badge band to a scored job.
type jobView struct {
	model.ScoredJob
	MatchBadge string `json:"matchBadge"`
}

func viewJobs(scored []model.ScoredJob) []jobView {
	views := make([]jobView, 0, len(scored))
	for _, j := range scored {
		views = append(views, jobView{ScoredJob: j, MatchBadge: match.Badge(j.MatchScore)})
	}
	return views
}

// scoredCatalog snapshots the catalog and scores every job against the
// user's current preferences. Scores are derived here on every request so a
// preference change is reflected immediately.
func (h *Handler) scoredCatalog(r *http.Request, userID string) ([]model.ScoredJob, *model.Preferences, error) {
	prefs, err := h.store.Preferences(r.Context(), userID)
	if err != nil {
		return nil, nil, err
	}
	jobs := h.catalog.Jobs()
	scored := make([]model.ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		scored = append(scored, model.ScoredJob{Job: j, MatchScore: match.Score(j, prefs)})
	}
	return scored, prefs, nil
}

func filtersFromQuery(r *http.Request) pipeline.Filters {
	q := r.URL.Query()
	return pipeline.Filters{
		Keyword:         q.Get("keyword"),
		Location:        q.Get("location"),
		Mode:            q.Get("mode"),
		Experience:      q.Get("experience"),
		Source:          q.Get("source"),
		Status:          q.Get("status"),
		ShowMatchesOnly: q.Get("matchesOnly") == "1" || q.Get("matchesOnly") == "true",
		SortBy:          q.Get("sort"),
	}
}

// handleJobs serves GET /jobs: the full catalog scored, filtered and sorted.
func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	scored, prefs, err := h.scoredCatalog(r, userID)
	if err != nil {
		fail(w, err)
		return
	}
	result := pipeline.FilterAndSort(scored, filtersFromQuery(r), prefs, h.status.Lookup(r.Context(), userID))
	writeJSON(w, http.StatusOK, map[string]any{"jobs": viewJobs(result), "total": len(result)})
}

// handleJobsSubtree dispatches /jobs/filters, /jobs/saved and
// /jobs/{id}/{action}.
func (h *Handler) handleJobsSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	switch rest {
	case "filters":
		h.handleJobFilters(w, r)
		return
	case "saved":
		h.handleSavedJobs(w, r)
		return
	}

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		jsonError(w, "not found", http.StatusNotFound)
		return
	}
	jobID, err := strconv.Atoi(parts[0])
	if err != nil {
		jsonError(w, "invalid job id", http.StatusBadRequest)
		return
	}
	switch parts[1] {
	case "save":
		h.handleSaveJob(w, r, jobID)
	case "unsave":
		h.handleUnsaveJob(w, r, jobID)
	case "status":
		h.handleSetStatus(w, r, jobID)
	default:
		jsonError(w, "not found", http.StatusNotFound)
	}
}

// handleJobFilters serves GET /jobs/filters: the distinct values the
// dashboard dropdowns offer.
func (h *Handler) handleJobFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.FilterValues(h.catalog.Jobs()))
}

// handleSavedJobs serves GET /jobs/saved: the saved list resolved against the
// live catalog with fresh scores. Ids no longer in the catalog are skipped.
func (h *Handler) handleSavedJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ids, err := h.store.SavedJobIDs(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	prefs, err := h.store.Preferences(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	saved := make([]model.ScoredJob, 0, len(ids))
	for _, id := range ids {
		job, found := h.catalog.ByID(id)
		if !found {
			continue
		}
		saved = append(saved, model.ScoredJob{Job: job, MatchScore: match.Score(job, prefs)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": viewJobs(saved), "total": len(saved)})
}

func (h *Handler) handleSaveJob(w http.ResponseWriter, r *http.Request, jobID int) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if _, found := h.catalog.ByID(jobID); !found {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	if err := h.store.SaveJob(r.Context(), userID, jobID); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

func (h *Handler) handleUnsaveJob(w http.ResponseWriter, r *http.Request, jobID int) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if err := h.store.UnsaveJob(r.Context(), userID, jobID); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": false})
}

// handleSetStatus serves POST /jobs/{id}/status with body {"status": "..."}.
func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request, jobID int) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	job, found := h.catalog.ByID(jobID)
	if !found {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	newStatus, err := h.status.Set(r.Context(), userID, job, body.Status)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobId": jobID, "status": newStatus})
}
