package httpapi

import (
	"net/http"

	"careerflix/backend/internal/model"
	"careerflix/backend/internal/ship"
	"careerflix/backend/internal/store"
)

// ─── Preferences ─────────────────────────────────────────────────────────────

// handlePreferences serves GET and PUT /preferences. GET returns null until
// the user has saved preferences at least once.
func (h *Handler) handlePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		prefs, err := h.store.Preferences(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"preferences": prefs})
	case http.MethodPut:
		var prefs model.Preferences
		if !decodeBody(w, r, &prefs) {
			return
		}
		if err := h.store.SavePreferences(r.Context(), userID, prefs); err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"preferences": prefs})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ─── Digest ──────────────────────────────────────────────────────────────────

// handleDigest serves GET /digest (today's snapshot, 404 until generated)
// and POST /digest (generate; ?force=1 regenerates an existing snapshot).
func (h *Handler) handleDigest(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		jobs, found, err := h.digest.Today(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		if !found {
			jsonError(w, "no digest generated today", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": viewJobs(jobs), "total": len(jobs)})
	case http.MethodPost:
		prefs, err := h.store.Preferences(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		force := r.URL.Query().Get("force") == "1" || r.URL.Query().Get("force") == "true"
		jobs, err := h.digest.GenerateToday(r.Context(), userID, h.catalog.Jobs(), prefs, force)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": viewJobs(jobs), "total": len(jobs)})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDigestText serves GET /digest/text: the snapshot rendered as the
// plain-text notification body.
func (h *Handler) handleDigestText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	jobs, found, err := h.digest.Today(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	if !found {
		jsonError(w, "no digest generated today", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.digest.FormatPlainText(jobs)))
}

// ─── Status history ──────────────────────────────────────────────────────────

func (h *Handler) handleStatusHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	entries, err := h.status.History(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries, "total": len(entries)})
}

// ─── Ship readiness ──────────────────────────────────────────────────────────

// handleChecklist serves GET /checklist (items with checked state) and
// POST /checklist with body {"id": "...", "checked": true}.
func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		checked, err := h.store.Checklist(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, checklistView(checked))
	case http.MethodPost:
		var body struct {
			ID      string `json:"id"`
			Checked bool   `json:"checked"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if !ship.KnownItem(body.ID) {
			jsonError(w, "unknown checklist item", http.StatusBadRequest)
			return
		}
		if err := h.store.SetChecklistItem(r.Context(), userID, body.ID, body.Checked); err != nil {
			fail(w, err)
			return
		}
		checked, err := h.store.Checklist(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, checklistView(checked))
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleChecklistReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	if err := h.store.ResetChecklist(r.Context(), userID); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistView(nil))
}

// checklistView joins the fixed item catalog with the user's checked map.
func checklistView(checked map[string]bool) map[string]any {
	type item struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Tooltip string `json:"tooltip"`
		Checked bool   `json:"checked"`
	}
	items := make([]item, 0, len(ship.Checklist))
	for _, it := range ship.Checklist {
		items = append(items, item{ID: it.ID, Label: it.Label, Tooltip: it.Tooltip, Checked: checked[it.ID]})
	}
	return map[string]any{"items": items, "allPassed": ship.AllTestsPassed(checked)}
}

// handleArtifacts serves GET and PUT /artifacts. PUT validates every
// non-empty URL and rejects the whole update on the first invalid one.
func (h *Handler) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := h.store.ProofArtifacts(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	case http.MethodPut:
		var a store.Artifacts
		if !decodeBody(w, r, &a) {
			return
		}
		for _, u := range []string{a.Lovable, a.GitHub, a.Deployed} {
			if u != "" && !ship.ValidateURL(u) {
				jsonError(w, "artifact URLs must be absolute http(s) URLs", http.StatusBadRequest)
				return
			}
		}
		if err := h.store.SaveProofArtifacts(r.Context(), userID, a); err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleShip serves GET /ship: the derived readiness state plus the final
// submission text when everything is complete.
func (h *Handler) handleShip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	checked, err := h.store.Checklist(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	artifacts, err := h.store.ProofArtifacts(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}

	resp := map[string]any{
		"state":   ship.Derive(checked, artifacts),
		"canShip": ship.CanShip(checked, artifacts),
	}
	if ship.CanShip(checked, artifacts) {
		resp["finalSubmission"] = ship.FormatFinalSubmission(artifacts)
	}
	writeJSON(w, http.StatusOK, resp)
}
