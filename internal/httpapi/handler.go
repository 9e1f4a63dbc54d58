// Package httpapi implements the REST surface of the backend.
//
// Identification: requests either carry a session token in
// "Authorization: Bearer <token>" (issued by /auth/login) or an x-user-id
// header forwarded by a trusted gateway.
//
// Routes:
//
//	GET  /health
//	POST /auth/signup | /auth/login | /auth/logout
//	GET  /jobs                      → scored + filtered + sorted catalog
//	GET  /jobs/filters              → distinct filter values
//	GET  /jobs/saved                → saved jobs with fresh scores
//	POST /jobs/{id}/save|unsave     → saved list membership
//	POST /jobs/{id}/status          → set tracked status
//	GET|PUT /preferences
//	GET  /digest   POST /digest(?force=1)   GET /digest/text
//	GET  /status/history
//	GET|POST /checklist   POST /checklist/reset
//	GET|PUT /artifacts    GET /ship
//	GET  /movies/search | /movies/detail
//	GET|POST /movies/favorites      DELETE via POST /movies/favorites/remove
//	GET|POST /movies/watchlist      POST /movies/watchlist/remove
//	GET|POST /movies/recent         GET /movies/history
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"careerflix/backend/internal/auth"
	"careerflix/backend/internal/catalog"
	"careerflix/backend/internal/digest"
	"careerflix/backend/internal/movies"
	"careerflix/backend/internal/status"
	"careerflix/backend/internal/store"
)

// Handler holds shared dependencies.
type Handler struct {
	catalog     catalog.Provider
	store       *store.Store
	status      *status.Service
	digest      *digest.Service
	auth        *auth.Service
	omdb        *movies.Client
	collections *movies.Collections
}

// NewHandler returns a configured Handler.
func NewHandler(
	cat catalog.Provider,
	st *store.Store,
	statusSvc *status.Service,
	digestSvc *digest.Service,
	authSvc *auth.Service,
	omdb *movies.Client,
	collections *movies.Collections,
) *Handler {
	return &Handler{
		catalog:     cat,
		store:       st,
		status:      statusSvc,
		digest:      digestSvc,
		auth:        authSvc,
		omdb:        omdb,
		collections: collections,
	}
}

// RegisterRoutes mounts all routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/auth/signup", h.handleSignup)
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/logout", h.handleLogout)

	mux.HandleFunc("/jobs", h.handleJobs)
	mux.HandleFunc("/jobs/", h.handleJobsSubtree)

	mux.HandleFunc("/preferences", h.handlePreferences)
	mux.HandleFunc("/digest", h.handleDigest)
	mux.HandleFunc("/digest/text", h.handleDigestText)
	mux.HandleFunc("/status/history", h.handleStatusHistory)

	mux.HandleFunc("/checklist", h.handleChecklist)
	mux.HandleFunc("/checklist/reset", h.handleChecklistReset)
	mux.HandleFunc("/artifacts", h.handleArtifacts)
	mux.HandleFunc("/ship", h.handleShip)

	mux.HandleFunc("/movies/search", h.handleMovieSearch)
	mux.HandleFunc("/movies/detail", h.handleMovieDetail)
	mux.HandleFunc("/movies/favorites", h.handleFavorites)
	mux.HandleFunc("/movies/favorites/remove", h.handleFavoritesRemove)
	mux.HandleFunc("/movies/watchlist", h.handleWatchlist)
	mux.HandleFunc("/movies/watchlist/remove", h.handleWatchlistRemove)
	mux.HandleFunc("/movies/recent", h.handleRecentlyViewed)
	mux.HandleFunc("/movies/history", h.handleSearchHistory)
}

// ─── Identification ──────────────────────────────────────────────────────────

// userID resolves the caller: bearer session token first, then the gateway
// header. Empty means unauthenticated.
func (h *Handler) userID(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		token := strings.TrimPrefix(authz, "Bearer ")
		if h.auth != nil {
			if u, ok, err := h.auth.Resolve(r.Context(), token); err == nil && ok {
				return u.Email
			}
		}
	}
	return r.Header.Get("x-user-id")
}

// requireUser resolves the caller or writes a 401.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := h.userID(r)
	if userID == "" {
		jsonError(w, "missing session token or x-user-id header", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// ─── Shared helpers ──────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[httpapi] response encode error: %v", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps service errors to responses: validation errors are the caller's
// fault, everything else is a 500 with a log line.
func fail(w http.ResponseWriter, err error) {
	var statusErr *status.ValidationError
	if errors.As(err, &statusErr) {
		jsonError(w, statusErr.Msg, http.StatusBadRequest)
		return
	}
	var authErr *auth.ValidationError
	if errors.As(err, &authErr) {
		jsonError(w, authErr.Msg, http.StatusBadRequest)
		return
	}
	log.Printf("[httpapi] internal error: %v", err)
	jsonError(w, "internal error", http.StatusInternalServerError)
}
