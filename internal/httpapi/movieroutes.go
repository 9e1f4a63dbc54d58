package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"careerflix/backend/internal/movies"
)

// movieFail maps OMDb client errors: a missing key is 503, an upstream
// "Response":"False" (e.g. no results) is 404, everything else is 502.
func movieFail(w http.ResponseWriter, err error) {
	if errors.Is(err, movies.ErrNotConfigured) {
		jsonError(w, "movie search is not configured", http.StatusServiceUnavailable)
		return
	}
	var upstream *movies.UpstreamError
	if errors.As(err, &upstream) {
		jsonError(w, upstream.Msg, http.StatusNotFound)
		return
	}
	log.Printf("[httpapi] omdb error: %v", err)
	jsonError(w, "movie service unavailable", http.StatusBadGateway)
}

// handleMovieSearch serves GET /movies/search?q=...&page=N. Successful
// searches are recorded in the user's search history.
func (h *Handler) handleMovieSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "missing q parameter", http.StatusBadRequest)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	result, err := h.omdb.Search(r.Context(), query, page)
	if err != nil {
		movieFail(w, err)
		return
	}
	if err := h.collections.RecordSearch(r.Context(), userID, query); err != nil {
		log.Printf("[httpapi] record search: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"movies":       result.Movies,
		"totalResults": result.TotalResults,
		"page":         page,
	})
}

// handleMovieDetail serves GET /movies/detail?id=tt.... Viewing a detail
// pushes the movie onto the recently-viewed list.
func (h *Handler) handleMovieDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	imdbID := r.URL.Query().Get("id")
	if imdbID == "" {
		jsonError(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	detail, err := h.omdb.ByID(r.Context(), imdbID)
	if err != nil {
		movieFail(w, err)
		return
	}
	if err := h.collections.MarkViewed(r.Context(), userID, detail.Movie); err != nil {
		log.Printf("[httpapi] mark viewed: %v", err)
	}
	writeJSON(w, http.StatusOK, detail)
}

// ─── Collections ─────────────────────────────────────────────────────────────

// listQuery applies the optional ?type= and ?sort= parameters shared by the
// collection list endpoints.
func listQuery(r *http.Request, list []movies.Movie) []movies.Movie {
	q := r.URL.Query()
	return movies.FilterAndSort(list, q.Get("type"), q.Get("sort"))
}

func (h *Handler) handleFavorites(w http.ResponseWriter, r *http.Request) {
	h.handleCollection(w, r,
		h.collections.Favorites,
		func(ctx context.Context, userID string, m movies.Movie) error {
			_, err := h.collections.AddFavorite(ctx, userID, m)
			return err
		})
}

func (h *Handler) handleFavoritesRemove(w http.ResponseWriter, r *http.Request) {
	h.handleRemove(w, r, func(ctx context.Context, userID, imdbID string) error {
		_, err := h.collections.RemoveFavorite(ctx, userID, imdbID)
		return err
	})
}

func (h *Handler) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	h.handleCollection(w, r,
		h.collections.Watchlist,
		func(ctx context.Context, userID string, m movies.Movie) error {
			_, err := h.collections.AddToWatchlist(ctx, userID, m)
			return err
		})
}

func (h *Handler) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	h.handleRemove(w, r, h.collections.RemoveFromWatchlist)
}

func (h *Handler) handleRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	h.handleCollection(w, r,
		h.collections.RecentlyViewed,
		h.collections.MarkViewed)
}

func (h *Handler) handleSearchHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	queries, err := h.collections.SearchHistory(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"queries": queries})
}

// handleCollection implements the shared GET (list) / POST (add) shape of
// the favorites, watchlist and recently-viewed endpoints.
func (h *Handler) handleCollection(
	w http.ResponseWriter,
	r *http.Request,
	list func(context.Context, string) ([]movies.Movie, error),
	add func(context.Context, string, movies.Movie) error,
) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := list(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		items = listQuery(r, items)
		writeJSON(w, http.StatusOK, map[string]any{"movies": items, "total": len(items)})
	case http.MethodPost:
		var m movies.Movie
		if !decodeBody(w, r, &m) {
			return
		}
		if m.ImdbID == "" {
			jsonError(w, "missing imdbID", http.StatusBadRequest)
			return
		}
		if err := add(r.Context(), userID, m); err != nil {
			fail(w, err)
			return
		}
		items, err := list(r.Context(), userID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"movies": items, "total": len(items)})
	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRemove implements the shared POST {"imdbID": "..."} removal shape.
func (h *Handler) handleRemove(
	w http.ResponseWriter,
	r *http.Request,
	remove func(ctx context.Context, userID, imdbID string) error,
) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	var body struct {
		ImdbID string `json:"imdbID"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ImdbID == "" {
		jsonError(w, "missing imdbID", http.StatusBadRequest)
		return
	}
	if err := remove(r.Context(), userID, body.ImdbID); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
