package movies

import (
	"context"
	"sort"
	"strings"

	"careerflix/backend/internal/store"
)

// Collection caps.
const (
	recentlyViewedCap = 20
	searchHistoryCap  = 10
)

// Sort modes for search results.
const (
	SortTitle = "title"
	SortYear  = "year"
)

// Collections manages the four per-user movie lists on top of the store.
type Collections struct {
	store *store.Store
}

// NewCollections returns a Collections over st.
func NewCollections(st *store.Store) *Collections {
	return &Collections{store: st}
}

// ─── Favorites ───────────────────────────────────────────────────────────────

// Favorites returns the user's favorites in add order.
func (c *Collections) Favorites(ctx context.Context, userID string) ([]Movie, error) {
	var list []Movie
	if _, err := c.store.GetJSON(ctx, store.UserKey(userID, "movies:favorites"), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddFavorite appends m unless it is already present. Reports whether the
// list changed.
func (c *Collections) AddFavorite(ctx context.Context, userID string, m Movie) (bool, error) {
	list, err := c.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, existing := range list {
		if existing.ImdbID == m.ImdbID {
			return false, nil
		}
	}
	list = append(list, m)
	return true, c.store.SetJSON(ctx, store.UserKey(userID, "movies:favorites"), list)
}

// RemoveFavorite drops the movie with imdbID. Reports whether it was present.
func (c *Collections) RemoveFavorite(ctx context.Context, userID, imdbID string) (bool, error) {
	list, err := c.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	kept := list[:0]
	for _, m := range list {
		if m.ImdbID != imdbID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, c.store.SetJSON(ctx, store.UserKey(userID, "movies:favorites"), kept)
}

// IsFavorite reports membership.
func (c *Collections) IsFavorite(ctx context.Context, userID, imdbID string) (bool, error) {
	list, err := c.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, m := range list {
		if m.ImdbID == imdbID {
			return true, nil
		}
	}
	return false, nil
}

// ─── Watchlist ───────────────────────────────────────────────────────────────

// Watchlist returns the watch-later list, separate from favorites.
func (c *Collections) Watchlist(ctx context.Context, userID string) ([]Movie, error) {
	var list []Movie
	if _, err := c.store.GetJSON(ctx, store.UserKey(userID, "movies:watchlist"), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddToWatchlist appends m unless already present.
func (c *Collections) AddToWatchlist(ctx context.Context, userID string, m Movie) (bool, error) {
	list, err := c.Watchlist(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, existing := range list {
		if existing.ImdbID == m.ImdbID {
			return false, nil
		}
	}
	list = append(list, m)
	return true, c.store.SetJSON(ctx, store.UserKey(userID, "movies:watchlist"), list)
}

// RemoveFromWatchlist drops imdbID from the list.
func (c *Collections) RemoveFromWatchlist(ctx context.Context, userID, imdbID string) error {
	list, err := c.Watchlist(ctx, userID)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, m := range list {
		if m.ImdbID != imdbID {
			kept = append(kept, m)
		}
	}
	return c.store.SetJSON(ctx, store.UserKey(userID, "movies:watchlist"), kept)
}

// ─── Recently viewed ─────────────────────────────────────────────────────────

// RecentlyViewed returns the most-recently-viewed list, newest first.
func (c *Collections) RecentlyViewed(ctx context.Context, userID string) ([]Movie, error) {
	var list []Movie
	if _, err := c.store.GetJSON(ctx, store.UserKey(userID, "movies:recent"), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkViewed moves m to the front, dropping any earlier occurrence and
// trimming to the cap.
func (c *Collections) MarkViewed(ctx context.Context, userID string, m Movie) error {
	list, err := c.RecentlyViewed(ctx, userID)
	if err != nil {
		return err
	}
	kept := make([]Movie, 0, len(list)+1)
	kept = append(kept, m)
	for _, existing := range list {
		if existing.ImdbID != m.ImdbID {
			kept = append(kept, existing)
		}
	}
	if len(kept) > recentlyViewedCap {
		kept = kept[:recentlyViewedCap]
	}
	return c.store.SetJSON(ctx, store.UserKey(userID, "movies:recent"), kept)
}

// ─── Search history ──────────────────────────────────────────────────────────

// SearchHistory returns the recent search terms, newest first.
func (c *Collections) SearchHistory(ctx context.Context, userID string) ([]string, error) {
	var list []string
	if _, err := c.store.GetJSON(ctx, store.UserKey(userID, "movies:searches"), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// RecordSearch prepends the lowercased query, deduplicating and trimming to
// the cap. Blank queries are ignored.
func (c *Collections) RecordSearch(ctx context.Context, userID, query string) error {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	list, err := c.SearchHistory(ctx, userID)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(list)+1)
	kept = append(kept, q)
	for _, existing := range list {
		if existing != q {
			kept = append(kept, existing)
		}
	}
	if len(kept) > searchHistoryCap {
		kept = kept[:searchHistoryCap]
	}
	return c.store.SetJSON(ctx, store.UserKey(userID, "movies:searches"), kept)
}

// ─── Result filtering ────────────────────────────────────────────────────────

// FilterAndSort narrows search results by type (movie/series/episode; empty
// keeps all) and orders them by the chosen mode. Unknown modes keep API
// order. Pure; the input slice is not mutated.
func FilterAndSort(list []Movie, typeFilter, sortBy string) []Movie {
	out := make([]Movie, 0, len(list))
	for _, m := range list {
		if typeFilter != "" && m.Type != typeFilter {
			continue
		}
		out = append(out, m)
	}
	switch sortBy {
	case SortTitle:
		sort.SliceStable(out, func(a, b int) bool {
			return strings.ToLower(out[a].Title) < strings.ToLower(out[b].Title)
		})
	case SortYear:
		// Year is free text ("2010", "2001–2003"); compare the leading digits
		// descending so newer titles come first.
		sort.SliceStable(out, func(a, b int) bool {
			return yearNum(out[a].Year) > yearNum(out[b].Year)
		})
	}
	return out
}

func yearNum(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
