// Package movies implements the movie browser collaborators: the OMDb API
// client and the per-user collections (favorites, watchlist, recently
// viewed, search history).
package movies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	omdbBaseURL = "https://www.omdbapi.com/"
	httpTimeout = 15 * time.Second
)

// ErrNotConfigured is returned when no OMDb API key is set. Search is simply
// unavailable rather than broken.
var ErrNotConfigured = errors.New("omdb: api key not configured")

// UpstreamError is OMDb's own "Response":"False" failure (e.g. "Movie not
// found!"). It is distinct from a transport failure so the caller can show
// "nothing found" instead of "connection problem".
type UpstreamError struct{ Msg string }

func (e *UpstreamError) Error() string { return "omdb: " + e.Msg }

// Movie is one OMDb search result.
type Movie struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Detail is the full record returned by an id lookup.
type Detail struct {
	Movie
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	IMDBRating string `json:"imdbRating"`
}

// SearchResult is one page of search results.
type SearchResult struct {
	Movies       []Movie
	TotalResults int
}

// Client fetches movie data from the OMDb public API. If APIKey is empty,
// every call returns ErrNotConfigured — the movie routes degrade gracefully
// instead of failing at startup.
type Client struct {
	APIKey string
	client *http.Client
	base   string
}

// NewClient constructs a Client with a shared HTTP client.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey: apiKey,
		client: &http.Client{Timeout: httpTimeout},
		base:   omdbBaseURL,
	}
}

// NewClientWithBase is used by tests to point the client at a local server.
func NewClientWithBase(apiKey, base string) *Client {
	c := NewClient(apiKey)
	c.base = base
	return c
}

// omdbSearchResponse mirrors the top-level OMDb search JSON.
type omdbSearchResponse struct {
	Search       []Movie `json:"Search"`
	TotalResults string  `json:"totalResults"`
	Response     string  `json:"Response"`
	Error        string  `json:"Error"`
}

// Search runs a paged title search (page is 1-based).
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResult, error) {
	if c.APIKey == "" {
		log.Println("[movies] OMDB_API_KEY not set — search unavailable")
		return nil, ErrNotConfigured
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("apikey", c.APIKey)
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp omdbSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if resp.Response == "False" {
		return nil, &UpstreamError{Msg: resp.Error}
	}

	total, _ := strconv.Atoi(resp.TotalResults)
	return &SearchResult{Movies: resp.Search, TotalResults: total}, nil
}

// omdbDetailResponse wraps Detail with OMDb's inline error signalling.
type omdbDetailResponse struct {
	Detail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// ByID fetches the full record for one imdb id.
func (c *Client) ByID(ctx context.Context, imdbID string) (*Detail, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("apikey", c.APIKey)
	params.Set("i", imdbID)
	params.Set("plot", "full")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp omdbDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if resp.Response == "False" {
		return nil, &UpstreamError{Msg: resp.Error}
	}
	return &resp.Detail, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.base + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
