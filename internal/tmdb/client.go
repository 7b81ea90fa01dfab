package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is the TMDB API client used for catalog ingestion.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- TMDB Response Types (internal, not exposed to consumers) ----

// DiscoverResponse is the TMDB discover/movie response.
type DiscoverResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// TMDBMovie is a movie from TMDB discover results.
type TMDBMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalLanguage string  `json:"original_language"`
}

// TMDBGenre is a genre from TMDB.
type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreListResponse is the TMDB genre/movie/list response.
type GenreListResponse struct {
	Genres []TMDBGenre `json:"genres"`
}

// ---- Client Methods ----

// DiscoverMovies fetches movies from the TMDB discover endpoint.
func (c *Client) DiscoverMovies(page int) (*DiscoverResponse, error) {
	u := fmt.Sprintf(
		"%s/discover/movie?api_key=%s&sort_by=popularity.desc&page=%d",
		c.baseURL, c.apiKey, page,
	)

	slog.Debug("fetching TMDB discover", "page", page)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode discover response: %w", err)
	}
	return &result, nil
}

// SearchMovies searches the TMDB catalog by title.
func (c *Client) SearchMovies(query string, page int) (*DiscoverResponse, error) {
	u := fmt.Sprintf(
		"%s/search/movie?api_key=%s&query=%s&page=%d",
		c.baseURL, c.apiKey, url.QueryEscape(query), page,
	)

	slog.Debug("fetching TMDB search", "query", query, "page", page)
	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &result, nil
}

// GetGenres fetches the full genre list from TMDB.
func (c *Client) GetGenres() ([]TMDBGenre, error) {
	u := fmt.Sprintf("%s/genre/movie/list?api_key=%s", c.baseURL, c.apiKey)

	resp, err := c.doGet(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result GenreListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode genre response: %w", err)
	}
	return result.Genres, nil
}

func (c *Client) doGet(u string) (*http.Response, error) {
	resp, err := c.http.Get(u)
	if err != nil {
		return nil, fmt.Errorf("TMDB request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("TMDB returned %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
