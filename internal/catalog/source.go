// Package catalog loads the movie catalog from a remote JSON document.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/isdelr/movie-catalog-be/internal/models"
)

// Source fetches movies from a URL serving a JSON array of movies.
type Source struct {
	url    string
	client *http.Client
}

// NewSource creates a Source for url with a pooled client.
func NewSource(url string, timeout time.Duration) *Source {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return &Source{url: url, client: client}
}

// URL returns the configured source location.
func (s *Source) URL() string {
	return s.url
}

// Fetch downloads and decodes the catalog.
func (s *Source) Fetch(ctx context.Context) ([]models.Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching catalog: unexpected status %d", resp.StatusCode)
	}

	var movies []models.Movie
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return movies, nil
}
