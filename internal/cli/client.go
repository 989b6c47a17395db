// Package cli implements the interactive command-line client for the movie API.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/isdelr/movie-catalog-be/internal/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

// Client talks to the movie API and remembers the bearer token after login.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := cleanhttp.DefaultClient()
	c.Timeout = timeout
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: c}
}

// LoggedIn reports whether a token is held.
func (c *Client) LoggedIn() bool {
	return c.token != ""
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, email, name, password string) (models.Account, error) {
	body := map[string]string{"username": username, "email": email, "name": name, "password": password}
	var account models.Account
	err := c.doJSON(ctx, http.MethodPost, "/register", body, &account)
	return account, err
}

// Login exchanges credentials for a bearer token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.send(req, &tok); err != nil {
		return err
	}
	c.token = tok.AccessToken
	return nil
}

// MovieByTitle fetches a movie by exact title.
func (c *Client) MovieByTitle(ctx context.Context, title string) (models.Movie, error) {
	var movie models.Movie
	err := c.doJSON(ctx, http.MethodGet, "/movies/title/"+url.PathEscape(title), nil, &movie)
	return movie, err
}

// MoviesByYear lists movies from year.
func (c *Client) MoviesByYear(ctx context.Context, year int) ([]models.Movie, error) {
	var movies []models.Movie
	err := c.doJSON(ctx, http.MethodGet, "/movies/year/"+strconv.Itoa(year), nil, &movies)
	return movies, err
}

// MoviesByGenre lists movies of genre.
func (c *Client) MoviesByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	var movies []models.Movie
	err := c.doJSON(ctx, http.MethodGet, "/movies/genre/"+url.PathEscape(genre), nil, &movies)
	return movies, err
}

// AddMovie creates a movie. Requires login.
func (c *Client) AddMovie(ctx context.Context, movie models.Movie) error {
	return c.doJSON(ctx, http.MethodPost, "/movies", movie, nil)
}

// UpdateMovie patches a movie. Requires login.
func (c *Client) UpdateMovie(ctx context.Context, title string, patch models.MoviePatch) error {
	return c.doJSON(ctx, http.MethodPut, "/movies/"+url.PathEscape(title), patch, nil)
}

// DeleteMovie removes a movie. Requires login.
func (c *Client) DeleteMovie(ctx context.Context, title string) error {
	return c.doJSON(ctx, http.MethodDelete, "/movies/"+url.PathEscape(title), nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &detail) == nil && detail.Detail != "" {
			apiErr.Detail = detail.Detail
		} else {
			apiErr.Detail = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
