package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/isdelr/movie-catalog-be/internal/api"
	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/isdelr/movie-catalog-be/internal/store"
	"github.com/isdelr/movie-catalog-be/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) (*httptest.Server, *services.MovieService) {
	t.Helper()
	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	tokens, err := auth.NewTokenService([]byte("cli-test-secret-cli-test-secret!"), "HS256")
	require.NoError(t, err)
	events := services.NewEventService(50, hub)
	users := services.NewUserService(store.NewAccountStore(), auth.NewBcryptHasher(bcrypt.MinCost), tokens, events, 0)
	movies := services.NewMovieService(store.NewMovieStore([]models.Movie{
		{Title: "Alien", Year: 1979, Genres: []string{"Horror"}},
	}), events)

	srv := httptest.NewServer(api.NewRouter(hub, users, movies, events, nil))
	t.Cleanup(srv.Close)
	return srv, movies
}

func runMenu(t *testing.T, baseURL, input string) string {
	t.Helper()
	var out bytes.Buffer
	menu := NewMenu(NewClient(baseURL, 5*time.Second), strings.NewReader(input), &out, nil)
	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func TestMenu_FullSession(t *testing.T) {
	srv, movies := newServer(t)

	input := strings.Join([]string{
		"1", "ana", "ana@x.com", "Ana", "pw123", // register
		"2", "ana", "pw123", // login
		"3", "Alien", // by title
		"6", "Dune", "2021", "Science Fiction, Drama", // add
		"7", "Dune", "1984", "Science Fiction", // update
		"5", "science fiction", // by genre
		"8", "Alien", // delete
		"4", "1979", // by year, now empty
		"9",
	}, "\n") + "\n"

	out := runMenu(t, srv.URL, input)

	assert.Contains(t, out, "User registered.")
	assert.Contains(t, out, "Logged in.")
	assert.Contains(t, out, `"title": "Alien"`)
	assert.Contains(t, out, "Movie 'Dune' added.")
	assert.Contains(t, out, "Movie 'Dune' updated.")
	assert.Contains(t, out, `"year": 1984`)
	assert.Contains(t, out, "Movie 'Alien' deleted.")
	assert.Contains(t, out, "Error: server returned 404")

	dune, err := movies.GetByTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, []string{"Science Fiction"}, dune.Genres)
}

func TestMenu_MutationWithoutLogin(t *testing.T) {
	srv, _ := newServer(t)

	out := runMenu(t, srv.URL, "8\nAlien\n9\n")
	assert.Contains(t, out, "Error: server returned 401: not authenticated")
}

func TestMenu_BadLoginAndInvalidInput(t *testing.T) {
	srv, _ := newServer(t)

	out := runMenu(t, srv.URL, "2\nana\nwrong\n4\nnineteen\n0\n")
	assert.Contains(t, out, "login failed: server returned 401: invalid credentials")
	assert.Contains(t, out, `"nineteen" is not a number`)
	assert.Contains(t, out, "Invalid option")
}

func TestMenu_EOFEndsSession(t *testing.T) {
	srv, _ := newServer(t)
	out := runMenu(t, srv.URL, "1\nana\n")
	assert.Contains(t, out, "Email: ")
}

func TestClient_APIErrorFallsBackToBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).MovieByTitle(context.Background(), "Alien")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Detail)
}

func TestClient_LoginStoresToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "ana", r.PostForm.Get("username"))
			w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
		default:
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	assert.False(t, c.LoggedIn())
	require.NoError(t, c.Login(context.Background(), "ana", "pw"))
	assert.True(t, c.LoggedIn())

	require.NoError(t, c.DeleteMovie(context.Background(), "The Matrix"))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestSplitGenres(t *testing.T) {
	assert.Equal(t, []string{"Drama", "Science Fiction"}, splitGenres(" Drama, ,Science Fiction ,"))
	assert.Nil(t, splitGenres(""))
}
