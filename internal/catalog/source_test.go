package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"title":"After Dark in Central Park","year":1900,"cast":[],"genres":[]},
			{"title":"Alien","year":1979,"cast":["Sigourney Weaver"],"genres":["Horror"],"thumbnail_width":220}
		]`))
	}))
	defer srv.Close()

	movies, err := NewSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[1].Title)
	assert.Equal(t, []string{"Sigourney Weaver"}, movies[1].Cast)
	assert.Equal(t, 220, movies[1].ThumbnailWidth)
}

func TestSource_FetchErrors(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()
	_, err := NewSource(notFound.URL, time.Second).Fetch(context.Background())
	assert.ErrorContains(t, err, "unexpected status 404")

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer garbage.Close()
	_, err = NewSource(garbage.URL, time.Second).Fetch(context.Background())
	assert.ErrorContains(t, err, "decoding catalog")

	_, err = NewSource("http://127.0.0.1:0", time.Second).Fetch(context.Background())
	assert.Error(t, err)
}
