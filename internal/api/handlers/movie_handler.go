package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/rs/zerolog/log"
)

// MovieHandler handles HTTP requests related to the movie catalog.
type MovieHandler struct {
	service services.MovieServiceProvider
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(service services.MovieServiceProvider) *MovieHandler {
	return &MovieHandler{service: service}
}

// GetByTitle handles the request to get a single movie by its exact title.
func (h *MovieHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetByTitle(pathParam(r, "title"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GetByYear handles the request to list movies released in a year.
func (h *MovieHandler) GetByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "year must be an integer")
		return
	}
	movies, err := h.service.GetByYear(year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// GetByGenre handles the request to list movies of a genre.
func (h *MovieHandler) GetByGenre(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetByGenre(pathParam(r, "genre"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

// Create handles the request to add a movie.
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := decodeStrict(r, &movie); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Add(movie, actor(r))
	if err != nil {
		log.Warn().Err(err).Str("title", movie.Title).Msg("Failed to add movie")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to partially update a movie.
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")
	var patch models.MoviePatch
	if err := decodeStrict(r, &patch); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(title, patch, actor(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a movie.
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")
	if err := h.service.Delete(title, actor(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathParam returns a decoded URL parameter. chi routes on RawPath when the
// request escapes characters such as "/", leaving the param escaped.
func pathParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

func actor(r *http.Request) string {
	account, _ := auth.AccountFromContext(r.Context())
	return account.Username
}
