package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/isdelr/movie-catalog-be/internal/store"
	"github.com/rs/zerolog/log"
)

// MovieServiceProvider defines the interface for catalog services.
type MovieServiceProvider interface {
	GetByTitle(title string) (models.Movie, error)
	GetByYear(year int) ([]models.Movie, error)
	GetByGenre(genre string) ([]models.Movie, error)
	Add(movie models.Movie, actor string) (models.Movie, error)
	Update(title string, patch models.MoviePatch, actor string) (models.Movie, error)
	Delete(title, actor string) error
	Replace(movies []models.Movie) int
}

// MovieService provides business logic for the movie catalog.
type MovieService struct {
	movies *store.MovieStore
	events EventServiceProvider
}

// NewMovieService creates a new MovieService.
func NewMovieService(movies *store.MovieStore, events EventServiceProvider) *MovieService {
	return &MovieService{movies: movies, events: events}
}

// GetByTitle returns the first movie with an exactly matching title.
func (s *MovieService) GetByTitle(title string) (models.Movie, error) {
	movie, err := s.movies.Find(title)
	if errors.Is(err, store.ErrNotFound) {
		return models.Movie{}, ErrMovieNotFound
	}
	return movie, err
}

// GetByYear returns every movie released in year.
func (s *MovieService) GetByYear(year int) ([]models.Movie, error) {
	found := s.movies.Filter(func(m models.Movie) bool { return m.Year == year })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no movies from %d", ErrMovieNotFound, year)
	}
	return found, nil
}

// GetByGenre returns every movie tagged with genre, ignoring case.
func (s *MovieService) GetByGenre(genre string) ([]models.Movie, error) {
	found := s.movies.Filter(func(m models.Movie) bool { return m.HasGenre(genre) })
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no movies in genre %s", ErrMovieNotFound, genre)
	}
	return found, nil
}

// Add appends movie to the catalog.
func (s *MovieService) Add(movie models.Movie, actor string) (models.Movie, error) {
	if strings.TrimSpace(movie.Title) == "" {
		return models.Movie{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	s.movies.Append(movie)
	s.record("movie.create", fmt.Sprintf("Movie '%s' added", movie.Title), actor)
	return movie, nil
}

// Update merges patch into the first movie titled title.
func (s *MovieService) Update(title string, patch models.MoviePatch, actor string) (models.Movie, error) {
	movie, err := s.movies.Update(title, patch)
	if errors.Is(err, store.ErrNotFound) {
		return models.Movie{}, ErrMovieNotFound
	}
	if err != nil {
		return models.Movie{}, err
	}
	s.record("movie.update", fmt.Sprintf("Movie '%s' updated", title), actor)
	return movie, nil
}

// Delete removes the first movie titled title.
func (s *MovieService) Delete(title, actor string) error {
	if err := s.movies.Delete(title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	s.record("movie.delete", fmt.Sprintf("Movie '%s' deleted", title), actor)
	return nil
}

// Replace swaps the catalog contents and returns the new size.
func (s *MovieService) Replace(movies []models.Movie) int {
	s.movies.Replace(movies)
	if s.events != nil {
		msg := fmt.Sprintf("Catalog reloaded with %d movies", len(movies))
		if err := s.events.CreateEvent("catalog.refresh", "info", msg, nil); err != nil {
			log.Warn().Err(err).Msg("Failed to record catalog refresh event")
		}
	}
	return len(movies)
}

func (s *MovieService) record(eventType, message, actor string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, "info", message, &actor); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
