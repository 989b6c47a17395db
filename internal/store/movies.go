package store

import (
	"sync"

	"github.com/isdelr/movie-catalog-be/internal/models"
)

// MovieStore is an ordered in-memory movie catalog. Title lookups are
// case-sensitive and resolve to the first matching entry.
type MovieStore struct {
	mu     sync.RWMutex
	movies []models.Movie
}

// NewMovieStore creates a store seeded with movies.
func NewMovieStore(movies []models.Movie) *MovieStore {
	s := &MovieStore{}
	s.Replace(movies)
	return s
}

// Replace swaps the whole catalog.
func (s *MovieStore) Replace(movies []models.Movie) {
	cp := make([]models.Movie, len(movies))
	copy(cp, movies)

	s.mu.Lock()
	s.movies = cp
	s.mu.Unlock()
}

// Find returns the first movie titled title.
func (s *MovieStore) Find(title string) (models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(title); i >= 0 {
		return s.movies[i], nil
	}
	return models.Movie{}, ErrNotFound
}

// Filter returns every movie for which match is true, in catalog order.
func (s *MovieStore) Filter(match func(models.Movie) bool) []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []models.Movie
	for _, m := range s.movies {
		if match(m) {
			found = append(found, m)
		}
	}
	return found
}

// Append adds a movie at the end of the catalog.
func (s *MovieStore) Append(movie models.Movie) {
	s.mu.Lock()
	s.movies = append(s.movies, movie)
	s.mu.Unlock()
}

// Update applies patch to the first movie titled title.
func (s *MovieStore) Update(title string, patch models.MoviePatch) (models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(title)
	if i < 0 {
		return models.Movie{}, ErrNotFound
	}
	patch.Apply(&s.movies[i])
	return s.movies[i], nil
}

// Delete removes the first movie titled title.
func (s *MovieStore) Delete(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(title)
	if i < 0 {
		return ErrNotFound
	}
	s.movies = append(s.movies[:i], s.movies[i+1:]...)
	return nil
}

// Len returns the catalog size.
func (s *MovieStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

func (s *MovieStore) indexOf(title string) int {
	for i := range s.movies {
		if s.movies[i].Title == title {
			return i
		}
	}
	return -1
}
