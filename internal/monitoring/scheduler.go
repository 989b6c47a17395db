package monitoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CatalogFetcher loads a full movie catalog.
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]models.Movie, error)
}

// Scheduler re-fetches the movie catalog on a cron schedule.
type Scheduler struct {
	source   CatalogFetcher
	movieSvc services.MovieServiceProvider
	eventSvc services.EventServiceProvider
	schedule cron.Schedule
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu      sync.Mutex
	nextRun time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler for a standard five-field cron expression.
func NewScheduler(expression string, source CatalogFetcher, movieSvc services.MovieServiceProvider, eventSvc services.EventServiceProvider) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	s := &Scheduler{
		source:   source,
		movieSvc: movieSvc,
		eventSvc: eventSvc,
		schedule: schedule,
		interval: time.Minute,
		timeout:  30 * time.Second,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	s.nextRun = schedule.Next(s.now())
	return s, nil
}

// NextRun returns when the next refresh is due.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// Run starts the scheduler's ticking loop.
func (s *Scheduler) Run() {
	log.Info().Time("next_run", s.NextRun()).Msg("Starting catalog refresh scheduler")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping catalog refresh scheduler")
			return
		case <-ticker.C:
			s.checkAndRun()
		}
	}
}

// Stop halts the scheduler.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// checkAndRun refreshes the catalog once the next run time has passed.
func (s *Scheduler) checkAndRun() {
	now := s.now()

	s.mu.Lock()
	due := !now.Before(s.nextRun)
	if due {
		s.nextRun = s.schedule.Next(now)
	}
	s.mu.Unlock()

	if !due {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Scheduled catalog refresh failed")
	}
}

// Refresh fetches the catalog and replaces the current one. A failed fetch
// leaves the existing catalog untouched.
func (s *Scheduler) Refresh(ctx context.Context) error {
	movies, err := s.source.Fetch(ctx)
	if err != nil {
		msg := fmt.Sprintf("Catalog refresh failed: %v", err)
		if evErr := s.eventSvc.CreateEvent("catalog.refresh.fail", "error", msg, nil); evErr != nil {
			log.Warn().Err(evErr).Msg("Failed to record event")
		}
		return err
	}
	n := s.movieSvc.Replace(movies)
	log.Info().Int("movies", n).Msg("Catalog refreshed")
	return nil
}
