package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/movie-catalog-be/internal/api"
	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/catalog"
	"github.com/isdelr/movie-catalog-be/internal/config"
	"github.com/isdelr/movie-catalog-be/internal/logger"
	"github.com/isdelr/movie-catalog-be/internal/models"
	"github.com/isdelr/movie-catalog-be/internal/monitoring"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/isdelr/movie-catalog-be/internal/store"
	"github.com/isdelr/movie-catalog-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)

	if cfg.UsesPlaceholderSecret() {
		log.Warn().Msg("JWT_SECRET is not set, using the development placeholder secret")
	}

	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTAlgorithm, auth.WithDefaultTTL(cfg.DefaultTokenTTL))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Load the initial catalog; an unreachable source means an empty catalog.
	source := catalog.NewSource(cfg.MoviesSourceURL, 30*time.Second)
	var initial []models.Movie
	if cfg.MoviesSourceURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		initial, err = source.Fetch(ctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.MoviesSourceURL).Msg("Failed to load movie catalog, starting empty")
		} else {
			log.Info().Int("movies", len(initial)).Msg("Movie catalog loaded")
		}
	}

	// Set up services
	eventService := services.NewEventService(cfg.EventHistory, hub)
	userService := services.NewUserService(store.NewAccountStore(), auth.NewBcryptHasher(cfg.BcryptCost), tokens, eventService, cfg.AccessTokenTTL)
	movieService := services.NewMovieService(store.NewMovieStore(initial), eventService)

	// Optional background catalog refresh
	var scheduler *monitoring.Scheduler
	if cfg.CatalogRefresh != "" && cfg.MoviesSourceURL != "" {
		scheduler, err = monitoring.NewScheduler(cfg.CatalogRefresh, source, movieService, eventService)
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.CatalogRefresh).Msg("Failed to configure catalog refresh")
		}
		go scheduler.Run()
	}

	// Set up router
	router := api.NewRouter(hub, userService, movieService, eventService, cfg.CORSAllowedOrigins)

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}
