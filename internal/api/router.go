package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/movie-catalog-be/internal/api/handlers"
	"github.com/isdelr/movie-catalog-be/internal/auth"
	"github.com/isdelr/movie-catalog-be/internal/services"
	"github.com/isdelr/movie-catalog-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, userService services.UserServiceProvider, movieService services.MovieServiceProvider, eventService services.EventServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	systemHandler := handlers.NewSystemHandler()
	userHandler := handlers.NewUserHandler(userService)
	movieHandler := handlers.NewMovieHandler(movieService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub, allowedOrigins)

	requireActive := auth.Middleware(userService)

	r.Get("/", systemHandler.Home)
	r.Get("/health", systemHandler.Health)

	r.Post("/token", userHandler.Token)
	r.Post("/register", userHandler.Register)

	r.Route("/users/me", func(r chi.Router) {
		r.Use(requireActive)
		r.Get("/", userHandler.GetMe)
		r.Post("/deactivate", userHandler.Deactivate)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/title/{title}", movieHandler.GetByTitle)
		r.Get("/year/{year}", movieHandler.GetByYear)
		r.Get("/genre/{genre}", movieHandler.GetByGenre)

		// Mutations require an authenticated, active account.
		r.Group(func(r chi.Router) {
			r.Use(requireActive)
			r.Post("/", movieHandler.Create)
			r.Put("/{title}", movieHandler.Update)
			r.Delete("/{title}", movieHandler.Delete)
		})
	})

	// Events name accounts, so the feed is only for signed-in users.
	r.Group(func(r chi.Router) {
		r.Use(requireActive)
		r.Get("/events", eventHandler.GetRecent)
		r.Get("/ws", wsHandler.Serve)
	})

	return r
}
