package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/comments"
	"github.com/user/scribe-go/config"
	"github.com/user/scribe-go/posts"
)

// newRouter assembles the chi router: global middleware, the authentication
// gate, and all routes. The gate runs on every request; the classifier
// inside it keeps the read surface and the session-bootstrap endpoints
// public.
func newRouter(
	cfg *config.AppConfig,
	authHandlers *auth.Handlers,
	postHandler *posts.Handler,
	commentHandler *comments.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(auth.Gate(cfg.Auth))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Hello, World!"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.List)
		r.Post("/", postHandler.Create)
		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", postHandler.Get)
			r.Put("/", postHandler.Update)
			r.Delete("/", postHandler.Delete)
			r.Route("/comments", func(r chi.Router) {
				r.Get("/", commentHandler.ListForPost)
				r.Post("/", commentHandler.Create)
				r.Route("/{commentID}", func(r chi.Router) {
					r.Put("/", commentHandler.Update)
					r.Delete("/", commentHandler.Delete)
				})
			})
		})
	})

	return r
}
