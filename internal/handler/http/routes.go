package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	router.Get("/metrics", h.metrics.Handler().ServeHTTP)

	router.Route("/api", func(r chi.Router) {
		r.Use(h.rateLimit)

		r.Get("/version", h.wrap(h.getServerVersion))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.wrap(h.register))
			r.Post("/login", h.wrap(h.login))
			r.With(h.auth).Post("/logout", h.wrap(h.logout))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.wrap(h.listItems))
			r.Get("/{id}", h.wrap(h.getItem))

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Post("/", h.wrap(h.createItem))
				r.Put("/{id}", h.wrap(h.updateItem))
				r.Delete("/{id}", h.wrap(h.deleteItem))
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/profile", h.wrap(h.getProfile))
			r.Put("/profile", h.wrap(h.updateProfile))
			r.Get("/items", h.wrap(h.listUserItems))
		})
	})

	return router
}
