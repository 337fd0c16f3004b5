package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withTracing)
	router.Use(withCORS)
	router.Use(withGZip)
	router.Use(h.withBodyLimit)
	router.Use(h.withRateLimit)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/version", h.version)
	})

	// routes partitioned by the secret key
	router.Route("/sync", func(r chi.Router) {
		r.Use(h.secretKeyAuth)

		r.Get("/data", h.getData)
		r.Delete("/data", h.deleteData)
		r.Post("/push", h.push)
		r.Post("/pull", h.pull)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
