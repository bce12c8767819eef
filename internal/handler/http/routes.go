package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/tree", func(r chi.Router) {
			r.Get("/", h.getTree)
			r.Put("/", h.replaceTree)
			r.Get("/*", h.getTreePath)
			r.Put("/*", h.setTreePath)
			r.Delete("/*", h.deleteTreePath)
		})

		r.Route("/sync", func(r chi.Router) {
			r.Get("/status", h.syncStatus)
			r.Put("/config", h.configure)
			r.Post("/load", h.load)
			r.Post("/notify", h.notify)
			r.Post("/reset", h.reset)
			r.Post("/catchup", h.catchUp)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))
	router.NotFound(h.notFound)

	return router
}
