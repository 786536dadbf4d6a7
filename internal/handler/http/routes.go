package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(withKnownRoute(router), h.auth)

		r.Get("/api/user/me", h.me)
		r.Get("/api/user/storage", h.storageUsage)

		r.Route("/api/files", func(r chi.Router) {
			r.Post("/", h.uploadFile)
			r.Get("/", h.listFiles)
			r.Get("/{fileID}", h.getFile)
			r.Get("/{fileID}/content", h.downloadFile)
			r.Delete("/{fileID}", h.deleteFile)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
