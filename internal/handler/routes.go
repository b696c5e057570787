package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes собирает роутер со всеми эндпоинтами API.
func (h *Handler) Routes(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}
	r.Use(Authenticate(h.auth, h.logger))

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/search", h.Search)

	r.Route("/photos", func(r chi.Router) {
		r.Get("/", h.ListPhotos)
		r.Post("/", h.UploadPhoto)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.ViewPhoto)
			r.Put("/", h.EditPhoto)
			r.Delete("/", h.DeletePhoto)
			r.Get("/source", h.PhotoSource)
			r.Post("/ratings", h.RatePhoto)
			r.Post("/comments", h.CommentPhoto)
		})
	})
	r.Delete("/comments/{id}", h.DeleteComment)

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", h.ListTags)
		r.Post("/", h.AddTag)
		r.Delete("/{id}", h.DeleteTag)
		r.Get("/{id}/photos", h.TagPhotos)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", h.ListProfiles)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.ViewProfile)
			r.Put("/", h.EditUser)
			r.Delete("/", h.DeleteProfile)
			r.Put("/data", h.EditUserdata)
		})
	})

	return r
}
