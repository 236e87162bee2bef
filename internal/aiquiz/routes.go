package aiquiz

import "github.com/go-chi/chi/v5"

// Routes registers the generation endpoints on a router that already
// enforces authentication.
func Routes(h *Handler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Post("/generate", h.Generate)
		r.Get("/{lessonId}", h.GetByLesson)
	}
}
