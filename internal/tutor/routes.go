package tutor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/summarize", h.Summarize)
	r.Post("/ask", h.Ask)
	return r
}
