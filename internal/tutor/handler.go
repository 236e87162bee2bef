package tutor

import (
	"net/http"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/apperr"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type SummarizeRequest struct {
	LessonContent string `json:"lessonContent"`
}

type AskRequest struct {
	Question string `json:"question"`
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req SummarizeRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "Lesson content is required.")
		return
	}

	summary, err := h.service.Summarize(r.Context(), req.LessonContent)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).Error("Failed to summarize lesson")
		}
		config.Error(w, status, apperr.PublicMessage(err, "Failed to summarize lesson."))
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req AskRequest
	if err := config.DecodeJSON(r, &req); err != nil {
		config.Error(w, http.StatusBadRequest, "Question is required")
		return
	}

	answer, err := h.service.Ask(r.Context(), req.Question)
	if err != nil {
		status := apperr.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.WithError(err).Error("Failed to answer question")
		}
		config.Error(w, status, apperr.PublicMessage(err, "Failed to get AI response"))
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"answer": answer})
}
