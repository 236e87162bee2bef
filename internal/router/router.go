package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/attempt"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/auth"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/metrics"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/middlewares"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/tutor"
)

type RouterConfig struct {
	AIQuizHandler  *aiquiz.Handler
	AttemptHandler *attempt.Handler
	TutorHandler   *tutor.Handler
	Health         func(r *http.Request) error
	AllowedOrigins []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))
	r.Use(middlewares.Metrics)

	r.Get("/healthz", healthz(cfg.Health))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Mount("/ai", tutor.Routes(cfg.TutorHandler))

		r.Route("/ai-quiz", func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Group(attempt.Routes(cfg.AttemptHandler))
			r.Group(aiquiz.Routes(cfg.AIQuizHandler))
		})
	})
	return r
}

func healthz(check func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r); err != nil {
				config.WithContext(r.Context()).WithError(err).Error("Health check failed")
				config.Error(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
