package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method", "route"},
	)

	// CompletionCalls counts upstream calls made while generating a quiz,
	// labelled by how the returned text fared.
	CompletionCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_completion_calls_total",
			Help: "Upstream completion calls made by quiz generation",
		},
		[]string{"outcome"},
	)

	QuizzesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_generations_total",
			Help: "Quiz generation requests by result",
		},
		[]string{"result"},
	)

	AttemptsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_submitted_total",
			Help: "Quiz attempts scored and stored",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(CompletionCalls)
		prometheus.MustRegister(QuizzesGenerated)
		prometheus.MustRegister(AttemptsSubmitted)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
