// Package ops exposes the bot's operational HTTP surface: a health check
// for process supervisors and the Prometheus metrics endpoint. It runs on
// its own port, next to (not part of) the Telegram polling loop.
package ops

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evyataryagoni/ipmapbot/internal/logger"
)

// NewRouter creates the ops router
//
// Routes:
//   - GET /health  -> 200 "OK"
//   - GET /metrics -> Prometheus exposition
func NewRouter(log *logger.Logger) chi.Router {
	if log == nil {
		log = logger.NewDefault()
	}

	r := chi.NewRouter()

	// Order matters: RequestID first so the logger can pick it up
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log.WithComponent("ops")))
	r.Use(middleware.Recoverer)

	r.Get("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// healthCheckHandler returns 200 OK while the process is up
// Liveness only - it does not probe Telegram or the geo provider
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// requestLogger logs each ops request with structured fields
func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logEvent := log.Info()
			if ww.Status() >= 500 {
				logEvent = log.Error()
			}
			logEvent.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration_ms", time.Since(start)).
				Msg("Ops request completed")
		})
	}
}
