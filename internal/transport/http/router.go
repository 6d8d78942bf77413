// Package httptransport assembles the public HTTP surface: middleware stack,
// credential and document routes, health, and metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	credentialhandler "selo/internal/credential/handler"
	"selo/internal/document"
	"selo/internal/platform/device"
	"selo/internal/platform/metrics"
	"selo/internal/platform/middleware"
	"selo/pkg/platform/httputil"
	"selo/pkg/platform/middleware/requesttime"
)

// Deps carries the handlers and cross-cutting collaborators the router mounts.
type Deps struct {
	Credentials *credentialhandler.Handler
	Documents   *document.Handler
	// TokenValidator guards credential generation when set; retrieval and
	// verification stay public so third parties can check presentations.
	TokenValidator middleware.TokenValidator
	Metrics        *metrics.Metrics
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(deps Deps, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(device.Middleware)
	r.Use(middleware.Logger(logger))
	if deps.Metrics != nil {
		r.Use(observeLatency(deps.Metrics))
	}

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Proof generation is slow; the generation group carries a much longer
	// timeout than the read side.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Minute))
		r.Use(middleware.ContentTypeJSON)
		if deps.TokenValidator != nil {
			r.Use(middleware.RequireAuth(deps.TokenValidator, logger))
		}
		r.Post("/credentials/generate", deps.Credentials.HandleGenerate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Post("/credentials/verify", deps.Credentials.HandleVerify)
		if deps.Documents != nil {
			deps.Documents.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/credentials/{wallet}/{field}", deps.Credentials.HandleRetrieve)
		r.Get("/credentials/{wallet}/{field}/qr", deps.Credentials.HandleRetrieveQR)
	})

	return r
}

// observeLatency records per-endpoint latency using the matched chi route
// pattern, so path parameters collapse into one series.
func observeLatency(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.EndpointLatency.WithLabelValues(r.Method + " " + pattern).Observe(time.Since(start).Seconds())
		})
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
