package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"advisor/internal/api/health"
	"advisor/internal/metrics"
)

// NewRouter assembles the REST routes, health probes, and the metrics
// endpoint behind the standard middleware chain.
func NewRouter(h *Handler, healthHandler *health.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))
	r.Use(metricsMiddleware)

	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/plans", h.ListPlans)
		r.Post("/planning/start", h.StartPlanning)
		r.Get("/planning/{sessionID}", h.GetPlanning)
		r.Post("/chat/{sessionID}", h.Chat)
		r.Get("/export/{sessionID}", h.ExportJSON)
		r.Get("/export/{sessionID}/pdf", h.ExportPDF)
		r.Get("/export/{sessionID}/docx", h.ExportDOCX)
	})

	return r
}

// metricsMiddleware records request counts and latency per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(ww.Status()), time.Since(start))
	})
}
