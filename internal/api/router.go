package api

import (
	"net/http"
	"time"

	_ "fxconvert/docs"
	"fxconvert/internal/metrics"
	"fxconvert/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(instrument(m))
		r.Get("/rates/supported-currencies", rateHandler.GetSupportedCodes)
		r.Get("/rates/{base}", rateHandler.GetAllRates)
		r.Get("/rates/{source}/{target}", rateHandler.GetRate)
		r.Get("/convert/{source}/{target}", rateHandler.Convert)
	})
	return router
}

// instrument labels requests by route pattern so path parameters do not explode cardinality.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			pattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			elapsed := time.Since(start)
			m.HTTPRequest(pattern, r.Method, status, elapsed.Seconds())

			logrus.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"duration":   elapsed,
			}).Debug("HTTP request")
		})
	}
}
