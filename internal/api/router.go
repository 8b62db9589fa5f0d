package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/socialchef/sous/internal/middleware"
	"github.com/socialchef/sous/internal/sentry"
)

// NewRouter wires the handlers behind tracing, metrics, CORS, request ID and
// panic capture.
func NewRouter(s *Server, serviceName string) http.Handler {
	r := chi.NewRouter()

	r.Use(sentry.HTTPMiddleware)
	r.Use(otelchi.Middleware(serviceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(serviceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.Use(middleware.RequestID)

	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleIndex)
	r.Post("/", s.HandleSubmit)
	r.Post("/api/ingredients", s.HandleIngredients)

	return r
}
