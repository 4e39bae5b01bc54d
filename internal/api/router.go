package api

import (
	"log/slog"
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/hubertmaka/culinary-agent/internal/middleware"
	"github.com/hubertmaka/culinary-agent/internal/sentry"
)

const healthPath = "/health"

type RouterOptions struct {
	ServiceName    string
	Logger         *slog.Logger
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []netip.Prefix
	AllowedOrigins []string
}

func NewRouter(s *Server, opts RouterOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(otelchi.Middleware(opts.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != healthPath
		}),
	))

	metricCfg := otelchimetric.NewBaseConfig(opts.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(opts.Logger, healthPath))
	r.Use(sentry.HTTPMiddleware(WritePanic))

	r.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1/recipes", func(r chi.Router) {
		if opts.RateLimitRPS > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, opts.TrustedProxies, WriteTooManyRequests))
		}
		r.Post("/extract", s.HandleExtract)
		r.Post("/stream", s.HandleStream)
		r.Get("/stream/ws", s.HandleStreamWS)
	})

	return r
}
