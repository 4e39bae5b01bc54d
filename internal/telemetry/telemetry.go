package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Options configures the OTLP exporters.
type Options struct {
	ServiceName    string
	ServiceVersion string
	Env            string
	Endpoint       string
	Headers        map[string]string
}

// endpoint is an OTLP collector address split into the parts the HTTP
// exporters take separately.
type endpoint struct {
	host       string
	insecure   bool
	tracePath  string
	logPath    string
	metricPath string
}

func parseEndpoint(raw string) endpoint {
	ep := endpoint{host: raw}
	basePath := ""

	if ep.host != "" {
		if strings.HasPrefix(ep.host, "https://") {
			ep.host = strings.TrimPrefix(ep.host, "https://")
		} else if strings.HasPrefix(ep.host, "http://") {
			ep.host = strings.TrimPrefix(ep.host, "http://")
			ep.insecure = true
		}

		if idx := strings.Index(ep.host, "/"); idx > 0 {
			basePath = ep.host[idx:]
			ep.host = ep.host[:idx]
		}
	}

	basePath = strings.TrimSuffix(basePath, "/v1/traces")
	basePath = strings.TrimSuffix(basePath, "/v1/logs")
	basePath = strings.TrimSuffix(basePath, "/v1/metrics")
	basePath = strings.TrimSuffix(basePath, "/")

	ep.tracePath = basePath + "/v1/traces"
	ep.logPath = basePath + "/v1/logs"
	ep.metricPath = basePath + "/v1/metrics"
	return ep
}

// InitTelemetry initializes OpenTelemetry traces, logs and metrics with OTLP
// HTTP exporters. Returns shutdown function and error.
func InitTelemetry(ctx context.Context, opts Options) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(opts.ServiceName),
			semconv.ServiceVersionKey.String(opts.ServiceVersion),
			semconv.DeploymentEnvironmentKey.String(opts.Env),
		),
	)
	if err != nil {
		return nil, err
	}

	ep := parseEndpoint(opts.Endpoint)

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithURLPath(ep.tracePath)}
	logOpts := []otlploghttp.Option{otlploghttp.WithURLPath(ep.logPath)}
	metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithURLPath(ep.metricPath)}
	if ep.host != "" {
		traceOpts = append(traceOpts, otlptracehttp.WithEndpoint(ep.host))
		logOpts = append(logOpts, otlploghttp.WithEndpoint(ep.host))
		metricOpts = append(metricOpts, otlpmetrichttp.WithEndpoint(ep.host))
	}
	if len(opts.Headers) > 0 {
		traceOpts = append(traceOpts, otlptracehttp.WithHeaders(opts.Headers))
		logOpts = append(logOpts, otlploghttp.WithHeaders(opts.Headers))
		metricOpts = append(metricOpts, otlpmetrichttp.WithHeaders(opts.Headers))
	}
	if ep.insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
		logOpts = append(logOpts, otlploghttp.WithInsecure())
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}

	traceExporter, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return nil, err
	}

	logExporter, err := otlploghttp.New(ctx, logOpts...)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	slog.Info("Telemetry initialized",
		"endpoint", ep.host,
		"trace_path", ep.tracePath,
		"insecure", ep.insecure,
	)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), lp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// Tracer returns a tracer with the given name
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
