package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/hubertmaka/culinary-agent/internal/api"
	"github.com/hubertmaka/culinary-agent/internal/config"
	"github.com/hubertmaka/culinary-agent/internal/httpclient"
	"github.com/hubertmaka/culinary-agent/internal/logger"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
	"github.com/hubertmaka/culinary-agent/internal/sentry"
	"github.com/hubertmaka/culinary-agent/internal/services/chat"
	"github.com/hubertmaka/culinary-agent/internal/services/extractor"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
	"github.com/hubertmaka/culinary-agent/internal/services/speech"
	"github.com/hubertmaka/culinary-agent/internal/services/strategy"
	"github.com/hubertmaka/culinary-agent/internal/services/stream"
	"github.com/hubertmaka/culinary-agent/internal/telemetry"
)

func main() {
	defer sentry.Recover()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, telemetry.Options{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Env:            cfg.Env,
			Endpoint:       cfg.OtelExporterOTLPEndpoint,
			Headers:        cfg.OTLPHeaders(),
		})
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init sentry", "error", err)
	}
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	appLogger := logger.New(cfg.Env)
	slog.SetDefault(appLogger)

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create model provider: %v", err)
	}

	converter, err := extractor.NewSchemaConverter()
	if err != nil {
		log.Fatalf("Failed to build recipe schema: %v", err)
	}

	fetchClient := httpclient.NewBrowserClient(cfg.Fetch.UserAgent, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
	recipeExtractor := extractor.New(provider, cfg.Agent.ExtractorModel, converter,
		strategy.NewTextStrategy(),
		strategy.NewImageStrategy(),
		strategy.NewURLStrategy(fetchClient),
	)

	chatService := chat.NewService(provider, cfg.Agent.ChatModel, cfg.Agent.ChatInstruction)
	voice := speech.NewElevenLabsClient(cfg.ElevenLabsKey, cfg.Speech, httpclient.InstrumentedClient)
	composer := stream.NewComposer(voice)

	router := api.NewRouter(api.NewServer(recipeExtractor, chatService, composer), api.RouterOptions{
		ServiceName:    cfg.ServiceName,
		Logger:         appLogger,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server",
			"port", cfg.Port,
			"provider", provider.Name(),
			"extractor_model", cfg.Agent.ExtractorModel,
			"chat_model", cfg.Agent.ChatModel,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
