package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	meter = otel.Meter("culinary-agent/business")

	// Extraction metrics
	RecipeExtractionsTotal   metric.Int64Counter
	RecipeExtractionDuration metric.Float64Histogram

	// Chat metrics
	RecipeChatsTotal metric.Int64Counter

	// Speech metrics
	SpeechFramesTotal metric.Int64Counter

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter
	ExternalAPIDuration   metric.Float64Histogram
)

func Init() error {
	var err error

	RecipeExtractionsTotal, err = meter.Int64Counter(
		"recipe.extractions.total",
		metric.WithDescription("Total number of recipe extractions"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	RecipeExtractionDuration, err = meter.Float64Histogram(
		"recipe.extraction.duration",
		metric.WithDescription("Duration of recipe extraction"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	RecipeChatsTotal, err = meter.Int64Counter(
		"recipe.chats.total",
		metric.WithDescription("Total number of recipe chat turns"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	SpeechFramesTotal, err = meter.Int64Counter(
		"speech.frames.total",
		metric.WithDescription("Total number of audio frames streamed to clients"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	return nil
}

// The Record helpers are no-ops until Init has run.

func RecordExtraction(ctx context.Context, source, status string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("source", source), attribute.String("status", status))
	if RecipeExtractionsTotal != nil {
		RecipeExtractionsTotal.Add(ctx, 1, attrs)
	}
	if RecipeExtractionDuration != nil {
		RecipeExtractionDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

func RecordChat(ctx context.Context, status string) {
	if RecipeChatsTotal != nil {
		RecipeChatsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func RecordSpeechFrame(ctx context.Context, voice string) {
	if SpeechFramesTotal != nil {
		SpeechFramesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("voice", voice)))
	}
}

func RecordExternalAPICall(ctx context.Context, provider string, started time.Time) {
	attrs := metric.WithAttributes(attribute.String("provider", provider))
	if ExternalAPIDuration != nil {
		ExternalAPIDuration.Record(ctx, time.Since(started).Seconds(), attrs)
	}
	if ExternalAPICallsTotal != nil {
		ExternalAPICallsTotal.Add(ctx, 1, attrs)
	}
}

// Status maps an error to the status attribute value.
func Status(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}
