package extractor

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/logger"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
	"github.com/hubertmaka/culinary-agent/internal/services/ai"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
	"github.com/hubertmaka/culinary-agent/internal/services/strategy"
	"github.com/hubertmaka/culinary-agent/internal/telemetry"
)

var tracer = telemetry.Tracer("culinary-agent/extractor")

// SupportedSources is the set of source kinds the extractor accepts.
func SupportedSources() []domain.Source {
	return []domain.Source{domain.SourceImage, domain.SourceText, domain.SourceURL}
}

type Extractor struct {
	provider   llm.Provider
	model      string
	dispatcher *strategy.Dispatcher
	converter  *SchemaConverter
}

func New(provider llm.Provider, model string, converter *SchemaConverter, strategies ...strategy.Strategy) *Extractor {
	return &Extractor{
		provider:   provider,
		model:      model,
		dispatcher: strategy.NewDispatcher(SupportedSources(), strategies...),
		converter:  converter,
	}
}

// Extract turns one recipe input into a validated schema with the usage of
// the single model call it took.
func (e *Extractor) Extract(ctx context.Context, in domain.RecipeInput) (result domain.RecipeSchemaResult, err error) {
	ctx, span := tracer.Start(ctx, "recipe.extract")
	span.SetAttributes(attribute.String("recipe.source", string(in.Source)))
	start := time.Now()
	log := logger.FromContext(ctx).With("source", in.Source)

	defer func() {
		metrics.RecordExtraction(ctx, string(in.Source), metrics.Status(err), time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	s, err := e.dispatcher.Resolve(in.Source)
	if err != nil {
		return domain.RecipeSchemaResult{}, err
	}

	msg, err := s.CreateMessage(ctx, in)
	if err != nil {
		return domain.RecipeSchemaResult{}, err
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		Model:    e.model,
		System:   ai.BuildExtractorPrompt(in.Source, e.converter.Format()),
		Messages: []llm.Message{msg},
		JSON:     true,
	})
	if err != nil {
		log.Error("Extraction model call failed", "provider", e.provider.Name(), "error", err)
		return domain.RecipeSchemaResult{}, apperrors.NewRecipeExtractionError("model call failed", "MODEL_CALL_FAILED", err)
	}
	if resp == nil {
		return domain.RecipeSchemaResult{}, apperrors.NewRecipeExtractionError("response missing", "RESPONSE_MISSING", nil)
	}
	if resp.Usage == nil {
		return domain.RecipeSchemaResult{}, apperrors.NewRecipeExtractionError("metadata missing", "METADATA_MISSING", nil)
	}

	usage, err := domain.NewUsageMetadata(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens, resp.Model)
	if err != nil {
		return domain.RecipeSchemaResult{}, err
	}

	schema, err := e.converter.Convert(resp.Text)
	if err != nil {
		return domain.RecipeSchemaResult{}, err
	}

	log.Info("Recipe extracted",
		"ingredients", len(schema.Ingredients),
		"total_tokens", usage.TotalTokens,
		"model", usage.ModelID,
	)
	return domain.RecipeSchemaResult{Schema: schema, Metadata: usage}, nil
}
