package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
)

const schemaResource = "recipe-schema.json"

// SchemaConverter turns raw model output into a RecipeSchema. The JSON Schema
// it checks against is reflected from domain.RecipeSchema, so the prompt and
// the check can never drift apart.
type SchemaConverter struct {
	format   string
	compiled *validator.Schema
}

func NewSchemaConverter() (*SchemaConverter, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := r.Reflect(&domain.RecipeSchema{})

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal recipe schema: %w", err)
	}

	compiler := validator.NewCompiler()
	if err := compiler.AddResource(schemaResource, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("add recipe schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile recipe schema: %w", err)
	}

	return &SchemaConverter{format: string(raw), compiled: compiled}, nil
}

// Format is the JSON Schema text given to the model.
func (c *SchemaConverter) Format() string {
	return c.format
}

// Convert parses raw model output. Empty or malformed JSON is an extraction
// failure, JSON of the wrong shape is an unsupported schema, and values out
// of bounds are a validation failure.
func (c *SchemaConverter) Convert(raw string) (domain.RecipeSchema, error) {
	raw = stripCodeFence(raw)
	if raw == "" || !gjson.Valid(raw) {
		return domain.RecipeSchema{}, apperrors.NewRecipeExtractionError("schema missing", "SCHEMA_MISSING", nil)
	}

	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.Null {
		return domain.RecipeSchema{}, apperrors.NewRecipeExtractionError("schema missing", "SCHEMA_MISSING", nil)
	}
	if !parsed.IsObject() {
		return domain.RecipeSchema{}, apperrors.NewUnsupportedSchemaError("model output is not a recipe object", "SCHEMA_MISMATCH", nil)
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domain.RecipeSchema{}, apperrors.NewRecipeExtractionError("schema missing", "SCHEMA_MISSING", err)
	}
	if err := c.compiled.Validate(doc); err != nil {
		return domain.RecipeSchema{}, apperrors.NewUnsupportedSchemaError("model output does not match the recipe schema", "SCHEMA_MISMATCH", err)
	}

	var s domain.RecipeSchema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.RecipeSchema{}, apperrors.NewUnsupportedSchemaError("model output does not match the recipe schema", "SCHEMA_MISMATCH", err)
	}

	return domain.NewRecipeSchema(s.Content, s.Ingredients, s.PreparationTimeMinutes, s.AIEstimations)
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```")
	if nl := strings.IndexByte(raw, '\n'); nl >= 0 {
		raw = raw[nl+1:]
	} else {
		raw = ""
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
