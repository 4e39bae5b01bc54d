package domain

// MaxPreparationMinutes is one week in minutes.
const MaxPreparationMinutes = 60 * 24 * 7

// Ingredient is a single ingredient line of a recipe.
type Ingredient struct {
	Name string `json:"ingredient" jsonschema:"description=Ingredient name with quantity and unit" validate:"notblank,max=255"`
}

// Estimation holds what the model inferred beyond the source text.
type Estimation struct {
	AdditionalIngredients           []Ingredient `json:"additionalIngredients" jsonschema:"description=Ingredients likely needed but not mentioned" validate:"dive"`
	EstimatedPreparationTimeMinutes int          `json:"estimatedPreparationTimeMinutes" jsonschema:"description=Estimated preparation time in minutes" validate:"min=0,max=10080"`
}

// RecipeSchema is the structured recipe produced by extraction.
type RecipeSchema struct {
	Content                string       `json:"content" jsonschema:"description=Recipe steps and description as plain text" validate:"notblank,max=20000"`
	Ingredients            []Ingredient `json:"ingredients" jsonschema:"description=Ingredients in the order they appear" validate:"dive"`
	PreparationTimeMinutes int          `json:"preparationTimeInMinutes" jsonschema:"description=Total preparation time in minutes" validate:"min=0,max=10080"`
	AIEstimations          []Estimation `json:"aiEstimations" jsonschema:"description=Model estimations for missing information" validate:"dive"`
}

// NewRecipeSchema builds a RecipeSchema and rejects out-of-bound values.
func NewRecipeSchema(content string, ingredients []Ingredient, preparationMinutes int, estimations []Estimation) (RecipeSchema, error) {
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	if estimations == nil {
		estimations = []Estimation{}
	}
	s := RecipeSchema{
		Content:                content,
		Ingredients:            ingredients,
		PreparationTimeMinutes: preparationMinutes,
		AIEstimations:          estimations,
	}
	if err := s.Validate(); err != nil {
		return RecipeSchema{}, err
	}
	return s, nil
}

// Validate checks every declared bound of the schema.
func (s RecipeSchema) Validate() error {
	return check(s)
}

// UsageMetadata is the token accounting for a single model call.
type UsageMetadata struct {
	InputTokens  int    `json:"inputTokens" validate:"min=0"`
	OutputTokens int    `json:"outputTokens" validate:"min=0"`
	TotalTokens  int    `json:"totalTokens" validate:"min=0"`
	ModelID      string `json:"model" validate:"max=255"`
}

// NewUsageMetadata builds a UsageMetadata and rejects negative counts.
func NewUsageMetadata(inputTokens, outputTokens, totalTokens int, modelID string) (UsageMetadata, error) {
	m := UsageMetadata{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  totalTokens,
		ModelID:      modelID,
	}
	if err := check(m); err != nil {
		return UsageMetadata{}, err
	}
	return m, nil
}

// RecipeSchemaResult pairs an extracted schema with the usage of the call
// that produced it.
type RecipeSchemaResult struct {
	Schema   RecipeSchema  `json:"recipeSchema"`
	Metadata UsageMetadata `json:"metadata"`
}
