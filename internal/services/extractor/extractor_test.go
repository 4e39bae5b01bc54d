package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
	"github.com/hubertmaka/culinary-agent/internal/services/strategy"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*llm.Response)
	return resp, args.Error(1)
}

func (m *mockProvider) Name() string {
	return "mock"
}

const pastaJSON = `{"content":"Pasta","ingredients":[],"preparationTimeInMinutes":20,"aiEstimations":[]}`

func newTestExtractor(t *testing.T, p llm.Provider) *Extractor {
	t.Helper()
	converter, err := NewSchemaConverter()
	require.NoError(t, err)
	return New(p, "model-x", converter,
		strategy.NewTextStrategy(),
		strategy.NewImageStrategy(),
		strategy.NewURLStrategy(nil),
	)
}

func textInput() domain.RecipeInput {
	return domain.RecipeInput{Content: "Cook pasta for 20 minutes", Source: domain.SourceText, Language: domain.LanguageENUS}
}

func TestExtract_Success(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		if !req.JSON || req.Model != "model-x" || len(req.Messages) != 1 {
			return false
		}
		msg, ok := req.Messages[0].(llm.UserMessage)
		return ok && msg.Text == "Cook pasta for 20 minutes"
	})).Return(&llm.Response{
		Text:  pastaJSON,
		Usage: &llm.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		Model: "model-x",
	}, nil).Once()

	result, err := newTestExtractor(t, p).Extract(context.Background(), textInput())
	require.NoError(t, err)

	assert.Equal(t, "Pasta", result.Schema.Content)
	assert.Equal(t, 20, result.Schema.PreparationTimeMinutes)
	assert.Empty(t, result.Schema.Ingredients)
	assert.Equal(t, domain.UsageMetadata{InputTokens: 10, OutputTokens: 20, TotalTokens: 30, ModelID: "model-x"}, result.Metadata)
	p.AssertExpectations(t)
}

func TestExtract_SystemPromptCarriesSchema(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.System, "preparationTimeInMinutes") &&
			strings.Contains(req.System, "aiEstimations")
	})).Return(&llm.Response{Text: pastaJSON, Usage: &llm.Usage{}, Model: "m"}, nil)

	_, err := newTestExtractor(t, p).Extract(context.Background(), textInput())
	require.NoError(t, err)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name     string
		resp     *llm.Response
		err      error
		wantType apperrors.ErrorType
		wantMsg  string
	}{
		{
			name:     "no response",
			wantType: apperrors.ErrorTypeRecipeExtraction,
			wantMsg:  "response missing",
		},
		{
			name:     "no usage metadata",
			resp:     &llm.Response{Text: pastaJSON, Model: "model-x"},
			wantType: apperrors.ErrorTypeRecipeExtraction,
			wantMsg:  "metadata missing",
		},
		{
			name:     "unparseable body",
			resp:     &llm.Response{Text: "Sorry, I cannot help with that.", Usage: &llm.Usage{TotalTokens: 1}},
			wantType: apperrors.ErrorTypeRecipeExtraction,
			wantMsg:  "schema missing",
		},
		{
			name:     "empty body",
			resp:     &llm.Response{Text: "  ", Usage: &llm.Usage{}},
			wantType: apperrors.ErrorTypeRecipeExtraction,
			wantMsg:  "schema missing",
		},
		{
			name:     "model error",
			err:      errors.New("connection reset"),
			wantType: apperrors.ErrorTypeRecipeExtraction,
			wantMsg:  "model call failed",
		},
		{
			name:     "wrong shape",
			resp:     &llm.Response{Text: `{"title":"Pasta"}`, Usage: &llm.Usage{}},
			wantType: apperrors.ErrorTypeUnsupportedSchema,
		},
		{
			name:     "out of bounds",
			resp:     &llm.Response{Text: `{"content":"Pasta","ingredients":[],"preparationTimeInMinutes":10081,"aiEstimations":[]}`, Usage: &llm.Usage{}},
			wantType: apperrors.ErrorTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(mockProvider)
			p.On("Generate", mock.Anything, mock.Anything).Return(tt.resp, tt.err).Once()

			_, err := newTestExtractor(t, p).Extract(context.Background(), textInput())
			require.Error(t, err)

			appErr, ok := apperrors.As(err)
			require.True(t, ok, "expected AppError, got %T", err)
			assert.Equal(t, tt.wantType, appErr.Type)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, appErr.Message)
			}
		})
	}
}

func TestExtract_UnsupportedSourceSkipsModel(t *testing.T) {
	p := new(mockProvider)

	in := textInput()
	in.Source = "FAX"
	_, err := newTestExtractor(t, p).Extract(context.Background(), in)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedSchema)
	p.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestExtract_ImageInput(t *testing.T) {
	p := new(mockProvider)
	p.On("Generate", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		msg, ok := req.Messages[0].(llm.UserMessage)
		return ok && len(msg.Media) == 1 && string(msg.Media[0].Data) == "hello"
	})).Return(&llm.Response{Text: pastaJSON, Usage: &llm.Usage{}, Model: "m"}, nil).Once()

	_, err := newTestExtractor(t, p).Extract(context.Background(), domain.RecipeInput{
		Content:    "data:image/png;base64,aGVsbG8=",
		Source:     domain.SourceImage,
		FileFormat: domain.FileFormatPNG,
		Language:   domain.LanguagePL,
	})
	require.NoError(t, err)
	p.AssertExpectations(t)
}

func TestSupportedSources(t *testing.T) {
	assert.ElementsMatch(t, domain.Sources(), SupportedSources())
}
