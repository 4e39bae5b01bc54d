package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
)

func TestNewRecipeSchema_PreparationTimeBounds(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		wantErr bool
	}{
		{"zero", 0, false},
		{"one week", MaxPreparationMinutes, false},
		{"over one week", MaxPreparationMinutes + 1, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewRecipeSchema("Boil water", nil, tt.minutes, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "preparationTimeInMinutes")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, s.PreparationTimeMinutes)
		})
	}
}

func TestNewRecipeSchema_RejectsBlankContent(t *testing.T) {
	_, err := NewRecipeSchema("   ", nil, 10, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewRecipeSchema_ValidatesNestedValues(t *testing.T) {
	_, err := NewRecipeSchema("Soup", []Ingredient{{Name: ""}}, 10, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingredients[0].ingredient")

	_, err = NewRecipeSchema("Soup", nil, 10, []Estimation{{EstimatedPreparationTimeMinutes: 20000}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "estimatedPreparationTimeMinutes")

	_, err = NewRecipeSchema("Soup", []Ingredient{{Name: strings.Repeat("a", 256)}}, 10, nil)
	require.Error(t, err)
}

func TestRecipeSchema_JSONFieldNames(t *testing.T) {
	s, err := NewRecipeSchema("Pasta", []Ingredient{{Name: "200 g spaghetti"}}, 20, nil)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"content":"Pasta","ingredients":[{"ingredient":"200 g spaghetti"}],"preparationTimeInMinutes":20,"aiEstimations":[]}`,
		string(data))
}

func TestNewUsageMetadata(t *testing.T) {
	m, err := NewUsageMetadata(10, 20, 30, "model-x")
	require.NoError(t, err)
	assert.Equal(t, UsageMetadata{InputTokens: 10, OutputTokens: 20, TotalTokens: 30, ModelID: "model-x"}, m)

	_, err = NewUsageMetadata(-1, 0, 0, "model-x")
	assert.Error(t, err)

	_, err = NewUsageMetadata(0, 0, 0, strings.Repeat("m", 256))
	assert.Error(t, err)
}
