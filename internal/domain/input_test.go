package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
)

func TestNewRecipeInput(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		source   Source
		format   FileFormat
		language Language
		wantCode string
	}{
		{name: "text", content: "Mix flour and water", source: SourceText, language: LanguageENUS},
		{name: "url", content: "https://example.com/recipe", source: SourceURL, language: LanguagePL},
		{name: "image", content: "aGVsbG8=", source: SourceImage, format: FileFormatPNG, language: LanguageDE},
		{name: "image without format", content: "aGVsbG8=", source: SourceImage, language: LanguageDE, wantCode: "MISSING_FILE_EXTENSION"},
		{name: "text with format", content: "soup", source: SourceText, format: FileFormatJPG, language: LanguageDE, wantCode: "UNEXPECTED_FILE_EXTENSION"},
		{name: "blank content", content: "  ", source: SourceText, language: LanguageFR, wantCode: "INVALID_FIELD"},
		{name: "unknown source", content: "soup", source: "FAX", language: LanguageFR, wantCode: "INVALID_FIELD"},
		{name: "unknown language", content: "soup", source: SourceText, language: "XX", wantCode: "INVALID_FIELD"},
		{name: "relative url", content: "/recipes/1", source: SourceURL, language: LanguageSP, wantCode: "INVALID_URL"},
		{name: "ftp url", content: "ftp://example.com/a", source: SourceURL, language: LanguageSP, wantCode: "INVALID_URL"},
		{name: "too long", content: strings.Repeat("x", MaxInputChars+1), source: SourceText, language: LanguageENGB, wantCode: "CONTENT_TOO_LONG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewRecipeInput(tt.content, tt.source, tt.format, tt.language)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.source, in.Source)
				return
			}
			require.Error(t, err)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.wantCode, appErr.Code())
		})
	}
}

func TestNewRecipeInput_ImageIsNotLengthBounded(t *testing.T) {
	_, err := NewRecipeInput(strings.Repeat("A", MaxInputChars*2), SourceImage, FileFormatJPEG, LanguagePL)
	assert.NoError(t, err)
}

func TestEnums(t *testing.T) {
	assert.Equal(t, "english (US)", LanguageENUS.DisplayName())
	assert.Equal(t, "polish", LanguagePL.DisplayName())
	assert.False(t, Language("KL").Valid())

	id, ok := VoiceWoman.ID()
	assert.True(t, ok)
	assert.Equal(t, "hpp4J3VqNfWAUOO0d1Us", id)
	_, ok = Voice("ROBOT").ID()
	assert.False(t, ok)

	mime, ok := FileFormatJPG.MIMEType()
	assert.True(t, ok)
	assert.Equal(t, "image/jpeg", mime)
	mime, _ = FileFormatPNG.MIMEType()
	assert.Equal(t, "image/png", mime)

	assert.Len(t, Sources(), 3)
	assert.Len(t, Units(), 8)
}
