package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
)

// MaxInputChars bounds text and URL recipe payloads.
const MaxInputChars = 10000

// RecipeInput is a single recipe submission. FileFormat is set only for
// image sources.
type RecipeInput struct {
	Content    string     `json:"content" validate:"notblank"`
	Source     Source     `json:"contentType" validate:"required,oneof=URL IMAGE TEXT"`
	FileFormat FileFormat `json:"fileExtension,omitempty" validate:"omitempty,oneof=JPEG JPG PNG"`
	Language   Language   `json:"language" validate:"required,oneof=PL EN_US EN_GB DE FR SP"`
}

// NewRecipeInput builds a RecipeInput after checking the cross-field rules.
func NewRecipeInput(content string, source Source, format FileFormat, language Language) (RecipeInput, error) {
	in := RecipeInput{
		Content:    content,
		Source:     source,
		FileFormat: format,
		Language:   language,
	}
	if err := in.Validate(); err != nil {
		return RecipeInput{}, err
	}
	return in, nil
}

// Validate checks field tags first, then the rules that span fields.
func (in RecipeInput) Validate() error {
	if err := check(in); err != nil {
		return err
	}

	switch {
	case in.Source == SourceImage && in.FileFormat == "":
		return apperrors.NewValidationError("fileExtension is required for IMAGE content", "MISSING_FILE_EXTENSION", nil)
	case in.Source != SourceImage && in.FileFormat != "":
		return apperrors.NewValidationError(
			fmt.Sprintf("fileExtension is only allowed for IMAGE content, got %s", in.Source),
			"UNEXPECTED_FILE_EXTENSION", nil)
	}

	if in.Source != SourceImage && utf8.RuneCountInString(in.Content) > MaxInputChars {
		return apperrors.NewValidationError(
			fmt.Sprintf("content must not exceed %d characters", MaxInputChars), "CONTENT_TOO_LONG", nil)
	}

	if in.Source == SourceURL {
		u, err := url.Parse(strings.TrimSpace(in.Content))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperrors.NewValidationError("content must be an absolute http(s) URL", "INVALID_URL", err)
		}
	}
	return nil
}
