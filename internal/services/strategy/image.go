package strategy

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
)

// ImageInstruction accompanies every uploaded recipe image.
const ImageInstruction = "extract recipe information from the given image"

type ImageStrategy struct{}

func NewImageStrategy() *ImageStrategy {
	return &ImageStrategy{}
}

func (s *ImageStrategy) Supports(source domain.Source) bool {
	return source == domain.SourceImage
}

func (s *ImageStrategy) CreateMessage(_ context.Context, in domain.RecipeInput) (llm.UserMessage, error) {
	mimeType, ok := in.FileFormat.MIMEType()
	if !ok {
		return llm.UserMessage{}, apperrors.NewValidationError(
			fmt.Sprintf("unsupported file extension: %q", in.FileFormat), "UNSUPPORTED_FILE_EXTENSION", nil)
	}

	data, err := DecodeImage(in.Content)
	if err != nil {
		return llm.UserMessage{}, apperrors.NewValidationError("image content is not valid base64", "INVALID_IMAGE", err)
	}

	return llm.UserMessage{
		Text:  ImageInstruction,
		Media: []llm.Media{{MIMEType: mimeType, Data: data}},
	}, nil
}

// DecodeImage decodes a base64 payload, dropping a data URI header such as
// "data:image/png;base64," when present.
func DecodeImage(content string) ([]byte, error) {
	if _, payload, found := strings.Cut(content, ","); found {
		content = payload
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty image payload")
	}
	return base64.StdEncoding.DecodeString(content)
}
