package strategy

import (
	"context"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
)

// TextStrategy passes the recipe text through unchanged.
type TextStrategy struct{}

func NewTextStrategy() *TextStrategy {
	return &TextStrategy{}
}

func (s *TextStrategy) Supports(source domain.Source) bool {
	return source == domain.SourceText
}

func (s *TextStrategy) CreateMessage(_ context.Context, in domain.RecipeInput) (llm.UserMessage, error) {
	return llm.UserMessage{Text: in.Content}, nil
}
