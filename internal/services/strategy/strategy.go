// Package strategy converts a recipe input into the user message sent to the
// extraction model. There is one strategy per source kind.
package strategy

import (
	"context"
	"fmt"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/services/llm"
)

type Strategy interface {
	Supports(source domain.Source) bool
	CreateMessage(ctx context.Context, in domain.RecipeInput) (llm.UserMessage, error)
}

// Dispatcher is a lookup table from source kind to the single strategy that
// handles it. Only sources in the supported set are routable.
type Dispatcher struct {
	table     map[domain.Source]Strategy
	ambiguous map[domain.Source]int
}

// NewDispatcher indexes strategies by the supported sources they accept.
func NewDispatcher(supported []domain.Source, strategies ...Strategy) *Dispatcher {
	d := &Dispatcher{
		table:     make(map[domain.Source]Strategy, len(supported)),
		ambiguous: make(map[domain.Source]int),
	}
	for _, source := range supported {
		var matches []Strategy
		for _, s := range strategies {
			if s.Supports(source) {
				matches = append(matches, s)
			}
		}
		switch len(matches) {
		case 0:
		case 1:
			d.table[source] = matches[0]
		default:
			d.ambiguous[source] = len(matches)
		}
	}
	return d
}

// Resolve returns the strategy for source or an UnsupportedSchema error
// naming it.
func (d *Dispatcher) Resolve(source domain.Source) (Strategy, error) {
	if n, ok := d.ambiguous[source]; ok {
		return nil, apperrors.NewUnsupportedSchemaError(
			fmt.Sprintf("Unsupported source: %s", source), "UNSUPPORTED_SOURCE",
			fmt.Errorf("%d strategies registered for %s", n, source))
	}
	s, ok := d.table[source]
	if !ok {
		return nil, apperrors.NewUnsupportedSchemaError(
			fmt.Sprintf("Unsupported source: %s", source), "UNSUPPORTED_SOURCE", nil)
	}
	return s, nil
}
