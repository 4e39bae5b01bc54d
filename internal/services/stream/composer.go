package stream

import (
	"context"
	"iter"
	"unicode/utf8"

	"github.com/hubertmaka/culinary-agent/internal/domain"
	"github.com/hubertmaka/culinary-agent/internal/logger"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
)

// Synthesizer turns text into a lazy sequence of audio frames.
type Synthesizer interface {
	Stream(ctx context.Context, text string, voice domain.Voice) iter.Seq2[[]byte, error]
	Model() string
}

type Composer struct {
	synth Synthesizer
}

func NewComposer(synth Synthesizer) *Composer {
	return &Composer{synth: synth}
}

// Stream speaks answer and yields every audio frame followed by two
// completion events: the answer itself, then the synthesized speech usage.
// Frames are pulled one at a time, so a slow consumer slows synthesis down.
// A cancelled context or a speech failure ends the sequence with an error
// and no completion events.
func (c *Composer) Stream(ctx context.Context, answer domain.ChatAnswer, voice domain.Voice) iter.Seq2[domain.StreamEvent, error] {
	return func(yield func(domain.StreamEvent, error) bool) {
		log := logger.FromContext(ctx)
		frames := 0

		for frame, err := range c.synth.Stream(ctx, answer.Text, voice) {
			if err != nil {
				log.Warn("Speech synthesis failed", "frames", frames, "error", err)
				yield(domain.StreamEvent{}, err)
				return
			}
			if err := ctx.Err(); err != nil {
				yield(domain.StreamEvent{}, err)
				return
			}
			frames++
			metrics.RecordSpeechFrame(ctx, string(voice))
			if !yield(domain.AudioEvent(frame), nil) {
				return
			}
		}

		if err := ctx.Err(); err != nil {
			yield(domain.StreamEvent{}, err)
			return
		}
		if !yield(domain.CompletionEvent(&answer, nil), nil) {
			return
		}

		// Speech usage is reported in characters, not tokens.
		chars := utf8.RuneCountInString(answer.Text)
		usage := domain.UsageMetadata{
			InputTokens:  chars,
			OutputTokens: 0,
			TotalTokens:  chars,
			ModelID:      c.synth.Model(),
		}
		if !yield(domain.CompletionEvent(nil, &usage), nil) {
			return
		}

		log.Debug("Answer streamed", "frames", frames, "characters", chars)
	}
}
