package domain

// EventType tags a composed stream event.
type EventType string

const (
	EventAudio           EventType = "audio"
	EventAgentCompletion EventType = "agent_completion"
)

// StreamEvent is one element of the chat+speech stream. Audio events carry
// a frame; completion events carry either the answer or synthesized usage.
type StreamEvent struct {
	Type   EventType
	Audio  []byte
	Answer *ChatAnswer
	Usage  *UsageMetadata
}

// AudioEvent wraps one synthesized audio frame.
func AudioEvent(frame []byte) StreamEvent {
	return StreamEvent{Type: EventAudio, Audio: frame}
}

// CompletionEvent builds a terminal event.
func CompletionEvent(answer *ChatAnswer, usage *UsageMetadata) StreamEvent {
	return StreamEvent{Type: EventAgentCompletion, Answer: answer, Usage: usage}
}
