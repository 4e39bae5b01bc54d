// Package llm is the boundary to the language model. Providers accept a
// provider-neutral Request and return generated text with token usage.
package llm

import "context"

// Message is one conversation turn in the provider-neutral wire form.
// The set of implementations is closed.
type Message interface {
	isMessage()
}

// Media is a binary attachment sent alongside user text.
type Media struct {
	MIMEType string
	Data     []byte
}

type UserMessage struct {
	Text  string
	Media []Media
}

type AssistantMessage struct {
	Text string
}

type SystemMessage struct {
	Text string
}

func (UserMessage) isMessage()      {}
func (AssistantMessage) isMessage() {}
func (SystemMessage) isMessage()    {}

// Request is a single generation call.
type Request struct {
	Model    string
	System   string
	Messages []Message
	// JSON asks the provider for a JSON object response.
	JSON bool
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the generated output. Usage is nil when the provider did not
// report it.
type Response struct {
	Text  string
	Usage *Usage
	Model string
}

// Provider generates a response for a request. A nil Response with a nil
// error means the model produced no candidate.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string
}
