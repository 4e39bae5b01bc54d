package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/hubertmaka/culinary-agent/internal/httpclient"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
)

const geminiProvider = "Gemini"

type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a Gemini API client. An empty baseURL uses the
// public endpoint.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GeminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return geminiProvider
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	defer metrics.RecordExternalAPICall(ctx, geminiProvider, start)

	system, contents, err := toGeminiContents(req)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(httpclient.WithProvider(ctx, geminiProvider), req.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return fromGeminiResponse(resp, req.Model), nil
}

// toGeminiContents folds system messages into the system instruction since
// Gemini only accepts user and model turns.
func toGeminiContents(req Request) (string, []*genai.Content, error) {
	system := []string{}
	if req.System != "" {
		system = append(system, req.System)
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch msg := m.(type) {
		case UserMessage:
			parts := []*genai.Part{}
			if msg.Text != "" {
				parts = append(parts, genai.NewPartFromText(msg.Text))
			}
			for _, media := range msg.Media {
				parts = append(parts, genai.NewPartFromBytes(media.Data, media.MIMEType))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
		case AssistantMessage:
			contents = append(contents, genai.NewContentFromText(msg.Text, genai.RoleModel))
		case SystemMessage:
			system = append(system, msg.Text)
		default:
			return "", nil, fmt.Errorf("unsupported message type %T", m)
		}
	}
	return strings.Join(system, "\n\n"), contents, nil
}

func fromGeminiResponse(resp *genai.GenerateContentResponse, model string) *Response {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	out := &Response{
		Text:  resp.Text(),
		Model: model,
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out
}
