package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hubertmaka/culinary-agent/internal/httpclient"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
)

const (
	openAIProvider       = "OpenAI"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// chatMessage content is either a string or a list of contentPart.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// OpenAIProvider talks to any OpenAI compatible chat completions endpoint.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIProvider(apiKey, baseURL string, client *http.Client) *OpenAIProvider {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if client == nil {
		client = httpclient.InstrumentedClient
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (p *OpenAIProvider) Name() string {
	return openAIProvider
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	defer metrics.RecordExternalAPICall(ctx, openAIProvider, start)

	body, err := json.Marshal(toChatRequest(req))
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, openAIProvider), http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("decoding chat completion: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, nil
	}

	out := &Response{
		Text:  chatResp.Choices[0].Message.Content,
		Model: req.Model,
	}
	if chatResp.Model != "" {
		out.Model = chatResp.Model
	}
	if u := chatResp.Usage; u != nil {
		out.Usage = &Usage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}
	return out, nil
}

func toChatRequest(req Request) chatRequest {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}

	for _, m := range req.Messages {
		switch msg := m.(type) {
		case UserMessage:
			if len(msg.Media) == 0 {
				messages = append(messages, chatMessage{Role: "user", Content: msg.Text})
				continue
			}
			parts := []contentPart{{Type: "text", Text: msg.Text}}
			for _, media := range msg.Media {
				parts = append(parts, contentPart{
					Type:     "image_url",
					ImageURL: &imageURL{URL: "data:" + media.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(media.Data)},
				})
			}
			messages = append(messages, chatMessage{Role: "user", Content: parts})
		case AssistantMessage:
			messages = append(messages, chatMessage{Role: "assistant", Content: msg.Text})
		case SystemMessage:
			messages = append(messages, chatMessage{Role: "system", Content: msg.Text})
		}
	}

	cr := chatRequest{Model: req.Model, Messages: messages}
	if req.JSON {
		cr.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return cr
}
