package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGeminiContents(t *testing.T) {
	system, contents, err := toGeminiContents(Request{
		System: "be a chef",
		Messages: []Message{
			SystemMessage{Text: "answer briefly"},
			UserMessage{Text: "extract", Media: []Media{{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}}},
			AssistantMessage{Text: "done"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "be a chef\n\nanswer briefly", system)
	require.Len(t, contents, 2)

	assert.Equal(t, string(genai.RoleUser), contents[0].Role)
	require.Len(t, contents[0].Parts, 2)
	assert.Equal(t, "extract", contents[0].Parts[0].Text)
	require.NotNil(t, contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/jpeg", contents[0].Parts[1].InlineData.MIMEType)

	assert.Equal(t, string(genai.RoleModel), contents[1].Role)
	assert.Equal(t, "done", contents[1].Parts[0].Text)
}

func TestFromGeminiResponse(t *testing.T) {
	assert.Nil(t, fromGeminiResponse(nil, "m"))
	assert.Nil(t, fromGeminiResponse(&genai.GenerateContentResponse{}, "m"))

	resp := fromGeminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText("Boil it.", genai.RoleModel),
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 20,
			TotalTokenCount:      30,
		},
		ModelVersion: "model-x",
	}, "gemini-2.0-flash")

	require.NotNil(t, resp)
	assert.Equal(t, "Boil it.", resp.Text)
	assert.Equal(t, "model-x", resp.Model)
	assert.Equal(t, &Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30}, resp.Usage)
}

func TestFromGeminiResponse_NoUsage(t *testing.T) {
	resp := fromGeminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("x", genai.RoleModel)}},
	}, "gemini-2.0-flash")

	require.NotNil(t, resp)
	assert.Nil(t, resp.Usage)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
}

func TestGeminiProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Add salt."}]}}],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 2, "totalTokenCount": 5},
			"modelVersion": "gemini-test-001"
		}`))
	}))
	defer srv.Close()

	p, err := NewGeminiProvider(context.Background(), "test-key", srv.URL, srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "Gemini", p.Name())

	resp, err := p.Generate(context.Background(), Request{
		Model:    "gemini-test",
		Messages: []Message{UserMessage{Text: "what next?"}},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Add salt.", resp.Text)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
	assert.Equal(t, "gemini-test-001", resp.Model)
}
