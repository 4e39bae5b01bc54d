package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hubertmaka/culinary-agent/internal/config"
	"github.com/hubertmaka/culinary-agent/internal/domain"
	apperrors "github.com/hubertmaka/culinary-agent/internal/errors"
	"github.com/hubertmaka/culinary-agent/internal/httpclient"
	"github.com/hubertmaka/culinary-agent/internal/metrics"
)

const (
	elevenLabsProvider = "ElevenLabs"
	defaultBaseURL     = "https://api.elevenlabs.io"
	defaultModelID     = "eleven_flash_v2_5"
	defaultFrameSize   = 4096
)

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// ElevenLabsClient streams synthesized speech from the ElevenLabs
// text-to-speech API.
type ElevenLabsClient struct {
	apiKey       string
	baseURL      string
	modelID      string
	outputFormat string
	frameSize    int
	client       *http.Client
}

func NewElevenLabsClient(apiKey string, cfg config.SpeechConfig, client *http.Client) *ElevenLabsClient {
	if client == nil {
		client = httpclient.InstrumentedClient
	}
	c := &ElevenLabsClient{
		apiKey:       apiKey,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		modelID:      cfg.ModelID,
		outputFormat: cfg.OutputFormat,
		frameSize:    cfg.FrameSize,
		client:       client,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.modelID == "" {
		c.modelID = defaultModelID
	}
	if c.frameSize <= 0 {
		c.frameSize = defaultFrameSize
	}
	return c
}

// Model is the speech model id reported in synthesized usage.
func (c *ElevenLabsClient) Model() string {
	return c.modelID
}

// Stream yields audio frames of at most frameSize bytes as soon as they are
// read, without waiting for a frame to fill up. The request is only sent
// once the sequence is ranged over, and the response body is closed as soon
// as the consumer stops.
func (c *ElevenLabsClient) Stream(ctx context.Context, text string, voice domain.Voice) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		voiceID, ok := voice.ID()
		if !ok {
			yield(nil, apperrors.NewValidationError(fmt.Sprintf("Unsupported voice: %s", voice), "UNSUPPORTED_VOICE", nil))
			return
		}

		start := time.Now()
		defer metrics.RecordExternalAPICall(ctx, elevenLabsProvider, start)

		resp, err := c.open(ctx, text, voiceID)
		if err != nil {
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		buf := make([]byte, c.frameSize)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				frame := make([]byte, n)
				copy(frame, buf[:n])
				if !yield(frame, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("reading speech stream: %w", err))
				return
			}
		}
	}
}

func (c *ElevenLabsClient) open(ctx context.Context, text, voiceID string) (*http.Response, error) {
	body, err := json.Marshal(ttsRequest{Text: text, ModelID: c.modelID})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v1/text-to-speech/" + url.PathEscape(voiceID) + "/stream"
	if c.outputFormat != "" {
		endpoint += "?" + url.Values{"output_format": {c.outputFormat}}.Encode()
	}

	req, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, elevenLabsProvider), http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ElevenLabs API error (status %d): %s", resp.StatusCode, string(msg))
	}
	return resp, nil
}
