package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithProvider(t *testing.T) {
	ctx := WithProvider(context.Background(), "Gemini")
	assert.Equal(t, "Gemini", Provider(ctx))
	assert.Empty(t, Provider(context.Background()))
}

func TestNewBrowserClient_SetsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewBrowserClient("", 5*time.Second)
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, BrowserUserAgent, got)

	client = NewBrowserClient("culinary-test/1.0", 5*time.Second)
	resp, err = client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "culinary-test/1.0", got)
}

func TestNewBrowserClient_KeepsExplicitUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "explicit")

	resp, err := NewBrowserClient("", time.Second).Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "explicit", got)
}

func TestInstrumentedClient_ReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(WithProvider(context.Background(), "ElevenLabs"), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := NewInstrumentedClient(time.Second).Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
