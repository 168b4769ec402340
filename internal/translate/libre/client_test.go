package libre

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lingogate/lingogate/internal/translate"
)

func TestClientSendsRequestAndParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Equal(t, "hello world", payload["q"])
		require.Equal(t, "en", payload["source"])
		require.Equal(t, "es", payload["target"])
		require.Equal(t, "text", payload["format"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translatedText":"hola mundo"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	client.HTTPClient = server.Client()

	out, err := client.Translate(context.Background(), translate.Request{Text: "hello world", Source: "en", Target: "es"})
	require.NoError(t, err)
	require.Equal(t, "hola mundo", out)
}

func TestClientMapsBadRequestToPairError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"en is not supported"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	client.HTTPClient = server.Client()

	_, err := client.Translate(context.Background(), translate.Request{Text: "hi", Source: "en", Target: "xx"})

	var pairErr *translate.PairError
	require.ErrorAs(t, err, &pairErr)
	require.Equal(t, "xx", pairErr.Target)
}

func TestClientMapsServerFaultToBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"engine crashed"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	client.HTTPClient = server.Client()

	_, err := client.Translate(context.Background(), translate.Request{Text: "hi", Source: "en", Target: "es"})

	var backendErr *translate.BackendError
	require.ErrorAs(t, err, &backendErr)
	require.Contains(t, err.Error(), "engine crashed")
	require.Contains(t, err.Error(), "500")
}

func TestClientSendsAPIKeyWhenConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "secret", payload["api_key"])

		_, _ = w.Write([]byte(`{"translatedText":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	client.HTTPClient = server.Client()

	_, err := client.Translate(context.Background(), translate.Request{Text: "hi", Source: "en", Target: "es"})
	require.NoError(t, err)
}

func TestNewClientAppliesDefaultBaseURL(t *testing.T) {
	client := NewClient("  ", "")
	require.Equal(t, defaultBaseURL, client.BaseURL)
}
