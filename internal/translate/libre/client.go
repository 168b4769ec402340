// Package libre implements the translation engine driver for
// LibreTranslate-compatible backends.
package libre

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lingogate/lingogate/internal/translate"
)

const defaultBaseURL = "http://localhost:5000"

// Client speaks the LibreTranslate HTTP API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient returns a client with defaults applied.
func NewClient(baseURL, apiKey string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}

	return &Client{
		BaseURL: url,
		APIKey:  strings.TrimSpace(apiKey),
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Translate sends one translation request. A 400 from the backend means
// the language pair was rejected; any other failure is a backend fault.
func (c *Client) Translate(ctx context.Context, req translate.Request) (string, error) {
	payload := translateRequest{
		Q:      req.Text,
		Source: req.Source,
		Target: req.Target,
		Format: "text",
		APIKey: c.APIKey,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &translate.BackendError{Err: fmt.Errorf("encode request: %w", err)}
	}

	ctx, cancel := withTimeout(ctx, c.Timeout)
	if cancel != nil {
		defer cancel()
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/translate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &translate.BackendError{Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", &translate.BackendError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &translate.BackendError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusBadRequest {
		return "", &translate.PairError{Source: req.Source, Target: req.Target}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(respBody))
		var parsed errorResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != "" {
			msg = parsed.Error
		}
		return "", &translate.BackendError{Err: fmt.Errorf("engine returned status %d: %s", resp.StatusCode, msg)}
	}

	var parsed translateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &translate.BackendError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return parsed.TranslatedText, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, nil
	}
	return context.WithTimeout(ctx, timeout)
}
