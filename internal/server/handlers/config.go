package handlers

import (
	"context"
	"net/http"

	"github.com/lingogate/lingogate/internal/admission"
	"github.com/lingogate/lingogate/internal/config"
	apperrors "github.com/lingogate/lingogate/internal/errors"
)

// ConfigResponse is the effective runtime configuration. Secrets stay
// out of it; the engine API key is never echoed.
type ConfigResponse struct {
	RateLimit struct {
		Enabled           bool `json:"enabled"`
		RequestsPerMinute int  `json:"requests_per_minute"`
		Burst             int  `json:"burst"`
	} `json:"rate_limit"`
	Throttling struct {
		Enabled            bool `json:"enabled"`
		ConcurrentRequests int  `json:"concurrent_requests"`
	} `json:"throttling"`
	Translation struct {
		MaxCharsPerRequest int      `json:"max_chars_per_request"`
		AvailablePackages  []string `json:"available_packages"`
		EngineURL          string   `json:"engine_url,omitempty"`
	} `json:"translation"`
	Formats struct {
		Input  []string `json:"input"`
		Output []string `json:"output"`
	} `json:"formats"`
	Logging struct {
		Level string `json:"level"`
	} `json:"logging"`
}

// ConfigHandler serves GET /config with the resolved configuration, run
// through the admission pipeline like every other endpoint.
type ConfigHandler struct {
	pipeline *admission.Pipeline
	cfg      *config.Config
}

func NewConfig(pipeline *admission.Pipeline, cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{pipeline: pipeline, cfg: cfg}
}

func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := h.pipeline.Run(r.Context(), func(context.Context) error { return nil })
	applyAdmissionHeaders(w, result.Headers)

	switch result.Status {
	case admission.StatusRateLimited:
		apperrors.RespondWithError(w, r, apperrors.NewRateLimitedError("rate limit exceeded, retry later"))
		return
	case admission.StatusOverloaded:
		apperrors.RespondWithError(w, r, apperrors.NewOverloadedError("too many concurrent requests, retry later"))
		return
	}

	var resp ConfigResponse
	resp.RateLimit.Enabled = h.cfg.RateLimit.Enabled
	resp.RateLimit.RequestsPerMinute = h.cfg.RateLimit.RequestsPerMinute
	resp.RateLimit.Burst = h.cfg.RateLimit.Burst
	resp.Throttling.Enabled = h.cfg.Throttling.Enabled
	resp.Throttling.ConcurrentRequests = h.cfg.Throttling.ConcurrentRequests
	resp.Translation.MaxCharsPerRequest = h.cfg.Translation.MaxCharsPerRequest
	resp.Translation.AvailablePackages = h.cfg.Translation.AvailablePackages
	resp.Translation.EngineURL = h.cfg.Translation.EngineURL
	resp.Formats.Input = h.cfg.Formats.Input
	resp.Formats.Output = h.cfg.Formats.Output
	resp.Logging.Level = h.cfg.Logging.Level

	respondJSON(w, http.StatusOK, resp)
}
