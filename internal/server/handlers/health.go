package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/lingogate/lingogate/internal/admission"
	"github.com/lingogate/lingogate/internal/config"
	apperrors "github.com/lingogate/lingogate/internal/errors"
	"github.com/lingogate/lingogate/internal/translate"
)

// HealthResponse reports service liveness, the translation packages the
// instance is configured with, and the current gate configuration.
type HealthResponse struct {
	Status            string      `json:"status"`
	Service           string      `json:"service"`
	Version           string      `json:"version"`
	Timestamp         string      `json:"timestamp"`
	InstalledPackages []string    `json:"installed_packages"`
	Gates             GatesStatus `json:"gates"`
}

// GatesStatus summarizes the admission gates for health reporting.
type GatesStatus struct {
	RateLimit struct {
		Enabled           bool `json:"enabled"`
		RequestsPerMinute int  `json:"requests_per_minute"`
		Burst             int  `json:"burst"`
	} `json:"rate_limit"`
	Throttling struct {
		Enabled            bool `json:"enabled"`
		ConcurrentRequests int  `json:"concurrent_requests"`
	} `json:"throttling"`
}

// Health serves GET /health. It runs through the same admission
// pipeline as translation, so an overloaded instance reports itself as
// such instead of answering ok.
type Health struct {
	pipeline   *admission.Pipeline
	translator *translate.Service
	cfg        *config.Config
}

func NewHealth(pipeline *admission.Pipeline, translator *translate.Service, cfg *config.Config) *Health {
	return &Health{pipeline: pipeline, translator: translator, cfg: cfg}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	resp := HealthResponse{
		Status:            "ok",
		Service:           "lingogate",
		Version:           AppVersion,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		InstalledPackages: h.translator.Pairs(),
	}
	resp.Gates.RateLimit.Enabled = h.cfg.RateLimit.Enabled
	resp.Gates.RateLimit.RequestsPerMinute = h.cfg.RateLimit.RequestsPerMinute
	resp.Gates.RateLimit.Burst = h.cfg.RateLimit.Burst
	resp.Gates.Throttling.Enabled = h.cfg.Throttling.Enabled
	resp.Gates.Throttling.ConcurrentRequests = h.cfg.Throttling.ConcurrentRequests

	respondJSON(w, http.StatusOK, resp)
}
