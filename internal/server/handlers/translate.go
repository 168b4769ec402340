package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lingogate/lingogate/internal/admission"
	"github.com/lingogate/lingogate/internal/config"
	apperrors "github.com/lingogate/lingogate/internal/errors"
	"github.com/lingogate/lingogate/internal/translate"
)

// HeaderTranslationCharacters reports the rune count of the translated
// input on successful responses.
const HeaderTranslationCharacters = "X-Translation-Characters"

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// Translate serves POST /translate. Validation happens before the
// admission pipeline so malformed requests never consume quota.
type Translate struct {
	pipeline   *admission.Pipeline
	translator *translate.Service
	cfg        *config.Config
	logger     *zap.Logger
}

// NewTranslate builds the translate handler. logger may be nil.
func NewTranslate(pipeline *admission.Pipeline, translator *translate.Service, cfg *config.Config, logger *zap.Logger) *Translate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translate{pipeline: pipeline, translator: translator, cfg: cfg, logger: logger}
}

type translateRequest struct {
	Text         string `json:"text"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	OutputFormat string `json:"outputFormat"`
}

type translateResponse struct {
	Translated string `json:"translated"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	Original   string `json:"original"`
}

func (h *Translate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		apperrors.RespondWithError(w, r, err)
		return
	}

	if err := h.validate(req); err != nil {
		apperrors.RespondWithError(w, r, err)
		return
	}

	var translated string
	result := h.pipeline.Run(r.Context(), func(ctx context.Context) error {
		out, opErr := h.translator.Translate(ctx, translate.Request{
			Text:   req.Text,
			Source: req.Source,
			Target: req.Target,
		})
		translated = out
		return opErr
	})

	applyAdmissionHeaders(w, result.Headers)

	switch result.Status {
	case admission.StatusRateLimited:
		apperrors.RespondWithError(w, r, apperrors.NewRateLimitedError("rate limit exceeded, retry later"))
		return
	case admission.StatusOverloaded:
		apperrors.RespondWithError(w, r, apperrors.NewOverloadedError("too many concurrent requests, retry later"))
		return
	}

	if result.Err != nil {
		h.respondTranslationError(w, r, result.Err)
		return
	}

	w.Header().Set(HeaderTranslationCharacters, strconv.Itoa(utf8.RuneCountInString(req.Text)))

	if req.OutputFormat == outputFormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(translated))
		return
	}

	respondJSON(w, http.StatusOK, translateResponse{
		Translated: translated,
		Source:     req.Source,
		Target:     req.Target,
		Original:   req.Text,
	})
}

// parseRequest accepts a JSON body or an HTML form. JSON requests
// default to JSON output, form requests to plain text.
func (h *Translate) parseRequest(r *http.Request) (translateRequest, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "application/json"), contentType == "":
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return translateRequest{}, apperrors.NewInvalidInputError("request body is not valid JSON")
		}
		if req.OutputFormat == "" {
			req.OutputFormat = outputFormatJSON
		}
		return req, nil

	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"),
		strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseForm(); err != nil {
			return translateRequest{}, apperrors.NewInvalidInputError("malformed form body")
		}
		req := translateRequest{
			Text:         r.PostFormValue("text"),
			Source:       r.PostFormValue("source"),
			Target:       r.PostFormValue("target"),
			OutputFormat: r.PostFormValue("outputFormat"),
		}
		if req.OutputFormat == "" {
			req.OutputFormat = outputFormatText
		}
		return req, nil
	}

	return translateRequest{}, apperrors.NewInvalidInputError(
		fmt.Sprintf("unsupported content type %q", contentType))
}

func (h *Translate) validate(req translateRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewInvalidInputError("text is required")
	}
	if req.Source == "" {
		return apperrors.NewInvalidInputError("source language is required")
	}
	if req.Target == "" {
		return apperrors.NewInvalidInputError("target language is required")
	}

	if !h.cfg.OutputFormatAllowed(req.OutputFormat) {
		return apperrors.NewInvalidInputError(fmt.Sprintf("output format %q is not enabled", req.OutputFormat))
	}

	// Character limit counts runes, not bytes, so multibyte text is not
	// penalized.
	if n := utf8.RuneCountInString(req.Text); n > h.cfg.Translation.MaxCharsPerRequest {
		return apperrors.NewInvalidInputError(fmt.Sprintf(
			"text length %d exceeds the limit of %d characters", n, h.cfg.Translation.MaxCharsPerRequest))
	}

	if !h.translator.Supports(req.Source, req.Target) {
		return apperrors.NewInvalidInputError(fmt.Sprintf(
			"unsupported language pair: %s-%s", req.Source, req.Target))
	}

	return nil
}

// respondTranslationError maps engine failures onto the error envelope.
// Backend faults surface the configured fallback message instead of the
// raw engine error.
func (h *Translate) respondTranslationError(w http.ResponseWriter, r *http.Request, err error) {
	var pairErr *translate.PairError
	if errors.As(err, &pairErr) {
		apperrors.RespondWithError(w, r, apperrors.NewInvalidInputError(pairErr.Error()))
		return
	}

	h.logger.Error("translation backend failure", zap.Error(err))
	apperrors.RespondWithError(w, r, apperrors.NewInternalError(h.cfg.Translation.FallbackResponse))
}
