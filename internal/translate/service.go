package translate

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Service fronts the engine with catalog validation and failure
// classification. It does not retry, cache, or inspect results.
type Service struct {
	engine  Engine
	catalog *Catalog
	logger  *zap.Logger
}

// NewService wires an engine to the configured catalog. logger may be nil.
func NewService(engine Engine, catalog *Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: engine, catalog: catalog, logger: logger}
}

// Supports reports whether the source/target pair is configured. Cheap;
// callers use it to reject requests before admission.
func (s *Service) Supports(source, target string) bool {
	return s.catalog.Supports(Pair{Source: source, Target: target})
}

// Pairs returns the configured package codes, sorted.
func (s *Service) Pairs() []string {
	return s.catalog.List()
}

// Translate validates the pair and invokes the engine. Failures come
// back as *PairError or *BackendError; anything the engine reports that
// is neither gets wrapped as a backend fault.
func (s *Service) Translate(ctx context.Context, req Request) (string, error) {
	pair := Pair{Source: req.Source, Target: req.Target}
	if !s.catalog.Supports(pair) {
		return "", &PairError{Source: req.Source, Target: req.Target}
	}

	translated, err := s.engine.Translate(ctx, req)
	if err != nil {
		var pairErr *PairError
		if errors.As(err, &pairErr) {
			return "", err
		}

		s.logger.Error("translation engine failure",
			zap.String("pair", pair.String()),
			zap.Error(err))

		var backendErr *BackendError
		if errors.As(err, &backendErr) {
			return "", err
		}
		return "", &BackendError{Err: err}
	}

	return translated, nil
}
