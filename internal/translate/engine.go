// Package translate defines the translation collaborator consumed by the
// admission pipeline: the engine interface, the language-pair catalog,
// and the typed failures the boundary layer maps to HTTP statuses.
package translate

import (
	"context"
	"fmt"
)

// Request carries one translation job.
type Request struct {
	Text   string
	Source string
	Target string
}

// Engine performs the actual translation. Implementations must honor
// ctx cancellation; the call is the only step of request handling
// permitted to block for a non-trivial duration.
type Engine interface {
	Translate(ctx context.Context, req Request) (string, error)
}

// PairError reports that a language pair is not installed or available.
// Maps to a 400 at the boundary.
type PairError struct {
	Source string
	Target string
}

func (e *PairError) Error() string {
	return fmt.Sprintf("unsupported language pair: %s-%s", e.Source, e.Target)
}

// BackendError reports an internal engine fault. Maps to a 500 at the
// boundary; the pipeline does not retry it.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("translation backend failure: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// EchoEngine returns the input text unchanged. Stand-in engine for
// development and tests when no backend is configured.
type EchoEngine struct{}

func (EchoEngine) Translate(ctx context.Context, req Request) (string, error) {
	return req.Text, nil
}
