package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	out   string
	err   error
	calls int
}

func (s *stubEngine) Translate(ctx context.Context, req Request) (string, error) {
	s.calls++
	return s.out, s.err
}

func newTestService(t *testing.T, engine Engine) *Service {
	t.Helper()
	catalog, err := NewCatalog([]string{"en-es", "es-en"})
	require.NoError(t, err)
	return NewService(engine, catalog, nil)
}

func TestServiceTranslateSuccess(t *testing.T) {
	engine := &stubEngine{out: "hola mundo"}
	svc := newTestService(t, engine)

	out, err := svc.Translate(context.Background(), Request{Text: "hello world", Source: "en", Target: "es"})
	require.NoError(t, err)
	require.Equal(t, "hola mundo", out)
	require.Equal(t, 1, engine.calls)
}

func TestServiceRejectsUnconfiguredPairWithoutCallingEngine(t *testing.T) {
	engine := &stubEngine{out: "should not be used"}
	svc := newTestService(t, engine)

	_, err := svc.Translate(context.Background(), Request{Text: "ciao", Source: "it", Target: "en"})

	var pairErr *PairError
	require.ErrorAs(t, err, &pairErr)
	require.Equal(t, "it", pairErr.Source)
	require.Equal(t, 0, engine.calls, "unsupported pair must not reach the engine")
}

func TestServiceWrapsEngineFaultsAsBackendErrors(t *testing.T) {
	engine := &stubEngine{err: errors.New("model out of memory")}
	svc := newTestService(t, engine)

	_, err := svc.Translate(context.Background(), Request{Text: "hello", Source: "en", Target: "es"})

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	require.Contains(t, backendErr.Error(), "model out of memory")
}

func TestServicePassesThroughTypedEngineErrors(t *testing.T) {
	engine := &stubEngine{err: &PairError{Source: "en", Target: "es"}}
	svc := newTestService(t, engine)

	_, err := svc.Translate(context.Background(), Request{Text: "hello", Source: "en", Target: "es"})

	var pairErr *PairError
	require.ErrorAs(t, err, &pairErr, "engine-reported pair errors are not re-wrapped")
}

func TestServiceSupports(t *testing.T) {
	svc := newTestService(t, &stubEngine{})

	require.True(t, svc.Supports("en", "es"))
	require.False(t, svc.Supports("en", "de"))
	require.Equal(t, []string{"en-es", "es-en"}, svc.Pairs())
}
