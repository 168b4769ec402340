package admission

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mockClock implements Clock for deterministic refill tests.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *mockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *mockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func newTestLimiter(t *testing.T, rpm, burst int, clock Clock) *RateLimiter {
	t.Helper()
	rl, err := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: rpm,
		Burst:             burst,
		Enabled:           true,
		Clock:             clock,
	})
	require.NoError(t, err)
	return rl
}

func TestNewRateLimiterRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		rpm   int
		burst int
	}{
		{"zero rpm", 0, 10},
		{"negative rpm", -60, 10},
		{"zero burst", 60, 0},
		{"negative burst", 60, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRateLimiter(RateLimiterConfig{
				RequestsPerMinute: tt.rpm,
				Burst:             tt.burst,
				Enabled:           true,
			})
			require.Error(t, err)
		})
	}
}

func TestCheckSaturatesAfterBurst(t *testing.T) {
	clock := newMockClock()
	rl := newTestLimiter(t, 60, 10, clock)

	// Bucket starts full: burst consecutive checks with zero elapsed
	// time are all admitted.
	for i := 0; i < 10; i++ {
		d := rl.Check()
		require.True(t, d.Allowed, "request %d should be allowed", i+1)
	}

	d := rl.Check()
	require.False(t, d.Allowed, "request 11 should be denied")
	require.Equal(t, "1", d.Headers.Get(HeaderRetryAfter), "at 60 rpm one token takes 1s")
}

func TestCheckRefillRecovery(t *testing.T) {
	clock := newMockClock()
	rl := newTestLimiter(t, 60, 10, clock)

	for i := 0; i < 10; i++ {
		rl.Check()
	}
	require.False(t, rl.Check().Allowed)

	// Exactly one token interval (60/rpm seconds) later a single
	// request is admitted again.
	clock.Advance(time.Second)
	require.True(t, rl.Check().Allowed)
	require.False(t, rl.Check().Allowed)
}

func TestCheckRefillIsContinuous(t *testing.T) {
	clock := newMockClock()
	rl := newTestLimiter(t, 120, 5, clock)

	for i := 0; i < 5; i++ {
		rl.Check()
	}
	require.False(t, rl.Check().Allowed)

	// 120 rpm = 2 tokens/s, so 500ms accrues a full token. Refill is
	// not quantized to whole seconds.
	clock.Advance(500 * time.Millisecond)
	require.True(t, rl.Check().Allowed)
}

func TestTokensNeverExceedCapacityUnderIdle(t *testing.T) {
	clock := newMockClock()
	rl := newTestLimiter(t, 600, 3, clock)

	for i := 0; i < 3; i++ {
		rl.Check()
	}

	// A long idle period caps accumulation at burst, not rate*elapsed.
	clock.Advance(time.Hour)
	require.InDelta(t, 3.0, rl.Tokens(), 1e-9)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Check().Allowed)
	}
	require.False(t, rl.Check().Allowed)
}

func TestCheckHeaders(t *testing.T) {
	clock := newMockClock()
	rl := newTestLimiter(t, 60, 2, clock)

	d := rl.Check()
	require.True(t, d.Allowed)
	require.Equal(t, "60", d.Headers.Get(HeaderRateLimitLimit))
	require.Equal(t, "1", d.Headers.Get(HeaderRateLimitRemaining))
	require.Equal(t, "0", d.Headers.Get(HeaderRateLimitReset))
	require.Empty(t, d.Headers.Get(HeaderRetryAfter), "allowed decisions carry no Retry-After")

	d = rl.Check()
	require.True(t, d.Allowed)
	require.Equal(t, "0", d.Headers.Get(HeaderRateLimitRemaining))
	require.Equal(t, "1", d.Headers.Get(HeaderRateLimitReset), "bucket empty: next token is 1s away")

	d = rl.Check()
	require.False(t, d.Allowed)
	require.Equal(t, "60", d.Headers.Get(HeaderRateLimitLimit))
	require.Equal(t, "0", d.Headers.Get(HeaderRateLimitRemaining))
	require.Equal(t, "1", d.Headers.Get(HeaderRetryAfter))
}

func TestDisabledLimiterPassesThrough(t *testing.T) {
	rl, err := NewRateLimiter(RateLimiterConfig{Enabled: false})
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		d := rl.Check()
		require.True(t, d.Allowed)
		require.Empty(t, d.Headers, "disabled gate emits no headers")
	}
}

func TestCheckIsLinearizableUnderConcurrency(t *testing.T) {
	clock := newMockClock()
	rl := newTestLimiter(t, 60, 25, clock)

	const workers = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Check().Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// With zero elapsed time exactly burst tokens exist; whichever
	// goroutines win the lock take them, never more.
	require.Equal(t, 25, allowed)
}
