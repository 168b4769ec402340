package admission

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// throttleRetryAfterSeconds is the advisory Retry-After on throttle
// denials. The throttler cannot know when an in-flight request will
// finish, so the value is a hint, not a bound.
const throttleRetryAfterSeconds = 1

// ThrottlerConfig holds the parameters for a Throttler.
type ThrottlerConfig struct {
	// MaxConcurrent bounds the number of requests in flight at once.
	MaxConcurrent int

	// Enabled toggles the gate. A disabled throttler admits everything,
	// emits no headers, and skips slot accounting.
	Enabled bool

	// Logger receives the logic-error signal for unmatched releases.
	// If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Throttler bounds in-flight concurrency independent of arrival rate.
// Acquire never blocks: a request either takes a slot now or is denied
// now. Every successful Acquire must be matched by exactly one Release.
type Throttler struct {
	mu     sync.Mutex
	active int

	max     int
	enabled bool
	logger  *zap.Logger
}

// NewThrottler validates cfg and returns a throttler with all slots free.
func NewThrottler(cfg ThrottlerConfig) (*Throttler, error) {
	if cfg.Enabled && cfg.MaxConcurrent < 1 {
		return nil, fmt.Errorf("throttling: concurrent_requests must be at least 1, got %d", cfg.MaxConcurrent)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Throttler{
		max:     cfg.MaxConcurrent,
		enabled: cfg.Enabled,
		logger:  cfg.Logger,
	}, nil
}

// Acquire attempts to take a concurrency slot without blocking. The
// usage headers reflect the state after the call.
func (t *Throttler) Acquire() Decision {
	if !t.enabled {
		return Decision{Allowed: true, Headers: http.Header{}}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	allowed := t.active < t.max
	if allowed {
		t.active++
	}

	headers := http.Header{}
	headers.Set(HeaderThrottleLimit, strconv.Itoa(t.max))
	headers.Set(HeaderThrottleUsage, strconv.Itoa(t.active))
	headers.Set(HeaderThrottleRemaining, strconv.Itoa(t.max-t.active))
	if !allowed {
		headers.Set(HeaderRetryAfter, strconv.Itoa(throttleRetryAfterSeconds))
	}

	return Decision{Allowed: allowed, Headers: headers}
}

// Release returns a slot taken by a successful Acquire. A release
// without a matching acquire is a programming error: the counter is
// clamped at zero and the event logged rather than silently absorbed.
func (t *Throttler) Release() {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == 0 {
		t.logger.Error("throttler release without matching acquire")
		return
	}
	t.active--
}

// Active reports the number of slots currently held.
func (t *Throttler) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Enabled reports whether the gate is enforcing.
func (t *Throttler) Enabled() bool {
	return t.enabled
}
