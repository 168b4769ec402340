package admission

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiterConfig holds the parameters for a RateLimiter.
type RateLimiterConfig struct {
	// RequestsPerMinute is the sustained admission rate.
	RequestsPerMinute int

	// Burst is the bucket capacity: how many requests can be admitted
	// back to back after idle accumulation.
	Burst int

	// Enabled toggles the gate. A disabled limiter admits everything
	// and emits no headers.
	Enabled bool

	// Clock provides the current time. If nil, SystemClock is used.
	Clock Clock
}

// RateLimiter is a token-bucket admission gate over a single
// process-wide bucket. Tokens accumulate continuously at
// RequestsPerMinute/60 per second up to Burst; each admitted request
// consumes one token. Check never blocks and never queues: a request
// either gets a token now or is denied now.
type RateLimiter struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time

	rpm     int
	burst   int
	rate    float64 // tokens per second
	enabled bool
	clock   Clock
}

// NewRateLimiter validates cfg and returns a limiter with a full bucket.
// Invalid parameters are a configuration error, not a runtime condition.
func NewRateLimiter(cfg RateLimiterConfig) (*RateLimiter, error) {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Enabled {
		if cfg.RequestsPerMinute <= 0 {
			return nil, fmt.Errorf("rate limit: requests_per_minute must be positive, got %d", cfg.RequestsPerMinute)
		}
		if cfg.Burst < 1 {
			return nil, fmt.Errorf("rate limit: burst must be at least 1, got %d", cfg.Burst)
		}
	}

	return &RateLimiter{
		tokens:  float64(cfg.Burst),
		last:    cfg.Clock.Now(),
		rpm:     cfg.RequestsPerMinute,
		burst:   cfg.Burst,
		rate:    float64(cfg.RequestsPerMinute) / 60.0,
		enabled: cfg.Enabled,
		clock:   cfg.Clock,
	}, nil
}

// Check decides whether a request may proceed. It refills the bucket for
// the elapsed time, consumes one token when available, and reports the
// resulting state as headers. Exactly one read-modify-write of the shared
// state happens per call, under the lock.
//
// When the limiter is disabled the decision is always allowed and
// carries no headers: fabricating quota numbers for a gate that is not
// enforcing anything would mislead clients.
func (rl *RateLimiter) Check() Decision {
	if !rl.enabled {
		return Decision{Allowed: true, Headers: http.Header{}}
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	elapsed := now.Sub(rl.last).Seconds()
	rl.last = now
	if elapsed > 0 {
		rl.tokens = math.Min(rl.tokens+elapsed*rl.rate, float64(rl.burst))
	}

	allowed := rl.tokens >= 1
	if allowed {
		rl.tokens--
	}

	headers := http.Header{}
	headers.Set(HeaderRateLimitLimit, strconv.Itoa(rl.rpm))
	headers.Set(HeaderRateLimitRemaining, strconv.Itoa(int(math.Floor(rl.tokens))))
	headers.Set(HeaderRateLimitReset, strconv.Itoa(rl.secondsUntilToken()))
	if !allowed {
		headers.Set(HeaderRetryAfter, strconv.Itoa(rl.secondsUntilToken()))
	}

	return Decision{Allowed: allowed, Headers: headers}
}

// secondsUntilToken returns the whole seconds until at least one full
// token is available again, zero when one already is. Caller must hold
// the lock.
func (rl *RateLimiter) secondsUntilToken() int {
	if rl.tokens >= 1 {
		return 0
	}
	return int(math.Ceil((1 - rl.tokens) / rl.rate))
}

// Tokens reports the token level as of now, accounting for accrual since
// the last check without mutating the bucket. Used by metrics; not part
// of the admission path.
func (rl *RateLimiter) Tokens() float64 {
	if !rl.enabled {
		return float64(rl.burst)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	elapsed := rl.clock.Now().Sub(rl.last).Seconds()
	if elapsed <= 0 {
		return rl.tokens
	}
	return math.Min(rl.tokens+elapsed*rl.rate, float64(rl.burst))
}

// Enabled reports whether the gate is enforcing.
func (rl *RateLimiter) Enabled() bool {
	return rl.enabled
}
