package admission

import "net/http"

// Response header names exposed by the two gates. Clients read these to
// self-throttle; every response carries them while the owning gate is
// enabled, denials included.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"

	HeaderThrottleLimit     = "X-Throttle-Limit"
	HeaderThrottleUsage     = "X-Throttle-Usage"
	HeaderThrottleRemaining = "X-Throttle-Remaining"

	HeaderRetryAfter = "Retry-After"
)

// Decision is the result of a single gate check: whether the request may
// proceed plus the quota headers describing the gate's state at the time
// of the check. A Decision is constructed fresh per check and never
// shared across requests.
type Decision struct {
	Allowed bool
	Headers http.Header
}

func mergeHeaders(dst, src http.Header) {
	for name, values := range src {
		for _, v := range values {
			dst.Set(name, v)
		}
	}
}
