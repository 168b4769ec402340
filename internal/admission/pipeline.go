// Package admission implements the request admission layer: a
// token-bucket rate limiter and a concurrency throttler composed into a
// pipeline around the protected translation call.
//
// Both gates operate on a single process-wide pool; there is no
// per-client accounting. Partitioning by client identity would slot in
// as a map from identity to independent RateLimiter/Throttler instances
// in front of the pipeline, but is deliberately not implemented.
package admission

import (
	"context"
	"net/http"
)

// Status classifies the admission outcome of a request.
type Status int

const (
	// StatusOK means both gates admitted the request and the protected
	// operation ran (its own error, if any, is in Result.Err).
	StatusOK Status = iota

	// StatusRateLimited means the token bucket denied the request.
	StatusRateLimited

	// StatusOverloaded means all concurrency slots were taken.
	StatusOverloaded
)

// Result is the normalized outcome of running a request through the
// pipeline. Headers always carries the union of the gate headers
// collected along the way, denials included.
type Result struct {
	Status  Status
	Headers http.Header
	Err     error
}

// Pipeline sequences the rate limiter before the throttler around a
// protected operation. The order is deliberate: the cheaper stateless
// check runs first, so a request already rejected on rate never occupies
// a concurrency slot.
type Pipeline struct {
	rate     *RateLimiter
	throttle *Throttler
	metrics  *Metrics
}

// NewPipeline composes the two gates. metrics may be nil.
func NewPipeline(rate *RateLimiter, throttle *Throttler, metrics *Metrics) *Pipeline {
	return &Pipeline{rate: rate, throttle: throttle, metrics: metrics}
}

// Run checks both gates and, if admitted, invokes op inside the throttle
// scope. The slot is released on every exit path: normal return, error
// return, and panic (the panic still propagates after release).
func (p *Pipeline) Run(ctx context.Context, op func(context.Context) error) Result {
	rateDecision := p.rate.Check()
	p.metrics.recordTokens(p.rate)

	headers := http.Header{}
	mergeHeaders(headers, rateDecision.Headers)

	if !rateDecision.Allowed {
		p.metrics.recordDecision("rate", "denied")
		return Result{Status: StatusRateLimited, Headers: headers}
	}
	p.metrics.recordDecision("rate", "allowed")

	throttleDecision := p.throttle.Acquire()
	mergeHeaders(headers, throttleDecision.Headers)

	if !throttleDecision.Allowed {
		p.metrics.recordDecision("throttle", "denied")
		return Result{Status: StatusOverloaded, Headers: headers}
	}
	p.metrics.recordDecision("throttle", "allowed")
	p.metrics.recordInFlight(p.throttle)

	err := p.runProtected(ctx, op)
	p.metrics.recordInFlight(p.throttle)

	return Result{Status: StatusOK, Headers: headers, Err: err}
}

// runProtected scopes the throttle slot to the operation. The deferred
// release is the correctness-critical piece: it runs on success, on
// error, and on panic.
func (p *Pipeline) runProtected(ctx context.Context, op func(context.Context) error) error {
	defer p.throttle.Release()
	return op(ctx)
}
