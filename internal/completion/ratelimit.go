package completion

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	next    Client
	limiter *rate.Limiter
}

// WithRateLimit bounds the call rate to the upstream. A non-positive rate
// returns next unchanged.
func WithRateLimit(next Client, perSecond float64, burst int) Client {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (r *rateLimited) Complete(ctx context.Context, req Request) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", &UpstreamError{Provider: "ratelimit", Kind: KindTransport, Err: err}
	}
	return r.next.Complete(ctx, req)
}
