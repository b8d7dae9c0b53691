// Package pacer throttles example-driver producers using a token-bucket
// rate limiter from the ecosystem-standard library instead of a
// hand-rolled channel bucket. Only cmd/fibonacci's producer uses it;
// cmd/selectdemo staggers its producers with plain time.Sleep calls.
package pacer

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer wraps a rate.Limiter for use by a single producer goroutine.
type Pacer struct {
	limiter *rate.Limiter
}

// New returns a Pacer that allows ratePerSecond events per second, with
// bursts of up to burst events before throttling kicks in.
func New(ratePerSecond float64, burst int) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Wait blocks until the pacer's limiter admits one more event, or ctx is
// cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
