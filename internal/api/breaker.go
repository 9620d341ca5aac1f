package api

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// breakerTransport trips after a run of transport-level failures so a dead
// backend fails fast instead of stacking timeouts. HTTP error statuses are
// responses, not breaker failures.
type breakerTransport struct {
	base http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerTransport(base http.RoundTripper) *breakerTransport {
	return &breakerTransport{
		base: base,
		cb: gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
			Name:    "shopease-backend",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.cb.Execute(func() (*http.Response, error) {
		return t.base.RoundTrip(req)
	})
}
