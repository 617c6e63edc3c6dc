package httpclient

import (
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	sharedTransport http.RoundTripper
	once            sync.Once
)

// Transport returns the process-wide traced transport. Every client built by
// this package shares its connection pool.
func Transport() http.RoundTripper {
	once.Do(func() {
		sharedTransport = otelhttp.NewTransport(&http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		})
	})
	return sharedTransport
}

// New creates an HTTP client over the shared transport. A zero timeout leaves
// deadlines to the request context.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: Transport(),
	}
}
