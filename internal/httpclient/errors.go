package httpclient

import "fmt"

// UpstreamError represents a non-success HTTP status returned by an upstream
// service. The body is kept verbatim so the caller can forward it.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d from %s", e.StatusCode, e.URL)
}

// TransportError represents a network-level failure reaching an upstream
// service: DNS resolution, connection refused, TLS failure, or timeout.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error reaching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
