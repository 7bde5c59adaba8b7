package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Problem implements RFC 9457
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`

	Log error `json:"-"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	type Alias Problem

	data := make(map[string]interface{})

	for k, v := range p.Extensions {
		data[k] = v
	}

	stdJSON, _ := json.Marshal(Alias(*p))
	_ = json.Unmarshal(stdJSON, &data)

	return json.Marshal(data)
}

type ProblemOption func(*Problem)

// NewProblem creates a generic Problem
func NewProblem(status int, title, detail string, opts ...ProblemOption) *Problem {
	p := &Problem{
		Type:       "about:blank", // Default as per RFC
		Title:      title,
		Status:     status,
		Detail:     detail,
		Extensions: make(map[string]interface{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithExtension adds a custom key-value pair to the response
func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *Problem) {
		p.Extensions[key] = value
	}
}

// WithLog attaches an internal error for server-side logging
func WithLog(err error) ProblemOption {
	return func(p *Problem) {
		p.Log = err
	}
}

// WithType sets the RFC "type" URI
func WithType(uri string) ProblemOption {
	return func(p *Problem) {
		p.Type = uri
	}
}

// ValidationError creates a rich validation error from a field->message map.
func ValidationError(validationErrors map[string]string) *Problem {
	return NewProblem(
		http.StatusBadRequest,
		"Validation Error",
		"One or more fields failed validation",
		WithExtension("errors", validationErrors),
	)
}

// UnauthorizedError creates a 401 for the placeholder credential gate.
func UnauthorizedError(detail string) *Problem {
	return NewProblem(http.StatusUnauthorized, "Unauthorized", detail)
}

// ConfigError signals a missing provider credential. The provider never gets
// called when this is raised.
func ConfigError(provider, detail string) *Problem {
	return NewProblem(
		http.StatusInternalServerError,
		"Provider Not Configured",
		detail,
		WithExtension("provider", provider),
	)
}

// TransportError signals a network-level failure reaching the upstream
// provider (DNS, connection refused, timeout). Never retried.
func TransportError(provider, detail string, err error) *Problem {
	return NewProblem(
		http.StatusServiceUnavailable,
		"Upstream Unreachable",
		detail,
		WithExtension("provider", provider),
		WithLog(err),
	)
}

// UpstreamError forwards a non-success upstream status and body verbatim.
func UpstreamError(provider string, status int, body string, err error) *Problem {
	return NewProblem(
		status,
		"Upstream Provider Error",
		body,
		WithExtension("provider", provider),
		WithLog(err),
	)
}

// InternalError creates a catch-all 500.
func InternalError(detail string, err error) *Problem {
	return NewProblem(http.StatusInternalServerError, "Internal Server Error", detail, WithLog(err))
}
