package gateway

import "github.com/nulzo/homework-helper-api/internal/llm"

// Credentials is the process-wide, read-only credential set, keyed by provider
// type. It is built once at startup and never mutated. An absent or empty
// secret is a valid state: the provider is simply unavailable and dispatch
// fails with a configuration error before any network call.
type Credentials map[string]string

// NewCredentials extracts the secrets from the provider configurations.
func NewCredentials(providers []llm.ProviderConfig) Credentials {
	creds := make(Credentials, len(providers))
	for _, p := range providers {
		creds[p.Type] = p.APIKey
	}
	return creds
}

// Lookup returns the secret for a provider type. The second return is false
// when the secret is absent or empty.
func (c Credentials) Lookup(providerType string) (string, bool) {
	secret, ok := c[providerType]
	if !ok || secret == "" {
		return "", false
	}
	return secret, true
}
