package llm

import (
	"context"
	"fmt"
)

type ProviderName string

const (
	Gemini ProviderName = "gemini"
	Llama  ProviderName = "llama"
)

// Provider is the uniform capability contract every upstream adapter
// implements: submit a study-content/prompt pair, receive generated text or a
// typed failure. Adapters never leak provider-specific error shapes; callers
// see only *httpclient.TransportError, *httpclient.UpstreamError, or a soft
// success carrying the adapter's sentinel text.
type Provider interface {
	Name() string
	Type() string  // e.g., "gemini", "llama"
	Model() string // resolved upstream model identifier
	Generate(ctx context.Context, studyContent, prompt string) (string, error)
}

// ProviderConfig represents the configuration for a single AI provider.
type ProviderConfig struct {
	ID      string            `json:"id" yaml:"id" mapstructure:"id"`
	Type    string            `json:"type" yaml:"type" mapstructure:"type"`
	Name    string            `json:"name" yaml:"name" mapstructure:"name"`
	APIKey  string            `json:"api_key" yaml:"api_key" mapstructure:"api_key"`
	BaseURL string            `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	Model   string            `json:"model" yaml:"model" mapstructure:"model"`
	Config  map[string]string `json:"config" yaml:"config" mapstructure:"config"`
}

// ComposePrompt builds the single-turn user message both adapters send
// upstream. The exact concatenation is part of the contract with the
// frontend and must not change.
func ComposePrompt(studyContent, prompt string) string {
	return fmt.Sprintf("Study Content: %s\n\nUser Prompt: %s", studyContent, prompt)
}
