package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nulzo/homework-helper-api/internal/httpclient"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/nulzo/homework-helper-api/internal/platform/logger"
	"go.uber.org/zap"
)

// Registered under "llama": the request enumeration names the model family,
// while Groq is just the OpenAI-chat-compatible host serving it.
const pn string = "llama"

// Sentinel is returned as ordinary output when the upstream answers 200 with
// a body we cannot extract text from. Same soft-failure policy as the Gemini
// adapter.
const Sentinel = "Error: Could not get a valid response from Llama AI."

const (
	defaultModel = "llama-3.3-70b-versatile"
	maxTokens    = 1024
	temperature  = 0.7
)

func init() {
	llm.Register(pn, NewAdapter)
}

type Adapter struct {
	config llm.ProviderConfig
	client *http.Client
}

func NewAdapter(config llm.ProviderConfig) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.groq.com/openai/v1"
	}
	if config.Model == "" {
		config.Model = defaultModel
	}
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (a *Adapter) Name() string  { return a.config.ID }
func (a *Adapter) Type() string  { return pn }
func (a *Adapter) Model() string { return a.config.Model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}
type chatChoice struct {
	Index        int          `json:"index"`
	Message      *chatMessage `json:"message"`
	FinishReason string       `json:"finish_reason"`
}
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Generate performs a single chat-completions call with bearer auth.
func (a *Adapter) Generate(ctx context.Context, studyContent, prompt string) (string, error) {
	body := chatRequest{
		Model: a.config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: llm.ComposePrompt(studyContent, prompt)},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + a.config.APIKey,
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(a.config.BaseURL, "/"))

	var resp chatResponse
	if err := httpclient.SendRequest(ctx, a.client, "POST", url, headers, body, &resp); err != nil {
		var transportErr *httpclient.TransportError
		var upstreamErr *httpclient.UpstreamError
		if errors.As(err, &transportErr) || errors.As(err, &upstreamErr) {
			return "", err
		}
		logger.Warn("Llama response body did not decode", zap.Error(err))
		return Sentinel, nil
	}

	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil {
		return resp.Choices[0].Message.Content, nil
	}

	logger.Warn("Llama returned an unexpected payload shape",
		zap.Int("choices", len(resp.Choices)),
	)
	return Sentinel, nil
}
