package gemini

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

const pn string = "gemini"

// Sentinel is returned as ordinary output when the upstream answers 200 with
// a body we cannot extract text from. Deliberate soft-failure policy: the
// caller still gets a 200-shaped homework response for this case.
const Sentinel = "Error: Could not get a valid response from Gemini AI."

const defaultModel = "gemini-2.0-flash"

func init() {
	llm.Register(pn, NewAdapter)
}

type Adapter struct {
	config llm.ProviderConfig
	client *http.Client
}

func NewAdapter(config llm.ProviderConfig) (llm.Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
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

type GeminiPart struct {
	Text string `json:"text,omitempty"`
}
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}
type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// Generate performs a single-turn generateContent call. The secret travels as
// a query credential, which is the Gemini wire contract.
func (a *Adapter) Generate(ctx context.Context, studyContent, prompt string) (string, error) {
	body := GeminiRequest{
		Contents: []GeminiContent{{
			Role:  "user",
			Parts: []GeminiPart{{Text: llm.ComposePrompt(studyContent, prompt)}},
		}},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(a.config.BaseURL, "/"),
		a.config.Model,
		a.config.APIKey,
	)

	var gResp GeminiResponse
	if err := httpclient.SendRequest(ctx, a.client, "POST", url, nil, body, &gResp); err != nil {
		var transportErr *httpclient.TransportError
		var upstreamErr *httpclient.UpstreamError
		if errors.As(err, &transportErr) || errors.As(err, &upstreamErr) {
			return "", err
		}
		// 200 with an undecodable body is a malformed payload, not a failure
		logger.Warn("Gemini response body did not decode", zap.Error(err))
		return Sentinel, nil
	}

	if len(gResp.Candidates) > 0 && len(gResp.Candidates[0].Content.Parts) > 0 {
		return gResp.Candidates[0].Content.Parts[0].Text, nil
	}

	logger.Warn("Gemini returned an unexpected payload shape",
		zap.Int("candidates", len(gResp.Candidates)),
	)
	return Sentinel, nil
}
