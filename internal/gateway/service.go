package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/homework-helper-api/internal/analytics"
	"github.com/nulzo/homework-helper-api/internal/httpclient"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/nulzo/homework-helper-api/internal/store"
	"github.com/nulzo/homework-helper-api/internal/store/model"
	"github.com/nulzo/homework-helper-api/pkg/api"
	"go.uber.org/zap"
)

// Service is the dispatch router: it selects an adapter from the closed
// provider enumeration, gates on credentials, invokes the adapter once, and
// maps the outcome onto the HTTP response contract. There is no fallback
// between providers and nothing is retried.
type Service interface {
	// RegisterProvider adds an adapter, keyed by its type.
	RegisterProvider(p llm.Provider)

	Process(ctx context.Context, req *api.HomeworkRequest) (*api.HomeworkResponse, error)
	History(ctx context.Context, limit int) ([]model.RequestLog, error)
	Stats(ctx context.Context, days int) ([]model.DailyStats, error)
}

type service struct {
	logger    *zap.Logger
	repo      store.Repository
	ingestor  analytics.Ingestor
	creds     Credentials
	mu        sync.RWMutex
	providers map[string]llm.Provider
}

func NewService(logger *zap.Logger, repo store.Repository, ingestor analytics.Ingestor, creds Credentials) Service {
	return &service{
		logger:    logger,
		repo:      repo,
		ingestor:  ingestor,
		creds:     creds,
		providers: make(map[string]llm.Provider),
	}
}

func (s *service) RegisterProvider(p llm.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[p.Type()] = p
}

func (s *service) Process(ctx context.Context, req *api.HomeworkRequest) (*api.HomeworkResponse, error) {
	choice := req.APIChoice

	s.mu.RLock()
	provider, ok := s.providers[choice]
	s.mu.RUnlock()

	if !ok {
		// the binding layer validates the enumeration, so this only fires if a
		// configured provider failed to construct at startup
		return nil, api.NewProblem(
			http.StatusBadRequest,
			"Unknown Provider",
			fmt.Sprintf("no provider registered for api_choice '%s'", choice),
		)
	}

	if _, ok := s.creds.Lookup(choice); !ok {
		s.logger.Error("Provider credential missing", zap.String("provider", choice))
		s.ingest(provider, model.OutcomeConfigError, http.StatusInternalServerError, 0)
		return nil, api.ConfigError(choice, fmt.Sprintf("%s API key not configured.", provider.Name()))
	}

	start := time.Now()
	output, err := provider.Generate(ctx, req.Study(), req.UserPrompt())
	latency := time.Since(start)

	if err != nil {
		return nil, s.classify(provider, err, latency)
	}

	s.ingest(provider, model.OutcomeSuccess, http.StatusOK, latency)

	return &api.HomeworkResponse{
		Output:    output,
		ModelUsed: choice,
	}, nil
}

// classify maps adapter failures onto the response contract: transport
// failures become 503, upstream statuses are forwarded verbatim, anything
// else is a 500.
func (s *service) classify(provider llm.Provider, err error, latency time.Duration) error {
	choice := provider.Type()

	var transportErr *httpclient.TransportError
	if errors.As(err, &transportErr) {
		s.logger.Warn("Upstream unreachable",
			zap.String("provider", choice),
			zap.Error(err),
		)
		s.ingest(provider, model.OutcomeTransportError, http.StatusServiceUnavailable, latency)
		return api.TransportError(choice, fmt.Sprintf("%s API request failed: %v", provider.Name(), transportErr.Err), err)
	}

	var upstreamErr *httpclient.UpstreamError
	if errors.As(err, &upstreamErr) {
		s.logger.Warn("Upstream API returned error",
			zap.String("provider", choice),
			zap.Int("status", upstreamErr.StatusCode),
		)
		s.ingest(provider, model.OutcomeUpstreamError, upstreamErr.StatusCode, latency)
		return api.UpstreamError(choice, upstreamErr.StatusCode, string(upstreamErr.Body), err)
	}

	s.logger.Error("Unexpected provider failure",
		zap.String("provider", choice),
		zap.Error(err),
	)
	s.ingest(provider, model.OutcomeInternalError, http.StatusInternalServerError, latency)
	return api.InternalError(fmt.Sprintf("An unexpected error occurred with %s.", provider.Name()), err)
}

func (s *service) ingest(provider llm.Provider, outcome string, status int, latency time.Duration) {
	s.ingestor.Log(&model.RequestLog{
		ID:         uuid.NewString(),
		Provider:   provider.Type(),
		ModelID:    provider.Model(),
		Outcome:    outcome,
		StatusCode: status,
		LatencyMS:  latency.Milliseconds(),
		CreatedAt:  time.Now(),
	})
}

func (s *service) History(ctx context.Context, limit int) ([]model.RequestLog, error) {
	if s.repo == nil {
		return []model.RequestLog{}, nil
	}
	return s.repo.Requests().GetRecent(ctx, limit)
}

func (s *service) Stats(ctx context.Context, days int) ([]model.DailyStats, error) {
	if s.repo == nil {
		return []model.DailyStats{}, nil
	}
	return s.repo.Requests().GetDailyStats(ctx, days)
}
