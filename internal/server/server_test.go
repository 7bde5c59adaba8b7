package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nulzo/homework-helper-api/internal/config"
	"github.com/nulzo/homework-helper-api/internal/gateway"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/nulzo/homework-helper-api/internal/server"
	"github.com/nulzo/homework-helper-api/internal/store/model"
	"github.com/nulzo/homework-helper-api/pkg/api"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubService struct{}

func (stubService) RegisterProvider(llm.Provider) {}

func (stubService) Process(ctx context.Context, req *api.HomeworkRequest) (*api.HomeworkResponse, error) {
	return &api.HomeworkResponse{Output: "stub", ModelUsed: req.APIChoice}, nil
}

func (stubService) History(context.Context, int) ([]model.RequestLog, error) {
	return []model.RequestLog{}, nil
}

func (stubService) Stats(context.Context, int) ([]model.DailyStats, error) {
	return []model.DailyStats{}, nil
}

func newTestServer(cfg *config.Config) *server.Server {
	var svc gateway.Service = stubService{}
	return server.New(cfg, zap.NewNop(), svc)
}

func baseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080", Env: "test"},
		Auth:   config.AuthConfig{Username: "user", Password: "password123"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func TestRoot(t *testing.T) {
	srv := newTestServer(baseConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AI Homework Helper Backend is running!")
}

func TestCORS_AllowedOriginEchoed(t *testing.T) {
	srv := newTestServer(baseConfig())

	req := httptest.NewRequest("OPTIONS", "/process_homework", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnknownOriginNotEchoed(t *testing.T) {
	srv := newTestServer(baseConfig())

	req := httptest.NewRequest("OPTIONS", "/process_homework", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBasicAuthGate(t *testing.T) {
	cfg := baseConfig()
	cfg.Auth.Required = true
	srv := newTestServer(cfg)

	req := httptest.NewRequest("GET", "/v1/requests/recent", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/v1/requests/recent", nil)
	req.SetBasicAuth("user", "password123")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
