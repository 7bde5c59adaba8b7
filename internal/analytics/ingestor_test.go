package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nulzo/homework-helper-api/internal/analytics"
	"github.com/nulzo/homework-helper-api/internal/store"
	"github.com/nulzo/homework-helper-api/internal/store/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu   sync.Mutex
	logs []*model.RequestLog
}

func (f *fakeRepo) Requests() store.RequestRepository { return f }
func (f *fakeRepo) Close() error                      { return nil }

func (f *fakeRepo) Log(ctx context.Context, log *model.RequestLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeRepo) GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error) {
	return nil, nil
}

func (f *fakeRepo) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	return nil, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.logs)
}

func TestIngestor_FlushOnStop(t *testing.T) {
	repo := &fakeRepo{}
	ing := analytics.NewIngestor(zap.NewNop(), repo)

	ing.Start(context.Background())

	for i := 0; i < 3; i++ {
		ing.Log(&model.RequestLog{ID: "req", Provider: "gemini", Outcome: model.OutcomeSuccess})
	}
	ing.Stop()

	assert.Eventually(t, func() bool {
		return repo.count() == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNopIngestor(t *testing.T) {
	var ing analytics.Ingestor = analytics.NopIngestor{}
	ing.Start(context.Background())
	ing.Log(&model.RequestLog{ID: "req"})
	ing.Stop()
}
