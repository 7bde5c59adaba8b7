package store

import (
	"context"

	"github.com/nulzo/homework-helper-api/internal/store/model"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Requests() RequestRepository

	Close() error
}

type RequestRepository interface {
	// Log stores a completed dispatch.
	Log(ctx context.Context, log *model.RequestLog) error
	// GetRecent returns the last N dispatch logs, newest first.
	GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error)
	// GetDailyStats returns aggregated stats grouped by day.
	GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error)
}
