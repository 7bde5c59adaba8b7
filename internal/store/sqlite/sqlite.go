package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/homework-helper-api/internal/store"
	"github.com/nulzo/homework-helper-api/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db *sqlx.DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) Requests() store.RequestRepository {
	return &requestRepo{db: r.db}
}

type requestRepo struct {
	db DB
}

func (r *requestRepo) Log(ctx context.Context, log *model.RequestLog) error {
	query := `
		INSERT INTO request_logs (id, provider, model_id, outcome, status_code, latency_ms, created_at)
		VALUES (:id, :provider, :model_id, :outcome, :status_code, :latency_ms, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}
	return nil
}

func (r *requestRepo) GetRecent(ctx context.Context, limit int) ([]model.RequestLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var logs []model.RequestLog
	query := `
		SELECT id, provider, model_id, outcome, status_code, latency_ms, created_at
		FROM request_logs
		ORDER BY created_at DESC
		LIMIT ?`

	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to select recent request logs: %w", err)
	}
	return logs, nil
}

func (r *requestRepo) GetDailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	if days <= 0 {
		days = 7
	}

	var stats []model.DailyStats
	query := `
		SELECT
			date(created_at) AS day,
			COUNT(*) AS requests,
			SUM(CASE WHEN outcome != 'success' THEN 1 ELSE 0 END) AS failures,
			AVG(latency_ms) AS avg_latency_ms
		FROM request_logs
		WHERE created_at >= date('now', ?)
		GROUP BY date(created_at)
		ORDER BY day DESC`

	offset := fmt.Sprintf("-%d days", days)
	if err := r.db.SelectContext(ctx, &stats, query, offset); err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}
	return stats, nil
}
