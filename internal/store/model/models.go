package model

import "time"

// Dispatch outcomes as persisted in request logs.
const (
	OutcomeSuccess        = "success"
	OutcomeConfigError    = "config_error"
	OutcomeTransportError = "transport_error"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeInternalError  = "internal_error"
)

// RequestLog captures one homework dispatch for the operator history surface.
// It carries no user content; only routing and outcome metadata.
type RequestLog struct {
	ID         string    `db:"id" json:"id"`
	Provider   string    `db:"provider" json:"provider"`
	ModelID    string    `db:"model_id" json:"model_id"`
	Outcome    string    `db:"outcome" json:"outcome"`
	StatusCode int       `db:"status_code" json:"status_code"`
	LatencyMS  int64     `db:"latency_ms" json:"latency_ms"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// DailyStats is an aggregate over request logs grouped by calendar day.
type DailyStats struct {
	Day          string  `db:"day" json:"day"`
	Requests     int     `db:"requests" json:"requests"`
	Failures     int     `db:"failures" json:"failures"`
	AvgLatencyMS float64 `db:"avg_latency_ms" json:"avg_latency_ms"`
}
