package transport

import (
	"context"

	compressionDomain "kleincompress/internal/domain/compression"
	preferencesDomain "kleincompress/internal/domain/preferences"
	statisticsDomain "kleincompress/internal/domain/statistics"
)

// Pinger reports whether the statistics database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services are the domain services the HTTP layer dispatches to.
type Services struct {
	Compression compressionDomain.Service
	Statistics  statisticsDomain.Service
	Preferences preferencesDomain.Repository
	Database    Pinger
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	Records []statisticsDomain.Record `json:"records"`
	Count   int                       `json:"count"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
