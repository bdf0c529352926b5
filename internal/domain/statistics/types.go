package statistics

import (
	"context"
	"time"
)

// AppStats represents application usage statistics
type AppStats struct {
	TotalFilesCompressed   int64 `json:"total_files_compressed"`
	TotalDataSaved         int64 `json:"total_data_saved"`
	SessionFilesCompressed int64 `json:"session_files_compressed"`
	SessionDataSaved       int64 `json:"session_data_saved"`
}

// Record is one finished compression job.
type Record struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	Kind           string    `json:"kind"`
	MIMEType       string    `json:"mime_type"`
	OriginalSize   int64     `json:"original_size"`
	CompressedSize int64     `json:"compressed_size"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	DurationMillis int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// Service defines the interface for statistics operations
type Service interface {
	Record(ctx context.Context, record Record) error
	GetStats(ctx context.Context) (*AppStats, error)
	History(ctx context.Context, limit int) ([]Record, error)
}
