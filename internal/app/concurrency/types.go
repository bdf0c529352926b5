package concurrency

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

// Job is a single unit of work executed by a pool worker.
type Job func(ctx context.Context) error

// WorkerPool bounds how many compression jobs run at once
type WorkerPool struct {
	pool       *ants.Pool
	logger     *slog.Logger
	maxWorkers int
	maxQueued  int
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	MaxWorkers int `json:"max_workers"`
	Running    int `json:"running"`
	Waiting    int `json:"waiting"`
	Free       int `json:"free"`
}
