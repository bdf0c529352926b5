package concurrency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"

	"kleincompress/internal/common"
)

// NewWorkerPool creates a new worker pool instance. A non-positive
// maxWorkers selects the CPU count capped at common.MaxConcurrencyLimit.
// maxQueued limits how many callers may wait for a free worker; zero
// means callers always wait.
func NewWorkerPool(maxWorkers, maxQueued int, logger *slog.Logger) (*WorkerPool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if maxWorkers <= 0 {
		maxWorkers = OptimalWorkerCount()
	}

	opts := []ants.Option{}
	if maxQueued > 0 {
		opts = append(opts, ants.WithMaxBlockingTasks(maxQueued))
	}

	pool, err := ants.NewPool(maxWorkers, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &WorkerPool{
		pool:       pool,
		logger:     logger,
		maxWorkers: maxWorkers,
		maxQueued:  maxQueued,
	}, nil
}

// OptimalWorkerCount determines the default number of workers
func OptimalWorkerCount() int {
	maxConcurrency := runtime.NumCPU()
	if maxConcurrency > common.MaxConcurrencyLimit {
		maxConcurrency = common.MaxConcurrencyLimit
	}
	return maxConcurrency
}

// Run executes job on a pool worker and waits for it to return. The job is
// skipped when ctx is done before a worker picks it up. A panic inside the
// job is returned as an error.
func (wp *WorkerPool) Run(ctx context.Context, job Job) error {
	done := make(chan error, 1)

	err := wp.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				wp.logger.Error("Worker recovered from panic", "panic", r)
				done <- fmt.Errorf("job panicked: %v", r)
			}
		}()

		// Check for context cancellation
		select {
		case <-ctx.Done():
			done <- ctx.Err()
			return
		default:
		}

		done <- job(ctx)
	})
	if err != nil {
		if errors.Is(err, ants.ErrPoolOverload) {
			wp.logger.Warn("Worker pool overloaded", "running", wp.pool.Running(), "waiting", wp.pool.Waiting())
			return common.ErrPoolOverloaded
		}
		return fmt.Errorf("failed to submit job: %w", err)
	}

	return <-done
}

// Stats returns current pool utilisation.
func (wp *WorkerPool) Stats() Stats {
	return Stats{
		MaxWorkers: wp.maxWorkers,
		Running:    wp.pool.Running(),
		Waiting:    wp.pool.Waiting(),
		Free:       wp.pool.Free(),
	}
}

// Release stops the pool's workers.
func (wp *WorkerPool) Release() {
	wp.pool.Release()
}
