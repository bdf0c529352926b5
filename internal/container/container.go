package container

import (
	"log/slog"

	"gorm.io/gorm"

	"kleincompress/internal/app/concurrency"
	"kleincompress/internal/compression"
	"kleincompress/internal/config"
	compressionDomain "kleincompress/internal/domain/compression"
	preferencesDomain "kleincompress/internal/domain/preferences"
	statisticsDomain "kleincompress/internal/domain/statistics"
	"kleincompress/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger

	pool *concurrency.WorkerPool

	// Services
	compressor         compressionDomain.Compressor
	preferencesRepo    preferencesDomain.Repository
	compressionService compressionDomain.Service
	statisticsService  statisticsDomain.Service
}

// New creates a new dependency injection container
func New(cfg *config.Config, db *gorm.DB) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		config: cfg,
		db:     db,
		logger: logger,
	}

	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// initServices initializes all services with their dependencies
func (c *Container) initServices() error {
	pool, err := concurrency.NewWorkerPool(c.config.Compression.MaxWorkers, c.config.Compression.MaxQueued, c.logger)
	if err != nil {
		return err
	}
	c.pool = pool

	// Create infrastructure services
	c.compressor = compression.NewCompressor(c.logger)
	c.preferencesRepo = &PreferencesRepositoryAdapter{service: services.NewPreferencesService(c.db)}
	c.statisticsService = &StatisticsServiceImpl{service: services.NewStatisticsService(c.db)}

	// Create domain services
	c.compressionService = &CompressionServiceImpl{
		compressor: c.compressor,
		pool:       c.pool,
		prefsRepo:  c.preferencesRepo,
		stats:      c.statisticsService,
		logger:     c.logger,
	}

	c.logger.Info("Services initialized", "max_workers", c.pool.Stats().MaxWorkers)
	return nil
}

// GetCompressionService returns the compression service
func (c *Container) GetCompressionService() compressionDomain.Service {
	return c.compressionService
}

// GetStatisticsService returns the statistics service
func (c *Container) GetStatisticsService() statisticsDomain.Service {
	return c.statisticsService
}

// GetPreferencesRepository returns the preferences repository
func (c *Container) GetPreferencesRepository() preferencesDomain.Repository {
	return c.preferencesRepo
}

// GetWorkerPool returns the compression worker pool
func (c *Container) GetWorkerPool() *concurrency.WorkerPool {
	return c.pool
}

// Close releases the worker pool.
func (c *Container) Close() {
	c.pool.Release()
}
