package application

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"net/http"

	"gorm.io/gorm"

	"kleincompress/internal/config"
	"kleincompress/internal/container"
	"kleincompress/internal/database"
	"kleincompress/internal/transport"
)

// newContainer is replaced in tests to exercise startup failures.
var newContainer = container.New

// App owns the service lifecycle: database, container and HTTP server.
type App struct {
	config    *config.Config
	assets    fs.FS
	db        *gorm.DB
	container *container.Container
	server    *http.Server
}

// New creates an application. assets holds the browser UI and may be nil.
func New(cfg *config.Config, assets fs.FS) *App {
	return &App{config: cfg, assets: assets}
}

// Start opens the database and wires the services and HTTP handler.
func (a *App) Start() error {
	cfg := a.config

	db, err := database.Initialize(cfg.Database.Path, cfg.Logger)
	if err != nil {
		return NewStartupError("database", err)
	}
	a.db = db

	c, err := newContainer(cfg, db)
	if err != nil {
		if closeErr := database.Close(db); closeErr != nil {
			cfg.Logger.Warn("Failed to close database", "error", closeErr)
		}
		return NewStartupError("container", err)
	}
	a.container = c

	sqlDB, err := db.DB()
	if err != nil {
		a.close()
		return NewStartupError("database", err)
	}

	handler := transport.NewServer(cfg, transport.Services{
		Compression: c.GetCompressionService(),
		Statistics:  c.GetStatisticsService(),
		Preferences: c.GetPreferencesRepository(),
		Database:    sqlDB,
	}, a.assets)

	a.server = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	cfg.Logger.Info("Application initialized",
		"address", cfg.Server.Address,
		"database_path", cfg.Database.Path,
		"max_upload_bytes", cfg.Upload.MaxSizeBytes,
		"preferences_updates", cfg.Server.AdminKey != "")
	return nil
}

// Handler returns the HTTP handler built by Start.
func (a *App) Handler() http.Handler {
	if a.server == nil {
		return nil
	}
	return a.server.Handler
}

// Run starts the application and serves on the configured address until
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", a.config.Server.Address)
	if err != nil {
		a.close()
		return NewStartupError("listen", err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully and releases resources.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	if a.server == nil {
		ln.Close()
		return ErrNotStarted
	}
	defer a.close()

	logger := a.config.Logger
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", ln.Addr().String())
		errCh <- a.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	return nil
}

func (a *App) close() {
	if a.container != nil {
		a.container.Close()
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.config.Logger.Warn("Failed to close database", "error", err)
		}
	}
}
