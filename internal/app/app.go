package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/hairwhere/hairwhere/internal/config"
	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/usecase"
)

// UseCases groups the business logic served by the HTTP API.
type UseCases struct {
	Photo   usecase.PhotoUseCase
	Comment usecase.CommentUseCase
	Like    usecase.LikeUseCase
	User    usecase.UserUseCase
}

// Database is the part of the database client the app needs.
type Database interface {
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	Config            *config.Config
	logger            *slog.Logger
	db                Database
	useCases          UseCases
	activityUseCase   usecase.ActivityUseCase
	activityPublisher ports.ActivityPublisher
	activityConsumer  ports.ActivityConsumer
	uploadLimiter     chan struct{}
	closers           []io.Closer
}

// NewApp assembles the application. activityConsumer may be nil when no
// message broker is configured; worker mode then refuses to start.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db Database,
	useCases UseCases,
	activityUseCase usecase.ActivityUseCase,
	activityPublisher ports.ActivityPublisher,
	activityConsumer ports.ActivityConsumer,
	uploadLimiter chan struct{},
	closers ...io.Closer,
) *App {
	return &App{
		Config:            cfg,
		logger:            logger,
		db:                db,
		useCases:          useCases,
		activityUseCase:   activityUseCase,
		activityPublisher: activityPublisher,
		activityConsumer:  activityConsumer,
		uploadLimiter:     uploadLimiter,
		closers:           closers,
	}
}

// LoggerIns returns the application logger.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run starts the app in "server" or "worker" mode and blocks until SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = runServer(ctx, a)
	case "worker":
		err = runWorker(ctx, a)
	default:
		err = fmt.Errorf("unknown mode %q (use 'server' or 'worker')", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	if err != nil {
		return err
	}

	a.logger.Info("stopped gracefully")
	return nil
}

// Shutdown closes the broker connection, the blob client and the database.
func (a *App) Shutdown() error {
	var errs []error

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
