package di

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hairwhere/hairwhere/internal/adapter/kakao"
	"github.com/hairwhere/hairwhere/internal/adapter/storage/gcs"
	"github.com/hairwhere/hairwhere/internal/adapter/storage/minio"
	"github.com/hairwhere/hairwhere/internal/app"
	"github.com/hairwhere/hairwhere/internal/config"
	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/database/client"
	"github.com/hairwhere/hairwhere/internal/database/postgres"
	"github.com/hairwhere/hairwhere/internal/database/storage"
	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/logger"
	"github.com/hairwhere/hairwhere/internal/rabbitmq"
	"github.com/hairwhere/hairwhere/internal/usecase"
)

// BuildApp wires every dependency and returns a ready App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. configuration and logging
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	deletePolicy, err := domain.ParseCommentDeletePolicy(cfg.CommentDeletePolicy)
	if err != nil {
		return nil, err
	}

	// 2. PostgreSQL
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. storages
	userStorage := postgres.NewGormUserStorage(dbClient.Gorm, slogger)
	photoStorage := postgres.NewPhotoStorage(dbClient.Gorm, slogger)
	commentStorage := postgres.NewCommentStorage(dbClient.Gorm, slogger)
	likeStorage := postgres.NewLikeStorage(dbClient.Gorm, slogger)
	notificationStorage := storage.NewNotificationStorage(dbClient.DB, slogger)

	// 4. external services
	identity := kakao.NewKakaoAPIClient(cfg, slogger)

	var closers []io.Closer
	fileStorage, fileCloser, err := newFileStorage(ctx, cfg, slogger)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}
	if fileCloser != nil {
		closers = append(closers, fileCloser)
	}

	// 5. activity feed
	var (
		publisher ports.ActivityPublisher = rabbitmq.NewNoopPublisher(slogger)
		consumer  ports.ActivityConsumer
	)
	if cfg.RabbitMQ.RabbitMQURL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		publisher = rabbitMQClient
		consumer = rabbitMQClient
		closers = append(closers, rabbitMQClient)
	} else {
		slogger.Warn("RABBITMQ_URL is empty, activity events are only logged")
	}

	// 6. usecases
	useCases := app.UseCases{
		Photo:   usecase.NewPhotoUseCase(photoStorage, fileStorage, slogger),
		Comment: usecase.NewCommentUseCase(commentStorage, photoStorage, publisher, deletePolicy, slogger),
		Like:    usecase.NewLikeUseCase(likeStorage, publisher, slogger),
		User:    usecase.NewUserUseCase(identity, userStorage, notificationStorage, slogger),
	}
	activityUseCase := usecase.NewActivityUseCase(notificationStorage, slogger)

	// 7. bound on concurrent uploads
	uploadLimiter := make(chan struct{}, cfg.UploadConcurrency)

	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		useCases,
		activityUseCase,
		publisher,
		consumer,
		uploadLimiter,
		closers...,
	)

	slogger.Info("all dependencies initialized")
	return application, nil
}

// newFileStorage picks the blob backend named by STORAGE_PROVIDER.
func newFileStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (usecase.FileStorage, io.Closer, error) {
	switch cfg.StorageProvider {
	case config.StorageProviderS3:
		s3Client, err := minio.NewMinioClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return s3Client, nil, nil
	case config.StorageProviderGCS:
		gcsClient, err := gcs.NewGCSClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return gcsClient, gcsClient, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}
