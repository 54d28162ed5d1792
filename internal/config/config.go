package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StorageProviderS3  = "s3"
	StorageProviderGCS = "gcs"
)

// Config holds every setting of the service. Values come from the environment,
// optionally seeded from a .env file.
type Config struct {
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	UploadConcurrency   int    `env:"UPLOAD_CONCURRENCY" envDefault:"5"`
	CommentDeletePolicy string `env:"COMMENT_DELETE_POLICY" envDefault:"cascade"`

	Kakao struct {
		ClientID     string        `env:"KAKAO_CLIENT_ID"`
		ClientSecret string        `env:"KAKAO_CLIENT_SECRET"`
		RedirectURI  string        `env:"KAKAO_REDIRECT_URI"`
		AuthURL      string        `env:"KAKAO_AUTH_URL" envDefault:"https://kauth.kakao.com/oauth/authorize"`
		TokenURL     string        `env:"KAKAO_TOKEN_URL" envDefault:"https://kauth.kakao.com/oauth/token"`
		APIURL       string        `env:"KAKAO_API_URL" envDefault:"https://kapi.kakao.com"`
		Timeout      time.Duration `env:"KAKAO_TIMEOUT" envDefault:"10s"`
	}

	StorageProvider string `env:"STORAGE_PROVIDER" envDefault:"s3"`

	// MinIO or any other S3-compatible endpoint
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`
	MinioPublicURL       string `env:"MINIO_PUBLIC_URL"`

	GCSBucketName      string `env:"GCS_BUCKET_NAME"`
	GCSCredentialsFile string `env:"GCS_CREDENTIALS_FILE"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"hairwhere_activity"`
	}
}

// LoadConfig reads the configuration from the environment.
// A .env file in the working directory is loaded first when present.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings whose requirement depends on other settings.
func (c *Config) Validate() error {
	switch c.StorageProvider {
	case StorageProviderS3:
		if c.MinioEndpoint == "" || c.MinioAccessKeyID == "" || c.MinioSecretAccessKey == "" || c.MinioBucketName == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY and MINIO_BUCKET_NAME must be set for storage provider %q", c.StorageProvider)
		}
	case StorageProviderGCS:
		if c.GCSBucketName == "" {
			return fmt.Errorf("GCS_BUCKET_NAME must be set for storage provider %q", c.StorageProvider)
		}
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q (use %q or %q)", c.StorageProvider, StorageProviderS3, StorageProviderGCS)
	}

	if c.UploadConcurrency <= 0 {
		return fmt.Errorf("UPLOAD_CONCURRENCY must be positive, got %d", c.UploadConcurrency)
	}
	return nil
}
