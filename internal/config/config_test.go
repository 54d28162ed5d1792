package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMinioEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("MINIO_BUCKET_NAME", "hairwhere")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hairwhere?sslmode=disable")
	setMinioEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "s3", cfg.StorageProvider)
	assert.Equal(t, 5, cfg.UploadConcurrency)
	assert.Equal(t, "cascade", cfg.CommentDeletePolicy)
	assert.Equal(t, "https://kauth.kakao.com/oauth/token", cfg.Kakao.TokenURL)
	assert.Equal(t, "hairwhere_activity", cfg.RabbitMQ.RabbitMQQueueName)
	assert.Empty(t, cfg.RabbitMQ.RabbitMQURL)
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	setMinioEnv(t)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateStorageProvider(t *testing.T) {
	cfg := &Config{StorageProvider: StorageProviderGCS, UploadConcurrency: 1}
	assert.Error(t, cfg.Validate())

	cfg.GCSBucketName = "hairwhere-photos"
	assert.NoError(t, cfg.Validate())

	cfg.StorageProvider = "ftp"
	assert.Error(t, cfg.Validate())
}
