package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/hairwhere/hairwhere/internal/adapter/storage/blob"
	"github.com/hairwhere/hairwhere/internal/config"
)

const publicBaseURL = "https://storage.googleapis.com"

// Client stores photo images in a Google Cloud Storage bucket.
type Client struct {
	cl         *storage.Client
	bucketName string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewGCSClient uses GCS_CREDENTIALS_FILE when set and application default credentials otherwise.
func NewGCSClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}

	cl, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	logger.Info("GCS client initialized", "bucket", cfg.GCSBucketName)
	return &Client{
		cl:         cl,
		bucketName: cfg.GCSBucketName,
		timeout:    50 * time.Second,
		logger:     logger,
	}, nil
}

// UploadFile writes the object and returns its public URL.
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	wc := c.cl.Bucket(c.bucketName).Object(objectKey).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, fileContent); err != nil {
		_ = wc.Close()
		c.logger.Error("failed to write object", "key", objectKey, "error", err)
		return "", fmt.Errorf("write %s to bucket %s: %w", objectKey, c.bucketName, err)
	}
	if err := wc.Close(); err != nil {
		c.logger.Error("failed to finalize object", "key", objectKey, "error", err)
		return "", fmt.Errorf("close writer for %s: %w", objectKey, err)
	}

	c.logger.Info("object uploaded",
		"key", objectKey,
		"content_type", contentType,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return blob.ObjectURL(publicBaseURL, c.bucketName, objectKey), nil
}

// DeleteFile removes the object behind a URL returned by UploadFile.
// An already missing object is not an error.
func (c *Client) DeleteFile(ctx context.Context, fileURL string) error {
	key, err := blob.ObjectKey(publicBaseURL, c.bucketName, fileURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err = c.cl.Bucket(c.bucketName).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		c.logger.Error("failed to delete object", "key", key, "error", err)
		return fmt.Errorf("delete %s from bucket %s: %w", key, c.bucketName, err)
	}

	c.logger.Info("object deleted", "key", key)
	return nil
}

func (c *Client) Close() error {
	return c.cl.Close()
}
