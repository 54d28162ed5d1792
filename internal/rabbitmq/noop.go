package rabbitmq

import (
	"context"
	"log/slog"

	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

// NoopPublisher is used when RABBITMQ_URL is not configured.
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) PublishActivity(_ context.Context, payload payloads.ActivityPayload) error {
	p.logger.Debug("activity feed disabled, event dropped", "type", payload.Type, "photo_id", payload.PhotoID)
	return nil
}
