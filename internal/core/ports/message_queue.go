package ports

import (
	"context"

	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

// ActivityPublisher publishes like and comment events.
// Used by the usecases on the request path; failures must not fail the request.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, payload payloads.ActivityPayload) error
}

// ActivityConsumer is used by the worker to receive activity events.
type ActivityConsumer interface {
	// StartConsumingActivities registers handler and returns immediately.
	// A handler error requeues the message.
	StartConsumingActivities(ctx context.Context, handler func(context.Context, payloads.ActivityPayload) error) error
}
