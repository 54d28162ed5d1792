package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

// runWorker consumes activity events and records notifications until ctx is cancelled.
func runWorker(ctx context.Context, a *App) error {
	if a.activityConsumer == nil {
		return errors.New("worker mode needs RABBITMQ_URL")
	}

	handle := func(ctx context.Context, payload payloads.ActivityPayload) error {
		if err := a.activityUseCase.HandleActivity(ctx, payload); err != nil {
			a.logger.Error("failed to handle activity",
				"type", payload.Type,
				"photo_id", payload.PhotoID,
				"error", err,
			)
			return err
		}
		a.logger.Debug("activity handled", "type", payload.Type, "photo_id", payload.PhotoID)
		return nil
	}

	if err := a.activityConsumer.StartConsumingActivities(ctx, handle); err != nil {
		return fmt.Errorf("start consuming activities: %w", err)
	}
	a.logger.Info("worker started, waiting for activity events")

	<-ctx.Done()
	a.logger.Info("worker stopping")
	return nil
}
