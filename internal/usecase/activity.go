package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

// ActivityUseCase is run by the worker for every activity event.
type ActivityUseCase interface {
	HandleActivity(ctx context.Context, payload payloads.ActivityPayload) error
}

type activityUseCase struct {
	notifications ports.NotificationStorage
	logger        *slog.Logger
}

func NewActivityUseCase(notifications ports.NotificationStorage, logger *slog.Logger) ActivityUseCase {
	return &activityUseCase{notifications: notifications, logger: logger}
}

// HandleActivity records a notification for the photo owner. Events about a
// user's own photo and unknown event types are acknowledged and dropped.
func (uc *activityUseCase) HandleActivity(ctx context.Context, payload payloads.ActivityPayload) error {
	if payload.Type != domain.NotificationLike && payload.Type != domain.NotificationComment {
		uc.logger.Warn("ignoring activity of unknown type", "type", payload.Type)
		return nil
	}
	if payload.RecipientUserID == 0 || payload.RecipientUserID == payload.ActorUserID {
		uc.logger.Debug("ignoring self activity", "type", payload.Type, "photo_id", payload.PhotoID)
		return nil
	}

	n := &domain.Notification{
		RecipientID:  payload.RecipientUserID,
		ActorKakaoID: payload.ActorKakaoID,
		ActorName:    payload.ActorName,
		Type:         payload.Type,
		PhotoID:      payload.PhotoID,
		CommentID:    payload.CommentID,
		CreatedAt:    payload.OccurredAt,
	}
	if err := uc.notifications.SaveNotification(ctx, n); err != nil {
		return fmt.Errorf("usecase: record notification: %w", err)
	}
	return nil
}

// publishActivity never fails the caller; the feed is best effort.
func publishActivity(ctx context.Context, publisher ports.ActivityPublisher, logger *slog.Logger, payload payloads.ActivityPayload) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishActivity(ctx, payload); err != nil {
		logger.Warn("failed to publish activity", "type", payload.Type, "photo_id", payload.PhotoID, "error", err)
	}
}
