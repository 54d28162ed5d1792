package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

// LikeUseCase toggles likes.
type LikeUseCase interface {
	ToggleLike(ctx context.Context, user *domain.User, photoID int64) (*domain.LikeResult, error)
}

type likeUseCase struct {
	likeStorage ports.LikeStorage
	publisher   ports.ActivityPublisher
	logger      *slog.Logger
}

func NewLikeUseCase(likeStorage ports.LikeStorage, publisher ports.ActivityPublisher, logger *slog.Logger) LikeUseCase {
	return &likeUseCase{likeStorage: likeStorage, publisher: publisher, logger: logger}
}

func (uc *likeUseCase) ToggleLike(ctx context.Context, user *domain.User, photoID int64) (*domain.LikeResult, error) {
	if user == nil {
		return nil, fmt.Errorf("like requires an authenticated user: %w", domain.ErrUnauthorized)
	}

	toggle, err := uc.likeStorage.ToggleLike(ctx, user.ID, photoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: toggle like: %w", err)
	}

	result := &domain.LikeResult{
		PhotoID:   photoID,
		Liked:     toggle.Liked,
		LikeCount: toggle.LikeCount,
		Message:   "like removed",
	}
	if toggle.Liked {
		result.Message = "like added"
		publishActivity(ctx, uc.publisher, uc.logger, payloads.ActivityPayload{
			Type:            domain.NotificationLike,
			ActorUserID:     user.ID,
			ActorKakaoID:    user.KakaoID,
			ActorName:       user.NickName,
			RecipientUserID: toggle.OwnerUserID,
			PhotoID:         photoID,
			OccurredAt:      time.Now().UTC(),
		})
	}
	return result, nil
}
