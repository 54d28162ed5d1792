package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

type commentUseCase struct {
	commentStorage ports.CommentStorage
	photoStorage   ports.PhotoStorage
	publisher      ports.ActivityPublisher
	deletePolicy   domain.CommentDeletePolicy
	logger         *slog.Logger
}

func NewCommentUseCase(
	commentStorage ports.CommentStorage,
	photoStorage ports.PhotoStorage,
	publisher ports.ActivityPublisher,
	deletePolicy domain.CommentDeletePolicy,
	logger *slog.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentStorage: commentStorage,
		photoStorage:   photoStorage,
		publisher:      publisher,
		deletePolicy:   deletePolicy,
		logger:         logger,
	}
}

func (uc *commentUseCase) CreateComment(ctx context.Context, user *domain.User, photoID int64, in CreateCommentInput) (*domain.CommentResponse, error) {
	if user == nil {
		return nil, fmt.Errorf("comment requires an authenticated user: %w", domain.ErrUnauthorized)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("comment content is empty: %w", domain.ErrValidation)
	}

	photo, err := uc.photoStorage.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: create comment: %w", err)
	}

	if in.ParentID != nil {
		parent, err := uc.commentStorage.GetCommentByID(ctx, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("usecase: parent comment: %w", err)
		}
		if parent.PhotoID != photoID {
			return nil, fmt.Errorf("parent comment %d is on photo %d, not %d: %w",
				parent.ID, parent.PhotoID, photoID, domain.ErrValidation)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("comment %d is already a reply: %w", parent.ID, domain.ErrValidation)
		}
	}

	comment := &domain.Comment{
		Content:   content,
		UserID:    user.ID,
		PhotoID:   photoID,
		ParentID:  in.ParentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.commentStorage.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("usecase: create comment: %w", err)
	}
	comment.User = user

	commentID := comment.ID
	publishActivity(ctx, uc.publisher, uc.logger, payloads.ActivityPayload{
		Type:            domain.NotificationComment,
		ActorUserID:     user.ID,
		ActorKakaoID:    user.KakaoID,
		ActorName:       user.NickName,
		RecipientUserID: photo.UserID,
		PhotoID:         photoID,
		CommentID:       &commentID,
		OccurredAt:      comment.CreatedAt,
	})

	resp := domain.NewCommentResponse(comment)
	return &resp, nil
}

func (uc *commentUseCase) ListComments(ctx context.Context, photoID int64, parentID *int64) ([]domain.CommentResponse, error) {
	comments, err := uc.commentStorage.ListComments(ctx, photoID, parentID)
	if err != nil {
		return nil, fmt.Errorf("usecase: list comments: %w", err)
	}

	resp := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, domain.NewCommentResponse(&comments[i]))
	}
	return resp, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, user *domain.User, commentID int64) error {
	if user == nil {
		return fmt.Errorf("delete requires an authenticated user: %w", domain.ErrUnauthorized)
	}

	comment, err := uc.commentStorage.GetCommentByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("usecase: delete comment: %w", err)
	}

	if comment.UserID != user.ID {
		photo, err := uc.photoStorage.GetPhotoByID(ctx, comment.PhotoID)
		if err != nil {
			return fmt.Errorf("usecase: delete comment: %w", err)
		}
		if photo.KakaoID != user.KakaoID {
			return fmt.Errorf("comment %d may only be deleted by its author or the photo owner: %w", commentID, domain.ErrForbidden)
		}
	}

	if err := uc.commentStorage.DeleteComment(ctx, comment, uc.deletePolicy); err != nil {
		return fmt.Errorf("usecase: delete comment: %w", err)
	}
	return nil
}
