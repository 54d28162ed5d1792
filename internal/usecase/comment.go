package usecase

import (
	"context"

	"github.com/hairwhere/hairwhere/internal/domain"
)

type CreateCommentInput struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId"`
}

// CommentUseCase manages the one-level comment tree of a photo.
type CommentUseCase interface {
	// CreateComment adds a top-level comment, or a reply when in.ParentID is set.
	// The parent must be a top-level comment of the same photo.
	CreateComment(ctx context.Context, user *domain.User, photoID int64, in CreateCommentInput) (*domain.CommentResponse, error)

	// ListComments returns top-level comments with their replies, or the
	// replies of parentID when it is set. Newest first.
	ListComments(ctx context.Context, photoID int64, parentID *int64) ([]domain.CommentResponse, error)

	// DeleteComment is allowed to the comment author and the photo owner.
	DeleteComment(ctx context.Context, user *domain.User, commentID int64) error
}
