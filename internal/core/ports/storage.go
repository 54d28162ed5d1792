package ports

import (
	"context"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// Lookups return an error wrapping domain.ErrNotFound when nothing matches.

// UserStorage persists users.
type UserStorage interface {
	// UpsertByKakaoID creates the user or refreshes its profile fields,
	// and returns the stored row.
	UpsertByKakaoID(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByKakaoID(ctx context.Context, kakaoID int64) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
}

// PhotoStorage persists photos together with their image paths.
type PhotoStorage interface {
	SavePhoto(ctx context.Context, photo *domain.Photo) error
	// GetPhotoByID preloads images, owner and likers.
	GetPhotoByID(ctx context.Context, id int64) (*domain.Photo, error)
	ListPhotos(ctx context.Context, filter domain.PhotoFilter, page domain.PageRequest) ([]domain.Photo, int64, error)
	// DeletePhoto removes the photo with its images, comments and likes.
	DeletePhoto(ctx context.Context, id int64) error
	ListLikers(ctx context.Context, photoID int64) ([]domain.User, error)
}

// CommentStorage persists comments.
type CommentStorage interface {
	SaveComment(ctx context.Context, comment *domain.Comment) error
	GetCommentByID(ctx context.Context, id int64) (*domain.Comment, error)
	// ListComments returns top-level comments with their replies when parentID
	// is nil, otherwise the direct replies of parentID. Newest first.
	ListComments(ctx context.Context, photoID int64, parentID *int64) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, comment *domain.Comment, policy domain.CommentDeletePolicy) error
}

// LikeStorage flips likes and keeps photos.like_count in step.
type LikeStorage interface {
	ToggleLike(ctx context.Context, userID, photoID int64) (*domain.LikeToggle, error)
}

// NotificationStorage persists activity notifications.
type NotificationStorage interface {
	SaveNotification(ctx context.Context, n *domain.Notification) error
	ListNotifications(ctx context.Context, recipientID int64, page domain.PageRequest) ([]domain.Notification, int64, error)
}
