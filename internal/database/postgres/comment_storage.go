package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// CommentStorage implements ports.CommentStorage on gorm.
type CommentStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCommentStorage(db *gorm.DB, logger *slog.Logger) *CommentStorage {
	return &CommentStorage{db: db, logger: logger}
}

func (s *CommentStorage) SaveComment(ctx context.Context, comment *domain.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Omit("User", "Replies").Create(comment).Error; err != nil {
		s.logger.Error("failed to save comment", "photo_id", comment.PhotoID, "error", err)
		return fmt.Errorf("save comment: %w", err)
	}
	s.logger.Info("comment saved", "comment_id", comment.ID, "photo_id", comment.PhotoID)
	return nil
}

func (s *CommentStorage) GetCommentByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := s.db.WithContext(ctx).Preload("User").Take(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return &comment, nil
}

func (s *CommentStorage) ListComments(ctx context.Context, photoID int64, parentID *int64) ([]domain.Comment, error) {
	start := time.Now()

	q := s.db.WithContext(ctx).
		Preload("User").
		Where("photo_id = ?", photoID)

	if parentID == nil {
		q = q.Where("parent_id IS NULL").
			Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC").Order("id DESC") }).
			Preload("Replies.User")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}

	comments := []domain.Comment{}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&comments).Error; err != nil {
		s.logger.Error("failed to list comments", "photo_id", photoID, "error", err)
		return nil, fmt.Errorf("list comments of photo %d: %w", photoID, err)
	}

	s.logger.Debug("comments listed",
		"photo_id", photoID,
		"found", len(comments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return comments, nil
}

// DeleteComment removes comment and treats its replies according to policy.
func (s *CommentStorage) DeleteComment(ctx context.Context, comment *domain.Comment, policy domain.CommentDeletePolicy) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		replies := tx.Model(&domain.Comment{}).Where("parent_id = ?", comment.ID)

		switch policy {
		case domain.CommentDeleteReject:
			var n int64
			if err := replies.Count(&n).Error; err != nil {
				return fmt.Errorf("count replies: %w", err)
			}
			if n > 0 {
				return fmt.Errorf("comment %d has %d replies: %w", comment.ID, n, domain.ErrConflict)
			}
		case domain.CommentDeleteReparent:
			if err := replies.Update("parent_id", comment.ParentID).Error; err != nil {
				return fmt.Errorf("reparent replies: %w", err)
			}
		default:
			if err := tx.Where("parent_id = ?", comment.ID).Delete(&domain.Comment{}).Error; err != nil {
				return fmt.Errorf("delete replies: %w", err)
			}
		}

		res := tx.Delete(&domain.Comment{}, comment.ID)
		if res.Error != nil {
			return fmt.Errorf("delete comment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("comment %d: %w", comment.ID, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrConflict) && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to delete comment", "comment_id", comment.ID, "error", err)
		}
		return err
	}

	s.logger.Info("comment deleted", "comment_id", comment.ID, "policy", string(policy))
	return nil
}
