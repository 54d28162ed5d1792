package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// LikeStorage implements ports.LikeStorage on gorm.
type LikeStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLikeStorage(db *gorm.DB, logger *slog.Logger) *LikeStorage {
	return &LikeStorage{db: db, logger: logger}
}

// ToggleLike adds the like when absent and removes it when present. The photo
// row is locked for the whole transaction so like_count always equals the
// number of like rows.
func (s *LikeStorage) ToggleLike(ctx context.Context, userID, photoID int64) (*domain.LikeToggle, error) {
	start := time.Now()
	var result domain.LikeToggle

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo domain.Photo
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "user_id", "like_count").
			Take(&photo, photoID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("photo %d: %w", photoID, domain.ErrNotFound)
			}
			return fmt.Errorf("lock photo %d: %w", photoID, err)
		}
		result.OwnerUserID = photo.UserID

		var like domain.Like
		err = tx.Where("user_id = ? AND photo_id = ?", userID, photoID).Take(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return fmt.Errorf("delete like: %w", err)
			}
			if err := tx.Model(&domain.Photo{}).Where("id = ?", photoID).
				UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error; err != nil {
				return fmt.Errorf("decrement like count: %w", err)
			}
			result.Liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			like = domain.Like{UserID: userID, PhotoID: photoID, CreatedAt: time.Now().UTC()}
			if err := tx.Omit("User").Create(&like).Error; err != nil {
				return fmt.Errorf("insert like: %w", err)
			}
			if err := tx.Model(&domain.Photo{}).Where("id = ?", photoID).
				UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
				return fmt.Errorf("increment like count: %w", err)
			}
			result.Liked = true
		default:
			return fmt.Errorf("find like: %w", err)
		}

		var updated domain.Photo
		if err := tx.Select("like_count").Take(&updated, photoID).Error; err != nil {
			return fmt.Errorf("read like count: %w", err)
		}
		result.LikeCount = updated.LikeCount
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to toggle like", "photo_id", photoID, "user_id", userID, "error", err)
		}
		return nil, err
	}

	s.logger.Info("like toggled",
		"photo_id", photoID,
		"user_id", userID,
		"liked", result.Liked,
		"like_count", result.LikeCount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &result, nil
}
