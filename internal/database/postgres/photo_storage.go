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

// PhotoStorage implements ports.PhotoStorage on gorm.
type PhotoStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPhotoStorage(db *gorm.DB, logger *slog.Logger) *PhotoStorage {
	return &PhotoStorage{db: db, logger: logger}
}

// SavePhoto inserts the photo and its image paths in one statement batch.
func (s *PhotoStorage) SavePhoto(ctx context.Context, photo *domain.Photo) error {
	start := time.Now()

	for i := range photo.Images {
		photo.Images[i].Position = i
	}

	err := s.db.WithContext(ctx).Omit("User", "Likes").Create(photo).Error
	if err != nil {
		s.logger.Error("failed to save photo", "kakao_id", photo.KakaoID, "error", err)
		return fmt.Errorf("save photo: %w", err)
	}

	s.logger.Info("photo saved successfully",
		"photo_id", photo.ID,
		"images", len(photo.Images),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *PhotoStorage) GetPhotoByID(ctx context.Context, id int64) (*domain.Photo, error) {
	var photo domain.Photo
	err := s.db.WithContext(ctx).
		Scopes(preloadPhotoRelations).
		Take(&photo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("photo %d: %w", id, domain.ErrNotFound)
		}
		s.logger.Error("failed to get photo by id", "photo_id", id, "error", err)
		return nil, fmt.Errorf("get photo %d: %w", id, err)
	}
	return &photo, nil
}

// ListPhotos returns one page of photos matching filter and the total match count.
func (s *PhotoStorage) ListPhotos(ctx context.Context, filter domain.PhotoFilter, page domain.PageRequest) ([]domain.Photo, int64, error) {
	start := time.Now()

	var total int64
	err := s.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Scopes(s.photoFilter(filter)).
		Count(&total).Error
	if err != nil {
		s.logger.Error("failed to count photos", "error", err)
		return nil, 0, fmt.Errorf("count photos: %w", err)
	}

	photos := []domain.Photo{}
	if total > int64(page.Offset()) {
		err = s.db.WithContext(ctx).
			Scopes(s.photoFilter(filter), preloadPhotoRelations).
			Order(clause.OrderByColumn{Column: clause.Column{Name: page.SortColumn}, Desc: page.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: page.Desc}).
			Limit(page.Size).
			Offset(page.Offset()).
			Find(&photos).Error
		if err != nil {
			s.logger.Error("failed to list photos", "page", page.Page, "size", page.Size, "error", err)
			return nil, 0, fmt.Errorf("list photos: %w", err)
		}
	}

	s.logger.Debug("photos listed",
		"found", len(photos),
		"total", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return photos, total, nil
}

// DeletePhoto removes the photo and everything that hangs off it.
func (s *PhotoStorage) DeletePhoto(ctx context.Context, id int64) error {
	start := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		if err := tx.Where("photo_id = ? AND parent_id IS NOT NULL", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("delete replies: %w", err)
		}
		if err := tx.Where("photo_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("photo_id = ?", id).Delete(&domain.PhotoImage{}).Error; err != nil {
			return fmt.Errorf("delete image paths: %w", err)
		}
		res := tx.Delete(&domain.Photo{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete photo: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("photo %d: %w", id, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to delete photo", "photo_id", id, "error", err)
		}
		return err
	}

	s.logger.Info("photo deleted", "photo_id", id, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// ListLikers returns the users who currently like the photo, most recent first.
func (s *PhotoStorage) ListLikers(ctx context.Context, photoID int64) ([]domain.User, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&domain.Photo{}).Where("id = ?", photoID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("check photo %d: %w", photoID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("photo %d: %w", photoID, domain.ErrNotFound)
	}

	users := []domain.User{}
	err := s.db.WithContext(ctx).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.photo_id = ?", photoID).
		Order("likes.created_at DESC").
		Order("likes.id DESC").
		Find(&users).Error
	if err != nil {
		s.logger.Error("failed to list likers", "photo_id", photoID, "error", err)
		return nil, fmt.Errorf("list likers of photo %d: %w", photoID, err)
	}
	return users, nil
}

func (s *PhotoStorage) photoFilter(f domain.PhotoFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.HairName != "" {
			db = db.Where("hair_name = ?", f.HairName)
		}
		if f.HairLength != "" {
			db = db.Where("hair_length = ?", f.HairLength)
		}
		if f.HairColor != "" {
			db = db.Where("hair_color = ?", f.HairColor)
		}
		if f.Gender != "" {
			db = db.Where("gender = ?", f.Gender)
		}
		if f.HairSalon != "" {
			db = db.Where("hair_salon = ?", f.HairSalon)
		}
		if f.HairSalonAddress != "" {
			db = db.Where("hair_salon_address = ?", f.HairSalonAddress)
		}
		if f.OwnerKakaoID != nil {
			db = db.Where("kakao_id = ?", *f.OwnerKakaoID)
		}
		if f.LikedByUserID != nil {
			liked := s.db.Model(&domain.Like{}).Select("photo_id").Where("user_id = ?", *f.LikedByUserID)
			db = db.Where("id IN (?)", liked)
		}
		return db
	}
}

func preloadPhotoRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("User").
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Likes.User")
}
