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

// GormUserStorage implements ports.UserStorage.
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// UpsertByKakaoID inserts the user or refreshes nickname and profile image
// of the existing row with the same kakao_id.
func (s *GormUserStorage) UpsertByKakaoID(ctx context.Context, user *domain.User) (*domain.User, error) {
	start := time.Now()

	now := time.Now().UTC()
	row := domain.User{
		KakaoID:         user.KakaoID,
		NickName:        user.NickName,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kakao_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nick_name", "profile_image_url", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		s.logger.Error("failed to upsert user", "kakao_id", user.KakaoID, "error", err)
		return nil, fmt.Errorf("upsert user %d: %w", user.KakaoID, err)
	}

	stored, err := s.GetUserByKakaoID(ctx, user.KakaoID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user upserted",
		"user_id", stored.ID,
		"kakao_id", stored.KakaoID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stored, nil
}

func (s *GormUserStorage) GetUserByKakaoID(ctx context.Context, kakaoID int64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("kakao_id = ?", kakaoID).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with kakao id %d: %w", kakaoID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by kakao id %d: %w", kakaoID, err)
	}
	return &user, nil
}

func (s *GormUserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Take(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}
