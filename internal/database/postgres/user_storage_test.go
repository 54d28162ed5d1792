package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/logger"
)

func TestUpsertByKakaoIDKeepsOneRowPerIdentity(t *testing.T) {
	db := newTestDB(t)
	s := NewGormUserStorage(db, logger.NewNop())
	ctx := context.Background()

	first, err := s.UpsertByKakaoID(ctx, &domain.User{KakaoID: 1001, NickName: "old", ProfileImageURL: "a"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := s.UpsertByKakaoID(ctx, &domain.User{KakaoID: 1001, NickName: "new", ProfileImageURL: "b"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "new", second.NickName)
	assert.Equal(t, "b", second.ProfileImageURL)

	var count int64
	require.NoError(t, db.Model(&domain.User{}).Where("kakao_id = ?", 1001).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetUserNotFound(t *testing.T) {
	s := NewGormUserStorage(newTestDB(t), logger.NewNop())

	_, err := s.GetUserByKakaoID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
