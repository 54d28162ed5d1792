package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/logger"
)

func mustPage(t *testing.T, page, size int, sortBy, order string) domain.PageRequest {
	t.Helper()
	req, err := domain.NewPageRequest(page, size, sortBy, order)
	require.NoError(t, err)
	return req
}

func TestSavePhotoKeepsImageOrder(t *testing.T) {
	db := newTestDB(t)
	s := NewPhotoStorage(db, logger.NewNop())
	owner := seedUser(t, db, 1, "owner")

	photo := &domain.Photo{
		UserID:  owner.ID,
		KakaoID: owner.KakaoID,
		Created: time.Now().UTC(),
		Images: []domain.PhotoImage{
			{Path: "http://blob/1.jpg"},
			{Path: "http://blob/2.jpg"},
			{Path: "http://blob/3.jpg"},
		},
	}
	require.NoError(t, s.SavePhoto(context.Background(), photo))
	require.NotZero(t, photo.ID)

	got, err := s.GetPhotoByID(context.Background(), photo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://blob/1.jpg", "http://blob/2.jpg", "http://blob/3.jpg"}, got.ImagePaths())
	require.NotNil(t, got.User)
	assert.Equal(t, "http://img/owner", got.User.ProfileImageURL)
}

func TestGetPhotoByIDNotFound(t *testing.T) {
	s := NewPhotoStorage(newTestDB(t), logger.NewNop())

	_, err := s.GetPhotoByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPhotosFiltersAndPages(t *testing.T) {
	db := newTestDB(t)
	s := NewPhotoStorage(db, logger.NewNop())
	owner := seedUser(t, db, 1, "owner")
	other := seedUser(t, db, 2, "other")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		i := i
		seedPhoto(t, db, owner, func(p *domain.Photo) {
			p.Created = base.Add(time.Duration(i) * time.Hour)
			p.HairColor = "brown"
		})
	}
	seedPhoto(t, db, other, func(p *domain.Photo) {
		p.Gender = "male"
		p.HairSalon = "Blue Salon"
		p.HairColor = "black"
	})

	ctx := context.Background()

	photos, total, err := s.ListPhotos(ctx, domain.PhotoFilter{}, mustPage(t, 0, 2, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, photos, 2)
	assert.True(t, !photos[0].Created.Before(photos[1].Created))

	photos, total, err = s.ListPhotos(ctx, domain.PhotoFilter{Gender: "male"}, mustPage(t, 0, 15, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, photos, 1)
	assert.Equal(t, "Blue Salon", photos[0].HairSalon)

	photos, total, err = s.ListPhotos(ctx, domain.PhotoFilter{HairColor: "brown", Gender: "female"}, mustPage(t, 0, 15, "created", "asc"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.True(t, base.Equal(photos[0].Created), "oldest first, got %v", photos[0].Created)

	kakao := owner.KakaoID
	_, total, err = s.ListPhotos(ctx, domain.PhotoFilter{OwnerKakaoID: &kakao}, mustPage(t, 0, 15, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	photos, total, err = s.ListPhotos(ctx, domain.PhotoFilter{}, mustPage(t, 10, 15, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Empty(t, photos)
}

func TestListPhotosLikedByUser(t *testing.T) {
	db := newTestDB(t)
	s := NewPhotoStorage(db, logger.NewNop())
	owner := seedUser(t, db, 1, "owner")
	fan := seedUser(t, db, 2, "fan")

	liked := seedPhoto(t, db, owner, nil)
	seedPhoto(t, db, owner, nil)
	require.NoError(t, db.Create(&domain.Like{UserID: fan.ID, PhotoID: liked.ID}).Error)

	uid := fan.ID
	photos, total, err := s.ListPhotos(context.Background(), domain.PhotoFilter{LikedByUserID: &uid}, mustPage(t, 0, 15, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, photos, 1)

	resp := domain.NewPhotoResponse(&photos[0])
	assert.Equal(t, []string{"fan"}, resp.LikedNickNames)
}

func TestDeletePhotoRemovesDependents(t *testing.T) {
	db := newTestDB(t)
	s := NewPhotoStorage(db, logger.NewNop())
	owner := seedUser(t, db, 1, "owner")
	photo := seedPhoto(t, db, owner, nil)

	top := &domain.Comment{Content: "hi", UserID: owner.ID, PhotoID: photo.ID}
	require.NoError(t, db.Omit("User", "Replies").Create(top).Error)
	require.NoError(t, db.Omit("User", "Replies").Create(&domain.Comment{Content: "re", UserID: owner.ID, PhotoID: photo.ID, ParentID: &top.ID}).Error)
	require.NoError(t, db.Create(&domain.Like{UserID: owner.ID, PhotoID: photo.ID}).Error)

	require.NoError(t, s.DeletePhoto(context.Background(), photo.ID))

	for _, model := range []any{&domain.Comment{}, &domain.Like{}, &domain.PhotoImage{}} {
		var n int64
		require.NoError(t, db.Model(model).Where("photo_id = ?", photo.ID).Count(&n).Error)
		assert.Zero(t, n)
	}

	err := s.DeletePhoto(context.Background(), photo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLikers(t *testing.T) {
	db := newTestDB(t)
	s := NewPhotoStorage(db, logger.NewNop())
	owner := seedUser(t, db, 1, "owner")
	fan := seedUser(t, db, 2, "fan")
	photo := seedPhoto(t, db, owner, nil)
	require.NoError(t, db.Create(&domain.Like{UserID: fan.ID, PhotoID: photo.ID}).Error)

	users, err := s.ListLikers(context.Background(), photo.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, fan.KakaoID, users[0].KakaoID)

	_, err = s.ListLikers(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
