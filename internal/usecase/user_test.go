package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/logger"
	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

func newUserFixture() (UserUseCase, *fakeUserStorage, *fakeIdentity) {
	identity := &fakeIdentity{profiles: map[string]*ports.Profile{
		"token": {ExternalID: 1001, DisplayName: "owner", ProfileImageURL: "http://img/1"},
	}}
	users := &fakeUserStorage{byKakao: map[int64]*domain.User{}}
	return NewUserUseCase(identity, users, &fakeNotificationStorage{}, logger.NewNop()), users, identity
}

func TestAuthenticateUpsertsUser(t *testing.T) {
	uc, users, identity := newUserFixture()
	ctx := context.Background()

	first, err := uc.Authenticate(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), first.KakaoID)
	assert.Equal(t, "owner", first.NickName)

	identity.profiles["token"].DisplayName = "renamed"
	second, err := uc.Authenticate(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "renamed", second.NickName)
	assert.Len(t, users.byKakao, 1)

	_, err = uc.Authenticate(ctx, "stolen")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExchangeCodeAndLookup(t *testing.T) {
	uc, _, _ := newUserFixture()
	ctx := context.Background()

	assert.Contains(t, uc.LoginURL(), "client_id=")

	tok, err := uc.ExchangeCode(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, "token", tok.AccessToken)

	_, err = uc.ExchangeCode(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.GetUserByKakaoID(ctx, 1001)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Authenticate(ctx, "token")
	require.NoError(t, err)
	u, err := uc.GetUserByKakaoID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "owner", u.NickName)
}

func TestHandleActivity(t *testing.T) {
	notifications := &fakeNotificationStorage{}
	uc := NewActivityUseCase(notifications, logger.NewNop())
	ctx := context.Background()
	now := time.Date(2024, 4, 5, 12, 0, 0, 0, time.UTC)

	require.NoError(t, uc.HandleActivity(ctx, payloads.ActivityPayload{
		Type: domain.NotificationLike, ActorUserID: 9, ActorName: "fan", RecipientUserID: 1, PhotoID: 3, OccurredAt: now,
	}))
	require.NoError(t, uc.HandleActivity(ctx, payloads.ActivityPayload{
		Type: domain.NotificationLike, ActorUserID: 1, RecipientUserID: 1, PhotoID: 3, OccurredAt: now,
	}))
	require.NoError(t, uc.HandleActivity(ctx, payloads.ActivityPayload{
		Type: "share", ActorUserID: 9, RecipientUserID: 1, PhotoID: 3, OccurredAt: now,
	}))

	require.Len(t, notifications.saved, 1)
	n := notifications.saved[0]
	assert.Equal(t, int64(1), n.RecipientID)
	assert.Equal(t, "fan", n.ActorName)
	assert.Equal(t, now, n.CreatedAt)

	users := &fakeUserStorage{byKakao: map[int64]*domain.User{}}
	userUC := NewUserUseCase(&fakeIdentity{}, users, notifications, logger.NewNop())
	req, err := domain.NewPageRequest(0, 0, "", "")
	require.NoError(t, err)

	page, err := userUC.ListNotifications(ctx, &domain.User{ID: 1}, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	_, err = userUC.ListNotifications(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
