package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
)

// UserUseCase covers login through the identity provider and the user directory.
type UserUseCase interface {
	LoginURL() string
	ExchangeCode(ctx context.Context, code string) (*ports.Token, error)
	RemoteProfile(ctx context.Context, accessToken string) (*ports.Profile, error)

	// Authenticate resolves the token with the provider and returns the local
	// user, creating it on first sight.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)

	GetUserByKakaoID(ctx context.Context, kakaoID int64) (*domain.User, error)
	ListNotifications(ctx context.Context, user *domain.User, page domain.PageRequest) (*domain.Page[domain.Notification], error)
}

type userUseCase struct {
	identity      ports.IdentityResolver
	userStorage   ports.UserStorage
	notifications ports.NotificationStorage
	logger        *slog.Logger
}

func NewUserUseCase(
	identity ports.IdentityResolver,
	userStorage ports.UserStorage,
	notifications ports.NotificationStorage,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		identity:      identity,
		userStorage:   userStorage,
		notifications: notifications,
		logger:        logger,
	}
}

func (uc *userUseCase) LoginURL() string {
	return uc.identity.AuthCodeURL()
}

func (uc *userUseCase) ExchangeCode(ctx context.Context, code string) (*ports.Token, error) {
	tok, err := uc.identity.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("usecase: exchange code: %w", err)
	}
	return tok, nil
}

func (uc *userUseCase) RemoteProfile(ctx context.Context, accessToken string) (*ports.Profile, error) {
	p, err := uc.identity.ResolveProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("usecase: resolve profile: %w", err)
	}
	return p, nil
}

func (uc *userUseCase) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	p, err := uc.identity.ResolveProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("usecase: authenticate: %w", err)
	}

	user, err := uc.userStorage.UpsertByKakaoID(ctx, &domain.User{
		KakaoID:         p.ExternalID,
		NickName:        p.DisplayName,
		ProfileImageURL: p.ProfileImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("usecase: authenticate: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) GetUserByKakaoID(ctx context.Context, kakaoID int64) (*domain.User, error) {
	user, err := uc.userStorage.GetUserByKakaoID(ctx, kakaoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: get user: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) ListNotifications(ctx context.Context, user *domain.User, page domain.PageRequest) (*domain.Page[domain.Notification], error) {
	if user == nil {
		return nil, fmt.Errorf("notifications require an authenticated user: %w", domain.ErrUnauthorized)
	}
	items, total, err := uc.notifications.ListNotifications(ctx, user.ID, page)
	if err != nil {
		return nil, fmt.Errorf("usecase: list notifications: %w", err)
	}
	return domain.NewPage(items, page, total), nil
}
