package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
)

// photoUseCase implements PhotoUseCase
type photoUseCase struct {
	photoStorage ports.PhotoStorage
	fileStorage  FileStorage
	logger       *slog.Logger
}

func NewPhotoUseCase(photoStorage ports.PhotoStorage, fileStorage FileStorage, logger *slog.Logger) PhotoUseCase {
	return &photoUseCase{
		photoStorage: photoStorage,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func (uc *photoUseCase) UploadPhoto(ctx context.Context, user *domain.User, in UploadPhotoInput) (*domain.UploadResult, error) {
	if user == nil {
		return nil, fmt.Errorf("upload requires an authenticated user: %w", domain.ErrUnauthorized)
	}
	created, err := validateUpload(in)
	if err != nil {
		return nil, err
	}

	// 1. images first, so a storage failure leaves no row behind
	urls := make([]string, 0, len(in.Files))
	for _, f := range in.Files {
		key := objectKey(f.Filename)
		url, err := uc.fileStorage.UploadFile(ctx, key, f.Content, f.ContentType)
		if err != nil {
			uc.logger.Error("image upload failed, aborting photo upload",
				"kakao_id", user.KakaoID,
				"file", f.Filename,
				"uploaded", len(urls),
				"error", err,
			)
			uc.discardBlobs(ctx, urls)
			return nil, fmt.Errorf("upload image %q: %v: %w", f.Filename, err, domain.ErrUpstream)
		}
		urls = append(urls, url)
	}

	// 2. metadata
	photo := &domain.Photo{
		UserID:           user.ID,
		KakaoID:          user.KakaoID,
		Nickname:         user.NickName,
		HairName:         in.HairName,
		Text:             in.Text,
		Gender:           in.Gender,
		Created:          created,
		HairSalon:        in.HairSalon,
		HairSalonAddress: in.HairSalonAddress,
		HairLength:       in.HairLength,
		HairColor:        in.HairColor,
	}
	for _, u := range urls {
		photo.Images = append(photo.Images, domain.PhotoImage{Path: u})
	}

	if err := uc.photoStorage.SavePhoto(ctx, photo); err != nil {
		uc.discardBlobs(ctx, urls)
		return nil, fmt.Errorf("usecase: save photo: %w", err)
	}

	uc.logger.Info("photo uploaded", "photo_id", photo.ID, "kakao_id", user.KakaoID, "images", len(urls))
	return &domain.UploadResult{ID: photo.ID, User: user}, nil
}

func validateUpload(in UploadPhotoInput) (time.Time, error) {
	n := len(in.Files)
	if n < domain.MinPhotoImages || n > domain.MaxPhotoImages {
		return time.Time{}, fmt.Errorf("expected %d to %d images, got %d: %w",
			domain.MinPhotoImages, domain.MaxPhotoImages, n, domain.ErrValidation)
	}
	for _, f := range in.Files {
		if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
			return time.Time{}, fmt.Errorf("file %q has content type %q, expected an image: %w",
				f.Filename, f.ContentType, domain.ErrValidation)
		}
		if f.Content == nil {
			return time.Time{}, fmt.Errorf("file %q has no content: %w", f.Filename, domain.ErrValidation)
		}
	}
	created, err := time.Parse(domain.CreatedLayout, in.CreatedStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("createdStr %q must look like %s: %w",
			in.CreatedStr, domain.CreatedLayout, domain.ErrValidation)
	}
	return created, nil
}

// objectKey gives every upload a unique key while keeping the client's file name readable.
func objectKey(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image"
	}
	return fmt.Sprintf("photos/%s-%s", uuid.NewString(), name)
}

// discardBlobs removes already uploaded images after a failed upload. Best effort.
func (uc *photoUseCase) discardBlobs(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := uc.fileStorage.DeleteFile(ctx, u); err != nil {
			uc.logger.Warn("failed to remove orphaned image", "url", u, "error", err)
		}
	}
}

func (uc *photoUseCase) DeletePhoto(ctx context.Context, user *domain.User, photoID int64) error {
	photo, err := uc.photoStorage.GetPhotoByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("usecase: delete photo: %w", err)
	}
	if user == nil || photo.KakaoID != user.KakaoID {
		return fmt.Errorf("photo %d belongs to another user: %w", photoID, domain.ErrForbidden)
	}

	for _, img := range photo.Images {
		if err := uc.fileStorage.DeleteFile(ctx, img.Path); err != nil {
			uc.logger.Error("failed to delete image, keeping photo", "photo_id", photoID, "url", img.Path, "error", err)
			return fmt.Errorf("delete image of photo %d: %v: %w", photoID, err, domain.ErrUpstream)
		}
	}

	if err := uc.photoStorage.DeletePhoto(ctx, photoID); err != nil {
		return fmt.Errorf("usecase: delete photo: %w", err)
	}

	uc.logger.Info("photo deleted", "photo_id", photoID, "kakao_id", user.KakaoID)
	return nil
}

func (uc *photoUseCase) GetPhoto(ctx context.Context, photoID int64) (*domain.PhotoResponse, error) {
	photo, err := uc.photoStorage.GetPhotoByID(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: get photo: %w", err)
	}
	resp := domain.NewPhotoResponse(photo)
	return &resp, nil
}

func (uc *photoUseCase) ListPhotos(ctx context.Context, filter domain.PhotoFilter, page domain.PageRequest) (*domain.Page[domain.PhotoResponse], error) {
	photos, total, err := uc.photoStorage.ListPhotos(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("usecase: list photos: %w", err)
	}

	content := make([]domain.PhotoResponse, 0, len(photos))
	for i := range photos {
		content = append(content, domain.NewPhotoResponse(&photos[i]))
	}
	return domain.NewPage(content, page, total), nil
}

func (uc *photoUseCase) ListLikers(ctx context.Context, photoID int64) ([]domain.User, error) {
	users, err := uc.photoStorage.ListLikers(ctx, photoID)
	if err != nil {
		return nil, fmt.Errorf("usecase: list likers: %w", err)
	}
	return users, nil
}
