package usecase

import (
	"context"
	"io"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// FileStorage is the port for image bytes (S3/MinIO or GCS).
type FileStorage interface {
	// UploadFile stores the content under key and returns its public URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// DeleteFile removes the object behind a URL previously returned by UploadFile.
	DeleteFile(ctx context.Context, fileURL string) error
}

// UploadFile is one image part of an upload form.
type UploadFile struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// UploadPhotoInput carries the fields of the upload form.
type UploadPhotoInput struct {
	Text             string
	HairName         string
	Gender           string
	CreatedStr       string
	HairSalon        string
	HairSalonAddress string
	HairLength       string
	HairColor        string
	Files            []UploadFile
}

// PhotoUseCase is the business logic around photos.
type PhotoUseCase interface {
	// UploadPhoto stores 1 to 3 images and the photo metadata owned by user.
	// Nothing is persisted when any image upload fails.
	UploadPhoto(ctx context.Context, user *domain.User, in UploadPhotoInput) (*domain.UploadResult, error)

	// DeletePhoto removes the photo and its images. Only the owner may do it.
	DeletePhoto(ctx context.Context, user *domain.User, photoID int64) error

	GetPhoto(ctx context.Context, photoID int64) (*domain.PhotoResponse, error)

	// ListPhotos serves every paged listing: all, by gender, by salon, search, by owner, liked by a user.
	ListPhotos(ctx context.Context, filter domain.PhotoFilter, page domain.PageRequest) (*domain.Page[domain.PhotoResponse], error)

	ListLikers(ctx context.Context, photoID int64) ([]domain.User, error)
}
