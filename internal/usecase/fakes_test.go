package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/messaging/payloads"
)

type fakeFileStorage struct {
	mu        sync.Mutex
	objects   map[string]string
	failAfter int // uploads allowed before failing; negative means never fail
	failDel   bool
	uploads   int
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: map[string]string{}, failAfter: -1}
}

func (f *fakeFileStorage) UploadFile(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAfter >= 0 && f.uploads >= f.failAfter {
		return "", errors.New("bucket unavailable")
	}
	f.uploads++
	b, _ := io.ReadAll(r)
	url := "http://blob/" + key
	f.objects[url] = string(b)
	return url, nil
}

func (f *fakeFileStorage) DeleteFile(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel {
		return errors.New("bucket unavailable")
	}
	delete(f.objects, url)
	return nil
}

type fakePhotoStorage struct {
	photos  map[int64]*domain.Photo
	nextID  int64
	saveErr error
	likers  []domain.User
	lastQ   domain.PhotoFilter
}

func newFakePhotoStorage() *fakePhotoStorage {
	return &fakePhotoStorage{photos: map[int64]*domain.Photo{}}
}

func (f *fakePhotoStorage) SavePhoto(_ context.Context, p *domain.Photo) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	p.ID = f.nextID
	f.photos[p.ID] = p
	return nil
}

func (f *fakePhotoStorage) GetPhotoByID(_ context.Context, id int64) (*domain.Photo, error) {
	p, ok := f.photos[id]
	if !ok {
		return nil, fmt.Errorf("photo %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakePhotoStorage) ListPhotos(_ context.Context, filter domain.PhotoFilter, _ domain.PageRequest) ([]domain.Photo, int64, error) {
	f.lastQ = filter
	out := []domain.Photo{}
	for _, p := range f.photos {
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePhotoStorage) DeletePhoto(_ context.Context, id int64) error {
	if _, ok := f.photos[id]; !ok {
		return fmt.Errorf("photo %d: %w", id, domain.ErrNotFound)
	}
	delete(f.photos, id)
	return nil
}

func (f *fakePhotoStorage) ListLikers(_ context.Context, id int64) ([]domain.User, error) {
	if _, ok := f.photos[id]; !ok {
		return nil, fmt.Errorf("photo %d: %w", id, domain.ErrNotFound)
	}
	return f.likers, nil
}

type fakeCommentStorage struct {
	comments     map[int64]*domain.Comment
	nextID       int64
	deletedWith  domain.CommentDeletePolicy
	deletedID    int64
	listParentID *int64
}

func newFakeCommentStorage() *fakeCommentStorage {
	return &fakeCommentStorage{comments: map[int64]*domain.Comment{}}
}

func (f *fakeCommentStorage) SaveComment(_ context.Context, c *domain.Comment) error {
	f.nextID++
	c.ID = f.nextID
	f.comments[c.ID] = c
	return nil
}

func (f *fakeCommentStorage) GetCommentByID(_ context.Context, id int64) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (f *fakeCommentStorage) ListComments(_ context.Context, photoID int64, parentID *int64) ([]domain.Comment, error) {
	f.listParentID = parentID
	out := []domain.Comment{}
	for _, c := range f.comments {
		if c.PhotoID == photoID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommentStorage) DeleteComment(_ context.Context, c *domain.Comment, policy domain.CommentDeletePolicy) error {
	f.deletedWith = policy
	f.deletedID = c.ID
	delete(f.comments, c.ID)
	return nil
}

type fakeLikeStorage struct {
	likes map[[2]int64]bool
	count map[int64]int64
	owner int64
}

func (f *fakeLikeStorage) ToggleLike(_ context.Context, userID, photoID int64) (*domain.LikeToggle, error) {
	if photoID == 404 {
		return nil, fmt.Errorf("photo %d: %w", photoID, domain.ErrNotFound)
	}
	k := [2]int64{userID, photoID}
	if f.likes[k] {
		delete(f.likes, k)
		f.count[photoID]--
		return &domain.LikeToggle{Liked: false, LikeCount: f.count[photoID], OwnerUserID: f.owner}, nil
	}
	f.likes[k] = true
	f.count[photoID]++
	return &domain.LikeToggle{Liked: true, LikeCount: f.count[photoID], OwnerUserID: f.owner}, nil
}

type fakePublisher struct {
	events []payloads.ActivityPayload
	err    error
}

func (f *fakePublisher) PublishActivity(_ context.Context, p payloads.ActivityPayload) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, p)
	return nil
}

type fakeIdentity struct {
	profiles map[string]*ports.Profile
}

func (f *fakeIdentity) AuthCodeURL() string { return "https://kauth.example/authorize?client_id=x" }

func (f *fakeIdentity) ExchangeCode(_ context.Context, code string) (*ports.Token, error) {
	if code != "ok" {
		return nil, fmt.Errorf("bad code: %w", domain.ErrUnauthorized)
	}
	return &ports.Token{AccessToken: "token", TokenType: "bearer"}, nil
}

func (f *fakeIdentity) ResolveProfile(_ context.Context, token string) (*ports.Profile, error) {
	p, ok := f.profiles[token]
	if !ok {
		return nil, fmt.Errorf("token rejected: %w", domain.ErrUnauthorized)
	}
	return p, nil
}

type fakeUserStorage struct {
	byKakao map[int64]*domain.User
	nextID  int64
}

func (f *fakeUserStorage) UpsertByKakaoID(_ context.Context, u *domain.User) (*domain.User, error) {
	if existing, ok := f.byKakao[u.KakaoID]; ok {
		existing.NickName = u.NickName
		existing.ProfileImageURL = u.ProfileImageURL
		return existing, nil
	}
	f.nextID++
	stored := *u
	stored.ID = f.nextID
	f.byKakao[u.KakaoID] = &stored
	return &stored, nil
}

func (f *fakeUserStorage) GetUserByKakaoID(_ context.Context, kakaoID int64) (*domain.User, error) {
	u, ok := f.byKakao[kakaoID]
	if !ok {
		return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserStorage) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byKakao {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
}

type fakeNotificationStorage struct {
	saved []domain.Notification
	err   error
}

func (f *fakeNotificationStorage) SaveNotification(_ context.Context, n *domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	n.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *n)
	return nil
}

func (f *fakeNotificationStorage) ListNotifications(_ context.Context, recipientID int64, _ domain.PageRequest) ([]domain.Notification, int64, error) {
	out := []domain.Notification{}
	for _, n := range f.saved {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}
