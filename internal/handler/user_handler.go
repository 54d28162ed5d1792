package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/usecase"
)

// UserHandler serves the /kakao routes: login flow and user pages.
type UserHandler struct {
	userUseCase  usecase.UserUseCase
	photoUseCase usecase.PhotoUseCase
	logger       *slog.Logger
}

func NewUserHandler(users usecase.UserUseCase, photos usecase.PhotoUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUseCase: users, photoUseCase: photos, logger: logger}
}

// GetCode redirects the browser to the provider's login page.
func (h *UserHandler) GetCode(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.userUseCase.LoginURL(), http.StatusFound)
}

// OAuthCallback echoes the authorization code back to the client.
func (h *UserHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithDomainError(w, fmt.Errorf("missing code: %w", domain.ErrValidation), "invalid callback", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"code": code}, h.logger)
}

func (h *UserHandler) GetAccessToken(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	tok, err := h.userUseCase.ExchangeCode(r.Context(), code)
	if err != nil {
		respondWithDomainError(w, err, "failed to exchange code", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, tok, h.logger)
}

// GetUserInfo returns the provider's view of the bearer, without touching the users table.
func (h *UserHandler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	token, err := bearerToken(r)
	if err != nil {
		respondWithDomainError(w, err, "rejected request without token", h.logger)
		return
	}

	profile, err := h.userUseCase.RemoteProfile(r.Context(), token)
	if err != nil {
		respondWithDomainError(w, err, "failed to fetch profile", h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, profile, h.logger)
}

// Logout keeps no server-side session; the client drops its token.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"}, h.logger)
}

func (h *UserHandler) MyPage(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, UserFromContext(r.Context()), h.logger)
}

// MyLikes pages the photos the acting user liked.
func (h *UserHandler) MyLikes(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	h.listPhotos(w, r, domain.PhotoFilter{LikedByUserID: &user.ID})
}

func (h *UserHandler) MyNotifications(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		respondWithDomainError(w, err, "invalid page request", h.logger)
		return
	}

	user := UserFromContext(r.Context())
	items, err := h.userUseCase.ListNotifications(r.Context(), user, page)
	if err != nil {
		respondWithDomainError(w, err, "failed to list notifications", h.logger, "user_id", user.ID)
		return
	}
	respondWithJSON(w, http.StatusOK, items, h.logger)
}

func (h *UserHandler) FindByKakaoID(w http.ResponseWriter, r *http.Request) {
	kakaoID, err := pathInt64(r, "kakaoId")
	if err != nil {
		respondWithDomainError(w, err, "invalid kakao id", h.logger)
		return
	}

	user, err := h.userUseCase.GetUserByKakaoID(r.Context(), kakaoID)
	if err != nil {
		respondWithDomainError(w, err, "failed to find user", h.logger, "kakao_id", kakaoID)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// FindPhotos pages the photos uploaded by the user with the given kakao id.
func (h *UserHandler) FindPhotos(w http.ResponseWriter, r *http.Request) {
	kakaoID, err := pathInt64(r, "kakaoId")
	if err != nil {
		respondWithDomainError(w, err, "invalid kakao id", h.logger)
		return
	}
	h.listPhotos(w, r, domain.PhotoFilter{OwnerKakaoID: &kakaoID})
}

func (h *UserHandler) listPhotos(w http.ResponseWriter, r *http.Request, filter domain.PhotoFilter) {
	page, err := parsePageRequest(r)
	if err != nil {
		respondWithDomainError(w, err, "invalid page request", h.logger)
		return
	}

	photos, err := h.photoUseCase.ListPhotos(r.Context(), filter, page)
	if err != nil {
		respondWithDomainError(w, err, "failed to list photos", h.logger, "path", r.URL.Path)
		return
	}
	respondWithJSON(w, http.StatusOK, photos, h.logger)
}
