package handler

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/usecase"
)

const maxUploadMemory = 32 << 20

// PhotoHandler serves the /photo routes.
type PhotoHandler struct {
	photoUseCase  usecase.PhotoUseCase
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

func NewPhotoHandler(uc usecase.PhotoUseCase, limiter chan struct{}, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoUseCase:  uc,
		uploadLimiter: limiter,
		logger:        logger,
	}
}

// Upload handles POST /photo/upload (multipart, files under "image").
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	select {
	case h.uploadLimiter <- struct{}{}:
		defer func() { <-h.uploadLimiter }()
	default:
		respondWithDomainError(w, fmt.Errorf("too many concurrent uploads: %w", domain.ErrConflict),
			"upload rejected", h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithDomainError(w, fmt.Errorf("invalid multipart form: %v: %w", err, domain.ErrValidation),
			"upload rejected", h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files, closeFiles, err := openUploadFiles(r.MultipartForm.File["image"])
	defer closeFiles()
	if err != nil {
		respondWithDomainError(w, err, "upload rejected", h.logger)
		return
	}

	in := usecase.UploadPhotoInput{
		Text:             r.FormValue("text"),
		HairName:         r.FormValue("hairName"),
		Gender:           r.FormValue("gender"),
		CreatedStr:       r.FormValue("createdStr"),
		HairSalon:        r.FormValue("hairSalon"),
		HairSalonAddress: r.FormValue("hairSalonAddress"),
		HairLength:       r.FormValue("hairLength"),
		HairColor:        r.FormValue("hairColor"),
		Files:            files,
	}

	h.logger.Info("processing upload", "kakao_id", user.KakaoID, "files", len(files))

	res, err := h.photoUseCase.UploadPhoto(r.Context(), user, in)
	if err != nil {
		respondWithDomainError(w, err, "failed to upload photo", h.logger, "kakao_id", user.KakaoID)
		return
	}
	respondWithJSON(w, http.StatusCreated, res, h.logger)
}

func openUploadFiles(headers []*multipart.FileHeader) ([]usecase.UploadFile, func(), error) {
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	files := make([]usecase.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open %q: %v: %w", fh.Filename, err, domain.ErrValidation)
		}
		opened = append(opened, f)
		files = append(files, usecase.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     f,
		})
	}
	return files, closeAll, nil
}

// Delete handles DELETE /photo/delete/{id}.
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathInt64(r, "id")
	if err != nil {
		respondWithDomainError(w, err, "invalid photo id", h.logger)
		return
	}

	if err := h.photoUseCase.DeletePhoto(r.Context(), user, id); err != nil {
		respondWithDomainError(w, err, "failed to delete photo", h.logger, "photo_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "photo deleted"}, h.logger)
}

// FindByID handles GET /photo/find/{id}.
func (h *PhotoHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respondWithDomainError(w, err, "invalid photo id", h.logger)
		return
	}

	photo, err := h.photoUseCase.GetPhoto(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, "failed to fetch photo", h.logger, "photo_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, photo, h.logger)
}

// FindLikers handles GET /photo/find/{id}/likes.
func (h *PhotoHandler) FindLikers(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		respondWithDomainError(w, err, "invalid photo id", h.logger)
		return
	}

	users, err := h.photoUseCase.ListLikers(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err, "failed to fetch likers", h.logger, "photo_id", id)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

func (h *PhotoHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, domain.PhotoFilter{})
}

func (h *PhotoHandler) FindByHairSalon(w http.ResponseWriter, r *http.Request) {
	salon, err := pathString(r, "hairSalon")
	if err != nil {
		respondWithDomainError(w, err, "invalid hair salon", h.logger)
		return
	}
	h.list(w, r, domain.PhotoFilter{HairSalon: salon})
}

func (h *PhotoHandler) FindByGender(w http.ResponseWriter, r *http.Request) {
	gender, err := pathString(r, "gender")
	if err != nil {
		respondWithDomainError(w, err, "invalid gender", h.logger)
		return
	}
	h.list(w, r, domain.PhotoFilter{Gender: gender})
}

func (h *PhotoHandler) FindByAddress(w http.ResponseWriter, r *http.Request) {
	address, err := pathString(r, "hairSalonAddress")
	if err != nil {
		respondWithDomainError(w, err, "invalid hair salon address", h.logger)
		return
	}
	h.list(w, r, domain.PhotoFilter{HairSalonAddress: address})
}

// Search handles GET /photo/search. Every criterion is optional.
func (h *PhotoHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.list(w, r, domain.PhotoFilter{
		HairName:   q.Get("hairName"),
		HairLength: q.Get("hairLength"),
		HairColor:  q.Get("hairColor"),
		Gender:     q.Get("gender"),
	})
}

// list is shared by every paged photo route.
func (h *PhotoHandler) list(w http.ResponseWriter, r *http.Request, filter domain.PhotoFilter) {
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
