package handler

import (
	"log/slog"
	"net/http"

	"github.com/hairwhere/hairwhere/internal/usecase"
)

type LikeHandler struct {
	likeUseCase usecase.LikeUseCase
	logger      *slog.Logger
}

func NewLikeHandler(uc usecase.LikeUseCase, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{likeUseCase: uc, logger: logger}
}

// Toggle handles POST /like/{id}.
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	photoID, err := pathInt64(r, "id")
	if err != nil {
		respondWithDomainError(w, err, "invalid photo id", h.logger)
		return
	}

	res, err := h.likeUseCase.ToggleLike(r.Context(), user, photoID)
	if err != nil {
		respondWithDomainError(w, err, "failed to toggle like", h.logger, "photo_id", photoID)
		return
	}
	respondWithJSON(w, http.StatusOK, res, h.logger)
}
