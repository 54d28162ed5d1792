package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hairwhere/hairwhere/internal/domain"
	"github.com/hairwhere/hairwhere/internal/usecase"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *slog.Logger
}

func NewCommentHandler(uc usecase.CommentUseCase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: uc, logger: logger}
}

// Create handles POST /comment/{photoId} with body {content, parentId?}.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	photoID, err := pathInt64(r, "photoId")
	if err != nil {
		respondWithDomainError(w, err, "invalid photo id", h.logger)
		return
	}

	var in usecase.CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithDomainError(w, fmt.Errorf("invalid comment body: %v: %w", err, domain.ErrValidation),
			"invalid comment body", h.logger)
		return
	}

	comment, err := h.commentUseCase.CreateComment(r.Context(), user, photoID, in)
	if err != nil {
		respondWithDomainError(w, err, "failed to create comment", h.logger, "photo_id", photoID)
		return
	}
	respondWithJSON(w, http.StatusCreated, comment, h.logger)
}

// List handles GET /comment/getComments/{photoId}?parentId=.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	photoID, err := pathInt64(r, "photoId")
	if err != nil {
		respondWithDomainError(w, err, "invalid photo id", h.logger)
		return
	}

	var parentID *int64
	if raw := r.URL.Query().Get("parentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondWithDomainError(w, fmt.Errorf("invalid parentId %q: %w", raw, domain.ErrValidation),
				"invalid parent id", h.logger)
			return
		}
		parentID = &id
	}

	comments, err := h.commentUseCase.ListComments(r.Context(), photoID, parentID)
	if err != nil {
		respondWithDomainError(w, err, "failed to list comments", h.logger, "photo_id", photoID)
		return
	}
	respondWithJSON(w, http.StatusOK, comments, h.logger)
}

// Delete handles DELETE /comment/deleteComment/{commentId}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	commentID, err := pathInt64(r, "commentId")
	if err != nil {
		respondWithDomainError(w, err, "invalid comment id", h.logger)
		return
	}

	if err := h.commentUseCase.DeleteComment(r.Context(), user, commentID); err != nil {
		respondWithDomainError(w, err, "failed to delete comment", h.logger, "comment_id", commentID)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"}, h.logger)
}
