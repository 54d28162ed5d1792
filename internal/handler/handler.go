package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// respondWithJSON writes payload as a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError writes {"error": message}.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// statusFor maps the domain error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondWithDomainError logs err and answers with the status of its kind.
// Internal errors are not echoed to the client.
func respondWithDomainError(w http.ResponseWriter, err error, msg string, logger *slog.Logger, args ...any) {
	code := statusFor(err)
	args = append(args, "status", code, "error", err)
	if code >= http.StatusInternalServerError {
		logger.Error(msg, args...)
	} else {
		logger.Warn(msg, args...)
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	respondWithError(w, code, message, logger)
}

// parsePageRequest reads page, size, sortBy and sortOrder from the query string.
func parsePageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()

	page, err := queryInt(q, "page")
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := queryInt(q, "size")
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.NewPageRequest(page, size, q.Get("sortBy"), q.Get("sortOrder"))
}

func queryInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, domain.ErrValidation)
	}
	return n, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrValidation)
	}
	return id, nil
}

// pathString returns a decoded path parameter; salon names arrive percent-encoded.
func pathString(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	s, err := url.PathUnescape(raw)
	if err != nil || s == "" {
		return "", fmt.Errorf("invalid %s %q: %w", name, raw, domain.ErrValidation)
	}
	return s, nil
}
