package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hairwhere/hairwhere/internal/handler"
)

const shutdownTimeout = 30 * time.Second

// newRouter wires every route of the public API.
func newRouter(logger *slog.Logger, requestTimeout time.Duration, db Database, uc UseCases, uploadLimiter chan struct{}) http.Handler {
	photoHandler := handler.NewPhotoHandler(uc.Photo, uploadLimiter, logger)
	commentHandler := handler.NewCommentHandler(uc.Comment, logger)
	likeHandler := handler.NewLikeHandler(uc.Like, logger)
	userHandler := handler.NewUserHandler(uc.User, uc.Photo, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", healthHandler(db, logger))

	r.Group(func(r chi.Router) {
		r.Get("/photo/find/all", photoHandler.FindAll)
		r.Get("/photo/find/{id}", photoHandler.FindByID)
		r.Get("/photo/find/{id}/likes", photoHandler.FindLikers)
		r.Get("/photo/findHair/{hairSalon}", photoHandler.FindByHairSalon)
		r.Get("/photo/findByGender/{gender}", photoHandler.FindByGender)
		r.Get("/photo/find/address/{hairSalonAddress}", photoHandler.FindByAddress)
		r.Get("/photo/search", photoHandler.Search)

		r.Get("/comment/getComments/{photoId}", commentHandler.List)

		r.Get("/kakao/getCode", userHandler.GetCode)
		r.Get("/kakao/oauth", userHandler.OAuthCallback)
		r.Get("/kakao/getAccessToken", userHandler.GetAccessToken)
		r.Get("/kakao/getUserInfo", userHandler.GetUserInfo)
		r.Post("/kakao/logout", userHandler.Logout)
		r.Get("/kakao/find/{kakaoId}", userHandler.FindByKakaoID)
		r.Get("/kakao/find/{kakaoId}/photos", userHandler.FindPhotos)
	})

	r.Group(func(r chi.Router) {
		r.Use(handler.RequireUser(uc.User, logger))

		r.Post("/photo/upload", photoHandler.Upload)
		r.Delete("/photo/delete/{id}", photoHandler.Delete)

		r.Post("/comment/{photoId}", commentHandler.Create)
		r.Delete("/comment/deleteComment/{commentId}", commentHandler.Delete)

		r.Post("/like/{id}", likeHandler.Toggle)

		r.Get("/kakao/mypage", userHandler.MyPage)
		r.Get("/kakao/mypage/like", userHandler.MyLikes)
		r.Get("/kakao/mypage/notifications", userHandler.MyNotifications)
	})

	return r
}

func healthHandler(db Database, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			logger.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// runServer serves HTTP until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, a *App) error {
	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           newRouter(a.logger, a.Config.RequestTimeout, a.db, a.useCases, a.uploadLimiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}
