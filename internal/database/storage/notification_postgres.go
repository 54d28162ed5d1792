package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hairwhere/hairwhere/internal/domain"
)

// NotificationStorage keeps activity notifications in the notifications table.
type NotificationStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewNotificationStorage(db *sqlx.DB, logger *slog.Logger) *NotificationStorage {
	return &NotificationStorage{db: db, logger: logger}
}

// SaveNotification inserts n and fills in its ID.
func (s *NotificationStorage) SaveNotification(ctx context.Context, n *domain.Notification) error {
	start := time.Now()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	query := s.db.Rebind(`
	INSERT INTO notifications (recipient_id, actor_kakao_id, actor_name, type, photo_id, comment_id, is_read, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id
	`)

	err := s.db.QueryRowxContext(ctx, query,
		n.RecipientID, n.ActorKakaoID, n.ActorName, n.Type, n.PhotoID, n.CommentID, n.Read, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		s.logger.Error("failed to save notification", "recipient_id", n.RecipientID, "type", n.Type, "error", err)
		return fmt.Errorf("save notification: %w", err)
	}

	s.logger.Info("notification saved",
		"id", n.ID,
		"recipient_id", n.RecipientID,
		"type", n.Type,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListNotifications returns the newest notifications of a user.
func (s *NotificationStorage) ListNotifications(ctx context.Context, recipientID int64, page domain.PageRequest) ([]domain.Notification, int64, error) {
	start := time.Now()

	var total int64
	countQuery := s.db.Rebind(`SELECT COUNT(*) FROM notifications WHERE recipient_id = ?`)
	if err := s.db.GetContext(ctx, &total, countQuery, recipientID); err != nil {
		s.logger.Error("failed to count notifications", "recipient_id", recipientID, "error", err)
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	q := s.db.Rebind(`
	SELECT id, recipient_id, actor_kakao_id, actor_name, type, photo_id, comment_id, is_read, created_at
	FROM notifications
	WHERE recipient_id = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?
	`)

	notifications := []domain.Notification{}
	if err := s.db.SelectContext(ctx, &notifications, q, recipientID, page.Size, page.Offset()); err != nil {
		s.logger.Error("failed to list notifications",
			"recipient_id", recipientID,
			"page", page.Page,
			"size", page.Size,
			"error", err,
		)
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	s.logger.Debug("notifications listed",
		"recipient_id", recipientID,
		"found", len(notifications),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return notifications, total, nil
}
