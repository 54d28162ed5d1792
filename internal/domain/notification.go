package domain

import "time"

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification tells a photo owner that someone liked or commented on their photo.
type Notification struct {
	ID           int64     `json:"id" db:"id"`
	RecipientID  int64     `json:"recipientId" db:"recipient_id"`
	ActorKakaoID int64     `json:"actorKakaoId" db:"actor_kakao_id"`
	ActorName    string    `json:"actorName" db:"actor_name"`
	Type         string    `json:"type" db:"type"`
	PhotoID      int64     `json:"photoId" db:"photo_id"`
	CommentID    *int64    `json:"commentId,omitempty" db:"comment_id"`
	Read         bool      `json:"read" db:"is_read"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
