package payloads

import "time"

// ActivityPayload is published to RabbitMQ whenever someone likes or comments
// on a photo. The worker turns it into a notification for the photo owner.
type ActivityPayload struct {
	Type            string    `json:"type"`
	ActorUserID     int64     `json:"actor_user_id"`
	ActorKakaoID    int64     `json:"actor_kakao_id"`
	ActorName       string    `json:"actor_name"`
	RecipientUserID int64     `json:"recipient_user_id"`
	PhotoID         int64     `json:"photo_id"`
	CommentID       *int64    `json:"comment_id,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
