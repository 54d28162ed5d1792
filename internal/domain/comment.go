package domain

import (
	"fmt"
	"time"
)

// Comment belongs to a photo. A nil ParentID marks a top-level comment;
// replies are never parents themselves.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    int64     `json:"userId" gorm:"index;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PhotoID   int64     `json:"photoId" gorm:"index;not null"`
	ParentID  *int64    `json:"parentId" gorm:"index"`
	Replies   []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (Comment) TableName() string {
	return "comments"
}

// CommentDeletePolicy decides what happens to replies when their parent is deleted.
type CommentDeletePolicy string

const (
	CommentDeleteCascade  CommentDeletePolicy = "cascade"
	CommentDeleteReparent CommentDeletePolicy = "reparent"
	CommentDeleteReject   CommentDeletePolicy = "reject"
)

func ParseCommentDeletePolicy(s string) (CommentDeletePolicy, error) {
	switch p := CommentDeletePolicy(s); p {
	case CommentDeleteCascade, CommentDeleteReparent, CommentDeleteReject:
		return p, nil
	case "":
		return CommentDeleteCascade, nil
	default:
		return "", fmt.Errorf("unknown comment delete policy %q: %w", s, ErrValidation)
	}
}

// CommentAuthor is the user block embedded in comment responses.
type CommentAuthor struct {
	ID              int64  `json:"id"`
	KakaoID         int64  `json:"kakaoId"`
	NickName        string `json:"nickName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type CommentResponse struct {
	ID        int64             `json:"id"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"createdAt"`
	User      CommentAuthor     `json:"user"`
	PhotoID   int64             `json:"photoId"`
	ParentID  *int64            `json:"parentId"`
	Replies   []CommentResponse `json:"replies"`
}

// NewCommentResponse nests the direct replies of c, one level deep.
func NewCommentResponse(c *Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		PhotoID:   c.PhotoID,
		ParentID:  c.ParentID,
		Replies:   make([]CommentResponse, 0, len(c.Replies)),
	}
	if c.User != nil {
		resp.User = CommentAuthor{
			ID:              c.User.ID,
			KakaoID:         c.User.KakaoID,
			NickName:        c.User.NickName,
			ProfileImageURL: c.User.ProfileImageURL,
		}
	}
	for i := range c.Replies {
		reply := c.Replies[i]
		reply.Replies = nil
		resp.Replies = append(resp.Replies, NewCommentResponse(&reply))
	}
	return resp
}
