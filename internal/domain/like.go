package domain

import "time"

// Like is an active like of a user on a photo. At most one per pair.
type Like struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" gorm:"uniqueIndex:idx_likes_user_photo;not null"`
	PhotoID   int64     `json:"photoId" gorm:"uniqueIndex:idx_likes_user_photo;not null"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeToggle is what the storage reports after flipping a like.
type LikeToggle struct {
	Liked       bool
	LikeCount   int64
	OwnerUserID int64
}

type LikeResult struct {
	PhotoID   int64  `json:"photoId"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"likeCount"`
	Message   string `json:"message"`
}
