package domain

import "time"

// User is a person known through the external identity provider.
// One row per kakao_id, created lazily on first sight.
type User struct {
	ID              int64     `json:"id" db:"id" gorm:"primaryKey"`
	KakaoID         int64     `json:"kakaoId" db:"kakao_id" gorm:"uniqueIndex;not null"`
	NickName        string    `json:"nickName" db:"nick_name"`
	ProfileImageURL string    `json:"profileImageUrl" db:"profile_image_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
