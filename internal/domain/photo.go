package domain

import "time"

const (
	MinPhotoImages = 1
	MaxPhotoImages = 3

	// CreatedLayout is the wire format of the upload form's createdStr field.
	CreatedLayout = "2006-01-02T15:04:05"
)

// Photo is a hair-style post, table photos.
// KakaoID and Nickname are a snapshot of the owner at upload time.
type Photo struct {
	ID               int64        `json:"id" gorm:"primaryKey"`
	UserID           int64        `json:"userId" gorm:"index;not null"`
	KakaoID          int64        `json:"kakaoId" gorm:"index;not null"`
	Nickname         string       `json:"nickname"`
	HairName         string       `json:"hairName" gorm:"index"`
	Text             string       `json:"text"`
	Gender           string       `json:"gender" gorm:"index"`
	Created          time.Time    `json:"created" gorm:"index"`
	HairSalon        string       `json:"hairSalon" gorm:"index"`
	HairSalonAddress string       `json:"hairSalonAddress"`
	HairLength       string       `json:"hairLength"`
	HairColor        string       `json:"hairColor"`
	LikeCount        int64        `json:"likeCount" gorm:"not null;default:0"`
	Images           []PhotoImage `json:"images,omitempty" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE"`
	User             *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes            []Like       `json:"likes,omitempty" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE"`
}

func (Photo) TableName() string {
	return "photos"
}

// ImagePaths returns the stored image URLs in upload order.
func (p *Photo) ImagePaths() []string {
	paths := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		paths = append(paths, img.Path)
	}
	return paths
}

// PhotoImage is one blob URL of a photo, table photo_image_paths.
type PhotoImage struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	PhotoID  int64  `json:"photoId" gorm:"index;not null"`
	Path     string `json:"path" gorm:"not null"`
	Position int    `json:"position"`
}

func (PhotoImage) TableName() string {
	return "photo_image_paths"
}

// PhotoFilter narrows a photo listing. Empty strings and nil pointers match everything.
type PhotoFilter struct {
	HairName         string
	HairLength       string
	HairColor        string
	Gender           string
	HairSalon        string
	HairSalonAddress string
	OwnerKakaoID     *int64
	LikedByUserID    *int64
}

// PhotoResponse is the public representation of a photo.
type PhotoResponse struct {
	ID               int64     `json:"id"`
	KakaoID          int64     `json:"kakaoId"`
	Nickname         string    `json:"nickname"`
	PhotoImagePath   []string  `json:"photoImagePath"`
	LikeCount        int64     `json:"likeCount"`
	HairName         string    `json:"hairName"`
	Text             string    `json:"text"`
	Gender           string    `json:"gender"`
	Created          time.Time `json:"created"`
	HairSalon        string    `json:"hairSalon"`
	HairSalonAddress string    `json:"hairSalonAddress"`
	HairLength       string    `json:"hairLength"`
	HairColor        string    `json:"hairColor"`
	UserProfilePath  string    `json:"userProfilePath"`
	LikedNickNames   []string  `json:"likedNickNames"`
}

// NewPhotoResponse expects Images, User and Likes.User to be preloaded.
func NewPhotoResponse(p *Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:               p.ID,
		KakaoID:          p.KakaoID,
		Nickname:         p.Nickname,
		PhotoImagePath:   p.ImagePaths(),
		LikeCount:        p.LikeCount,
		HairName:         p.HairName,
		Text:             p.Text,
		Gender:           p.Gender,
		Created:          p.Created,
		HairSalon:        p.HairSalon,
		HairSalonAddress: p.HairSalonAddress,
		HairLength:       p.HairLength,
		HairColor:        p.HairColor,
		LikedNickNames:   make([]string, 0, len(p.Likes)),
	}
	if p.User != nil {
		resp.UserProfilePath = p.User.ProfileImageURL
	}
	for _, l := range p.Likes {
		if l.User != nil {
			resp.LikedNickNames = append(resp.LikedNickNames, l.User.NickName)
		}
	}
	return resp
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	ID   int64 `json:"id"`
	User *User `json:"user"`
}
