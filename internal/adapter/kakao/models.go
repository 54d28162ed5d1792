package kakao

// KakaoProfile is the "properties" block of /v2/user/me.
type KakaoProfile struct {
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
	Thumbnail    string `json:"thumbnail_image"`
}

// KakaoAccountProfile is kakao_account.profile, filled when the user agreed to share it.
type KakaoAccountProfile struct {
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profile_image_url"`
	ThumbnailURL    string `json:"thumbnail_image_url"`
}

type KakaoAccount struct {
	Profile *KakaoAccountProfile `json:"profile,omitempty"`
	Email   string               `json:"email,omitempty"`
}

// KakaoUserResponse is the body of GET /v2/user/me.
type KakaoUserResponse struct {
	ID           int64         `json:"id"`
	ConnectedAt  string        `json:"connected_at"`
	Properties   *KakaoProfile `json:"properties,omitempty"`
	KakaoAccount *KakaoAccount `json:"kakao_account,omitempty"`
}

// KakaoErrorResponse is returned by the API on failures.
type KakaoErrorResponse struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}
