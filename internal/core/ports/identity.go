package ports

import "context"

// Profile is what the identity provider knows about the bearer of a token.
type Profile struct {
	ExternalID      int64  `json:"id"`
	DisplayName     string `json:"nickname"`
	ProfileImageURL string `json:"profileImage"`
}

// Token is the result of an authorization code exchange.
type Token struct {
	AccessToken  string `json:"accessToken"`
	TokenType    string `json:"tokenType"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// IdentityResolver talks to the OAuth provider.
type IdentityResolver interface {
	// AuthCodeURL is where the browser is sent to log in.
	AuthCodeURL() string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	// ResolveProfile returns domain.ErrUnauthorized for a rejected token and
	// domain.ErrUpstream for any other provider failure.
	ResolveProfile(ctx context.Context, accessToken string) (*Profile, error)
}
