package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/hairwhere/hairwhere/internal/config"
	"github.com/hairwhere/hairwhere/internal/core/ports"
	"github.com/hairwhere/hairwhere/internal/domain"
)

// KakaoAPIClient implements ports.IdentityResolver against the Kakao REST API.
type KakaoAPIClient struct {
	httpClient *http.Client
	oauth      *oauth2.Config
	apiURL     string
	logger     *slog.Logger
}

func NewKakaoAPIClient(cfg *config.Config, logger *slog.Logger) *KakaoAPIClient {
	timeout := cfg.Kakao.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KakaoAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		oauth: &oauth2.Config{
			ClientID:     cfg.Kakao.ClientID,
			ClientSecret: cfg.Kakao.ClientSecret,
			RedirectURL:  cfg.Kakao.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.Kakao.AuthURL,
				TokenURL:  cfg.Kakao.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiURL: strings.TrimRight(cfg.Kakao.APIURL, "/"),
		logger: logger,
	}
}

// AuthCodeURL builds the authorize URL with client_id, redirect_uri and response_type=code.
func (c *KakaoAPIClient) AuthCodeURL() string {
	return c.oauth.AuthCodeURL("")
}

// ExchangeCode trades an authorization code for an access token.
func (c *KakaoAPIClient) ExchangeCode(ctx context.Context, code string) (*ports.Token, error) {
	if code == "" {
		return nil, fmt.Errorf("authorization code is empty: %w", domain.ErrValidation)
	}
	start := time.Now()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil &&
			rerr.Response.StatusCode >= 400 && rerr.Response.StatusCode < 500 {
			c.logger.Warn("kakao rejected authorization code", "status", rerr.Response.StatusCode)
			return nil, fmt.Errorf("exchange code: %w", domain.ErrUnauthorized)
		}
		c.logger.Error("kakao token exchange failed", "error", err)
		return nil, fmt.Errorf("exchange code: %v: %w", err, domain.ErrUpstream)
	}

	token := &ports.Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		token.ExpiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}

	c.logger.Info("kakao token issued", "duration_ms", time.Since(start).Milliseconds())
	return token, nil
}

// ResolveProfile fetches the profile behind an access token.
func (c *KakaoAPIClient) ResolveProfile(ctx context.Context, accessToken string) (*ports.Profile, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is empty: %w", domain.ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/v2/user/me", nil)
	if err != nil {
		return nil, fmt.Errorf("build kakao request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("kakao user info request failed", "error", err)
		return nil, fmt.Errorf("kakao user info: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("kakao rejected access token: %w", domain.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("kakao user info returned unexpected status", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("kakao user info status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var user KakaoUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode kakao user info: %v: %w", err, domain.ErrUpstream)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("kakao user info without id: %w", domain.ErrUpstream)
	}

	return mapKakaoUserToProfile(&user), nil
}

// mapKakaoUserToProfile prefers the legacy properties block and falls back to kakao_account.profile.
func mapKakaoUserToProfile(u *KakaoUserResponse) *ports.Profile {
	p := &ports.Profile{ExternalID: u.ID}
	if u.Properties != nil {
		p.DisplayName = u.Properties.Nickname
		p.ProfileImageURL = u.Properties.ProfileImage
	}
	if u.KakaoAccount != nil && u.KakaoAccount.Profile != nil {
		if p.DisplayName == "" {
			p.DisplayName = u.KakaoAccount.Profile.Nickname
		}
		if p.ProfileImageURL == "" {
			p.ProfileImageURL = u.KakaoAccount.Profile.ProfileImageURL
		}
	}
	return p
}
