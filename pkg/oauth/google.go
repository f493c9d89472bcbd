package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrNotConfigured   = errors.New("google sign-in is not configured")
	ErrExchange        = errors.New("google code exchange failed")
	ErrUserInfo        = errors.New("google user info request failed")
	ErrEmailUnverified = errors.New("google account email is not verified")
)

// Identity is the subset of the Google profile used to match a dashboard user.
type Identity struct {
	Subject       string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleConfig holds the OAuth client registration.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	SuccessURL   string
	FailureURL   string
}

// Google signs existing dashboard users in with their Google account.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
	successURL  string
	failureURL  string
}

func NewGoogle(cfg GoogleConfig) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoURL,
		successURL:  cfg.SuccessURL,
		failureURL:  cfg.FailureURL,
	}
}

func (g *Google) Configured() bool {
	return g.config.ClientID != "" && g.config.ClientSecret != ""
}

// AuthURL returns the consent page URL carrying state.
func (g *Google) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Identify exchanges the callback code and fetches the verified profile.
func (g *Google) Identify(ctx context.Context, code string) (*Identity, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUserInfo, resp.StatusCode, body)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfo, err)
	}
	if !id.VerifiedEmail {
		return nil, ErrEmailUnverified
	}
	return &id, nil
}

func (g *Google) SuccessURL() string { return g.successURL }

func (g *Google) FailureURL() string { return g.failureURL }
