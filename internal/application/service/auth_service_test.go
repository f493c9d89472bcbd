package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/oauth"
	"github.com/aquaflow/sachet-api/pkg/utils"
)

type captureMailer struct {
	to    string
	token string
	err   error
}

func (m *captureMailer) SendRecoveryEmail(to, _ string, token string, _ time.Duration) error {
	m.to = to
	m.token = token
	return m.err
}

type stubIdentity struct {
	identity *oauth.Identity
	err      error
}

func (s *stubIdentity) Configured() bool { return true }

func (s *stubIdentity) Identify(context.Context, string) (*oauth.Identity, error) {
	return s.identity, s.err
}

func newAuthFixture(t *testing.T, google IdentityProvider) (*AuthService, *fakeUserRepo, *fakeTokenRepo, *captureMailer, entity.User) {
	t.Helper()
	hash, err := utils.HashPassword("sachet-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	phone := "+2348030000000"
	user := entity.User{
		Name:     "Bola",
		Email:    "bola@aquaflow.ng",
		Phone:    &phone,
		Role:     enum.UserRoleReceptionist,
		Password: hash,
		IsActive: true,
	}
	users := newFakeUserRepo(user)
	for _, u := range users.users {
		user = u
	}
	tokens := newFakeTokenRepo()
	mailer := &captureMailer{}
	jwt := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(&fakeTx{}, users, tokens, jwt, mailer, google, time.Hour), users, tokens, mailer, user
}

func TestLoginByEmailOrPhone(t *testing.T) {
	svc, users, _, _, user := newAuthFixture(t, nil)
	ctx := context.Background()

	for _, identifier := range []string{"BOLA@aquaflow.ng", "+2348030000000"} {
		out, err := svc.Login(ctx, &LoginInput{Identifier: identifier, Password: "sachet-secret"})
		if err != nil {
			t.Fatalf("login with %s: %v", identifier, err)
		}
		if out.User.ID != user.ID || out.AccessToken == "" || out.RefreshToken == "" {
			t.Fatalf("unexpected login output %+v", out)
		}
	}
	if users.users[user.ID].LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}

	if _, err := svc.Login(ctx, &LoginInput{Identifier: "bola@aquaflow.ng", Password: "wrong-pass"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	inactive := users.users[user.ID]
	inactive.IsActive = false
	users.users[user.ID] = inactive
	if _, err := svc.Login(ctx, &LoginInput{Identifier: "bola@aquaflow.ng", Password: "sachet-secret"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("inactive users must not log in, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	svc, _, _, _, user := newAuthFixture(t, nil)
	ctx := context.Background()

	out, err := svc.Login(ctx, &LoginInput{Identifier: user.Email, Password: "sachet-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	if err != nil || refreshed.User.ID != user.ID {
		t.Fatalf("refresh: %+v (%v)", refreshed, err)
	}
	if _, err := svc.RefreshToken(ctx, out.AccessToken); err == nil {
		t.Fatalf("an access token must not refresh")
	}
}

func TestPasswordRecovery(t *testing.T) {
	svc, users, tokens, mailer, user := newAuthFixture(t, nil)
	ctx := context.Background()

	if err := svc.ForgotPassword(ctx, "nobody@aquaflow.ng"); err != nil {
		t.Fatalf("unknown address must not error: %v", err)
	}
	if mailer.token != "" {
		t.Fatalf("no mail may be sent for an unknown address")
	}

	if err := svc.ForgotPassword(ctx, " Bola@AquaFlow.ng "); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if mailer.to != user.Email || mailer.token == "" {
		t.Fatalf("expected a recovery mail, got %+v", mailer)
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("expected one stored token, got %d", len(tokens.tokens))
	}
	for _, tok := range tokens.tokens {
		if tok.TokenHash == mailer.token {
			t.Fatalf("the raw token must not be stored")
		}
	}

	if err := svc.ResetPassword(ctx, mailer.token, "short"); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
	if err := svc.ResetPassword(ctx, mailer.token, "fresh-password"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !utils.CheckPasswordHash("fresh-password", users.users[user.ID].Password) {
		t.Fatalf("password was not changed")
	}

	err := svc.ResetPassword(ctx, mailer.token, "another-password")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, _, _, mailer, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	if err := svc.ForgotPassword(ctx, "bola@aquaflow.ng"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }

	err := svc.ResetPassword(ctx, mailer.token, "fresh-password")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestChangePassword(t *testing.T) {
	svc, users, _, _, user := newAuthFixture(t, nil)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, &ChangePasswordInput{UserID: user.ID, CurrentPassword: "wrong-one", NewPassword: "new-password"})
	if err == nil {
		t.Fatalf("expected wrong current password to fail")
	}
	if err := svc.ChangePassword(ctx, &ChangePasswordInput{UserID: user.ID, CurrentPassword: "sachet-secret", NewPassword: "new-password"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if !utils.CheckPasswordHash("new-password", users.users[user.ID].Password) {
		t.Fatalf("password was not changed")
	}
}

func TestGoogleLogin(t *testing.T) {
	google := &stubIdentity{identity: &oauth.Identity{Subject: "g-123", Email: "Bola@aquaflow.ng", VerifiedEmail: true}}
	svc, users, _, _, user := newAuthFixture(t, google)
	ctx := context.Background()

	out, err := svc.GoogleLogin(ctx, "code")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	if out.User.ID != user.ID {
		t.Fatalf("signed in the wrong user")
	}
	if s := users.users[user.ID].GoogleSubject; s == nil || *s != "g-123" {
		t.Fatalf("expected the google subject to be bound")
	}

	google.identity = &oauth.Identity{Subject: "g-999", Email: "bola@aquaflow.ng", VerifiedEmail: true}
	if _, err := svc.GoogleLogin(ctx, "code"); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("a different subject must be rejected, got %v", err)
	}

	google.identity = &oauth.Identity{Subject: "g-1", Email: "stranger@aquaflow.ng", VerifiedEmail: true}
	if _, err := svc.GoogleLogin(ctx, "code"); !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("unknown accounts must not be created, got %v", err)
	}
}
