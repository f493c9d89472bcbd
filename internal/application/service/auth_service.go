package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/oauth"
	"github.com/aquaflow/sachet-api/pkg/utils"
	"github.com/google/uuid"
)

const minPasswordLength = 8

// RecoveryMailer delivers password recovery links.
type RecoveryMailer interface {
	SendRecoveryEmail(to, name, token string, ttl time.Duration) error
}

// IdentityProvider resolves an OAuth authorization code to a verified identity.
type IdentityProvider interface {
	Configured() bool
	Identify(ctx context.Context, code string) (*oauth.Identity, error)
}

// AuthService handles authentication-related operations
type AuthService struct {
	tx          repository.Transactor
	userRepo    repository.UserRepository
	tokenRepo   repository.RecoveryTokenRepository
	jwtManager  *utils.JWTManager
	mailer      RecoveryMailer
	google      IdentityProvider
	recoveryTTL time.Duration
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	tx repository.Transactor,
	userRepo repository.UserRepository,
	tokenRepo repository.RecoveryTokenRepository,
	jwtManager *utils.JWTManager,
	mailer RecoveryMailer,
	google IdentityProvider,
	recoveryTTL time.Duration,
) *AuthService {
	if recoveryTTL <= 0 {
		recoveryTTL = time.Hour
	}
	return &AuthService{
		tx:          tx,
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		jwtManager:  jwtManager,
		mailer:      mailer,
		google:      google,
		recoveryTTL: recoveryTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// LoginInput represents the login input. Identifier is an email address or
// a phone number.
type LoginInput struct {
	Identifier string
	Password   string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	}
	return s.userRepo.GetByPhone(ctx, identifier)
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if strings.TrimSpace(input.Identifier) == "" || input.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.findByIdentifier(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

// issue stamps the login time and signs a token pair.
func (s *AuthService) issue(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	now := s.now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("record login for user %s: %v", user.ID, err)
	}
	return s.tokens(user)
}

func (s *AuthService) tokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name, user.Role.String())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidToken
	}
	return s.tokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	if len(input.NewPassword) < minPasswordLength {
		return apperror.NewFieldError("newPassword", "must be at least 8 characters")
	}
	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewFieldError("currentPassword", "is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	UserID uuid.UUID
	Name   string
	Phone  *string
}

// UpdateProfile updates the caller's own name and phone
func (s *AuthService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil && *input.Phone != "" && (user.Phone == nil || *user.Phone != *input.Phone) {
		existing, err := s.userRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, apperror.NewConflictError("Phone number already in use")
		}
		user.Phone = input.Phone
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ForgotPassword e-mails a recovery link. It reports success whether or not
// the address belongs to a user.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddress string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddress)))
	if err != nil {
		log.Printf("forgot password lookup: %v", err)
		return nil
	}
	if user == nil || !user.IsActive {
		return nil
	}

	token, err := utils.NewOpaqueToken()
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tokenRepo.DeleteForUser(ctx, user.ID); err != nil {
			return err
		}
		return s.tokenRepo.Create(ctx, &entity.RecoveryToken{
			UserID:    user.ID,
			TokenHash: utils.HashToken(token),
			ExpiresAt: s.now().Add(s.recoveryTTL),
		})
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendRecoveryEmail(user.Email, user.Name, token, s.recoveryTTL); err != nil {
		log.Printf("send recovery email to user %s: %v", user.ID, err)
	}
	return nil
}

// ResetPassword consumes a recovery token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperror.NewFieldError("password", "must be at least 8 characters")
	}
	invalid := apperror.NewBadRequestError("Invalid or expired reset token")

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		recovery, err := s.tokenRepo.GetByTokenHash(ctx, utils.HashToken(token))
		if err != nil {
			return err
		}
		if recovery == nil || !recovery.Usable(s.now()) {
			return invalid
		}
		user, err := s.userRepo.GetByID(ctx, recovery.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return invalid
		}

		if err := s.tokenRepo.MarkUsed(ctx, recovery.ID, s.now()); err != nil {
			return invalid
		}
		user.Password = hashedPassword
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return s.tokenRepo.DeleteForUser(ctx, user.ID)
	})
}

// GoogleEnabled reports whether Google sign-in is configured.
func (s *AuthService) GoogleEnabled() bool {
	return s.google != nil && s.google.Configured()
}

// GoogleLogin signs in an existing active user whose e-mail matches the
// verified Google account. Accounts are never created this way.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*LoginOutput, error) {
	if !s.GoogleEnabled() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	identity, err := s.google.Identify(ctx, code)
	if err != nil {
		if errors.Is(err, oauth.ErrEmailUnverified) {
			return nil, apperror.NewAppError(401, "Google account email is not verified")
		}
		log.Printf("google sign-in: %v", err)
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(identity.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.GoogleSubject != nil && *user.GoogleSubject != identity.Subject {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.GoogleSubject == nil {
		subject := identity.Subject
		user.GoogleSubject = &subject
	}
	return s.issue(ctx, user)
}
