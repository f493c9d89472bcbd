package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/aquaflow/sachet-api/internal/domain/entity"
	"github.com/aquaflow/sachet-api/internal/domain/enum"
	"github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/utils"
	"github.com/google/uuid"
)

// UserService handles user management operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the input for creating a dashboard account
type CreateUserInput struct {
	Name     string
	Email    string
	Phone    *string
	Role     enum.UserRole
	Password string
}

// CreateUser creates a dashboard account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	var v apperror.Collector
	v.Check(strings.TrimSpace(input.Name) != "", "name", "is required")
	if _, err := mail.ParseAddress(input.Email); err != nil {
		v.Add("email", "must be a valid email address")
	}
	v.Check(input.Role.IsValid(), "role", "must be one of admin, receptionist, storekeeper")
	v.Check(len(input.Password) >= minPasswordLength, "password", "must be at least 8 characters")
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}
	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.userRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Phone number already in use")
		}
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     input.Role,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every dashboard account
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput is a partial update. Nil fields keep their value.
type UpdateUserInput struct {
	Name     *string
	Phone    *string
	Role     *enum.UserRole
	IsActive *bool
	Password *string
}

// UpdateUser edits an account. An admin cannot demote or disable themselves.
func (s *UserService) UpdateUser(ctx context.Context, actor, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	var v apperror.Collector
	if input.Role != nil {
		v.Check(input.Role.IsValid(), "role", "must be one of admin, receptionist, storekeeper")
	}
	if input.Password != nil {
		v.Check(len(*input.Password) >= minPasswordLength, "password", "must be at least 8 characters")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor == userID {
		if input.Role != nil && *input.Role != user.Role {
			return nil, apperror.NewBadRequestError("You cannot change your own role")
		}
		if input.IsActive != nil && !*input.IsActive {
			return nil, apperror.NewBadRequestError("You cannot disable your own account")
		}
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			user.Phone = nil
		} else {
			existing, err := s.userRepo.GetByPhone(ctx, *input.Phone)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, apperror.NewConflictError("Phone number already in use")
			}
			user.Phone = input.Phone
		}
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor, userID uuid.UUID) error {
	if actor == userID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
