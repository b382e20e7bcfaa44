package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// UserService manages user accounts. Email uniqueness is enforced at write
// time with a case-sensitive exact match.
type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

// CreateUser hashes the credential and persists a new account, defaulting to
// active status.
func (s *UserService) CreateUser(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.RoleID == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email, role and password are required", domain.ErrValidation)
	}

	if _, err := s.roles.FindByID(ctx, input.RoleID); err != nil {
		return nil, err
	}

	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		RoleID:       input.RoleID,
		Status:       status,
		PasswordHash: string(hash),
		AvatarURL:    input.AvatarURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role_id", input.RoleID).Msg("user created")
	return created, nil
}

// UpdateUser edits an account. An email change that collides with another
// account fails with domain.ErrDuplicateEmail; an empty password leaves the
// credential unchanged.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		other, err := s.users.FindByEmail(ctx, input.Email)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateEmail, input.Email)
		}
		user.Email = input.Email
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.RoleID != "" {
		if _, err := s.roles.FindByID(ctx, input.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = input.RoleID
	}
	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		user.Status = status
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.AvatarURL = input.AvatarURL
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func parseStatus(status string) (domain.UserStatus, error) {
	switch status {
	case "":
		return domain.UserActive, nil
	case string(domain.UserActive):
		return domain.UserActive, nil
	case string(domain.UserInactive):
		return domain.UserInactive, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
}
