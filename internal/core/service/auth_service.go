package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// AuthService implements login against the user store. All failure modes
// (unknown email, wrong password, inactive account) collapse into
// domain.ErrAuthenticationFailed.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, roles: roles, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login authenticates a user and builds the session projection. The role
// reference is resolved to its internal name here so the session never needs a
// further lookup.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrAuthenticationFailed
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrAuthenticationFailed
	}

	if user.Status != domain.UserActive {
		s.logger.Info().Str("user_id", user.ID).Msg("login refused for inactive account")
		return nil, domain.ErrAuthenticationFailed
	}

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			s.logger.Warn().Str("user_id", user.ID).Str("role_id", user.RoleID).Msg("user references missing role")
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	session := domain.Session{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		RoleName:  role.Name,
		AvatarURL: user.AvatarURL,
		Initials:  domain.Initials(user.Name),
	}

	token, err := s.generateToken(user, role.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", role.Name).Msg("login succeeded")
	return &ports.LoginResult{Token: token, Session: session}, nil
}

func (s *AuthService) generateToken(user *domain.User, roleName string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    roleName,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
