package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// LoginResult carries everything a successful login produces: the signed token
// and the session projection the client persists.
type LoginResult struct {
	Token   string
	Session domain.Session
}

// AuthService authenticates users against the account store.
type AuthService interface {
	// Login returns domain.ErrAuthenticationFailed for unknown email, wrong
	// password, and inactive accounts alike.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
