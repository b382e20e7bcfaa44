package domain

import (
	"errors"
	"time"
)

// UserStatus gates whether an account may authenticate.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already exists")

// ErrAuthenticationFailed covers unknown email, wrong credential, and inactive
// account alike, so callers cannot enumerate accounts.
var ErrAuthenticationFailed = errors.New("authentication failed")

// User models a durable account record. Distinct from Session, which is the
// client-held projection produced by a successful login.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	RoleID       string     `json:"role_id" bson:"role_id"`
	Status       UserStatus `json:"status" bson:"status"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	AvatarURL    string     `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
