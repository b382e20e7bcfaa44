package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// RoleInput carries the editable fields of a role.
type RoleInput struct {
	Name        string
	Title       string
	Description string
}

// RoleService manages the role catalog, enforcing core-role protection and
// internal-name immutability.
type RoleService interface {
	CreateRole(ctx context.Context, input RoleInput) (*domain.Role, error)
	UpdateRole(ctx context.Context, id string, input RoleInput) (*domain.Role, error)
	DeleteRole(ctx context.Context, id string) error
	ListRoles(ctx context.Context) ([]*domain.Role, error)
}

// PhysicianInput carries the editable fields of a physician.
type PhysicianInput struct {
	Name         string
	Specialty    string
	RatePhysical *float64
	RateOnline   *float64
	Email        string
	Phone        string
	Bio          string
	AvatarURL    string
}

// PhysicianService manages physicians, guarding deletes against referencing
// bookings.
type PhysicianService interface {
	CreatePhysician(ctx context.Context, input PhysicianInput) (*domain.Physician, error)
	GetPhysician(ctx context.Context, id string) (*domain.Physician, error)
	UpdatePhysician(ctx context.Context, id string, input PhysicianInput) (*domain.Physician, error)
	DeletePhysician(ctx context.Context, id string) error
	ListPhysicians(ctx context.Context) ([]*domain.Physician, error)
}

// UserInput carries the editable fields of a user account. Password is used on
// creation and on explicit credential changes; empty means unchanged.
type UserInput struct {
	Name      string
	Email     string
	RoleID    string
	Password  string
	Status    string
	AvatarURL string
}

// UserService manages user accounts.
type UserService interface {
	CreateUser(ctx context.Context, input UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// ListPaymentsInput pages and filters the console's payment listing.
type ListPaymentsInput struct {
	Status     string
	Type       string
	BookingRef string
	Page       int
	Limit      int
}

// ListPaymentsResult is returned by ListPayments.
type ListPaymentsResult struct {
	Items      []*domain.Payment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PaymentService exposes the payment transaction history.
type PaymentService interface {
	RecordPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	ListPayments(ctx context.Context, input ListPaymentsInput) (*ListPaymentsResult, error)
}
