package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
	// CountByRole returns the number of users referencing a role. The mongo
	// implementation uses it to refuse deleting a role still in use.
	CountByRole(ctx context.Context, roleID string) (int64, error)
}
