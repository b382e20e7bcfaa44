package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
	// Delete removes a role. Implementations must fail with domain.ErrRoleInUse
	// when any user still references the role.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Role, error)
}
