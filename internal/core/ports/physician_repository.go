package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// PhysicianRepository defines persistence operations for physicians.
type PhysicianRepository interface {
	Create(ctx context.Context, p *domain.Physician) (*domain.Physician, error)
	FindByID(ctx context.Context, id string) (*domain.Physician, error)
	Update(ctx context.Context, p *domain.Physician) (*domain.Physician, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Physician, error)
}
