package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// ListPaymentsFilter narrows and pages the payment listing.
type ListPaymentsFilter struct {
	Status     string
	Type       string
	BookingRef string
	Page       int
	Limit      int
}

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	// List returns a page of payments matching filter, newest first, and the
	// total count.
	List(ctx context.Context, filter ListPaymentsFilter) ([]*domain.Payment, int64, error)
}
