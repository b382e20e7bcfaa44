package ports

import (
	"context"
	"time"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// ListBookingsFilter carries all query parameters for listing bookings.
type ListBookingsFilter struct {
	Status      string    // optional: filter by booking status
	ServiceType string    // optional: filter by service type
	PhysicianID string    // optional: scope to one physician
	Search      string    // optional: partial match on reference or customer_name
	DateFrom    time.Time // optional: start_at >= DateFrom
	DateTo      time.Time // optional: start_at <= DateTo
	Page        int       // 1-based
	Limit       int       // max rows per page (capped at 100 by service)
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByReference(ctx context.Context, reference string) (*domain.Booking, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	// UpdateStatus atomically sets the new status and appends a history entry.
	UpdateStatus(ctx context.Context, reference string, status domain.BookingStatus, ts time.Time, notes string) error
	// CountByPhysician returns the number of bookings referencing a physician,
	// regardless of status. Used by the pre-delete referential guard.
	CountByPhysician(ctx context.Context, physicianID string) (int64, error)
	// List returns a page of bookings matching filter and the total count.
	List(ctx context.Context, filter ListBookingsFilter) ([]*domain.Booking, int64, error)
}
