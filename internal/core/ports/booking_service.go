package ports

import (
	"context"
	"time"
)

// CreateBookingInput carries all data needed to create a new booking. Date and
// SlotLabel come straight from the booking form; the service resolves them into
// a single instant.
type CreateBookingInput struct {
	CustomerName   string
	CustomerEmail  string
	PhysicianID    string
	Date           time.Time // calendar date; time-of-day is ignored
	SlotLabel      string    // e.g. "09:30 AM"
	ServiceType    string    // "physical", "online", or empty
	Notes          string
	IdempotencyKey string
}

// BookingResult is returned by the service after creating a booking. The
// physician name is resolved so the confirmation view needs no second fetch.
type BookingResult struct {
	Reference     string
	Status        string
	StartAt       time.Time
	PhysicianID   string
	PhysicianName string
	CreatedAt     time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing booking.
	AlreadyExisted bool
}

// StatusHistoryItem is a single entry in the booking's status history.
type StatusHistoryItem struct {
	Status    string
	Timestamp time.Time
	Notes     string
}

// BookingDetail is the full booking view returned by GetBooking.
type BookingDetail struct {
	Reference     string
	Status        string
	ServiceType   string
	CustomerName  string
	CustomerEmail string
	PhysicianID   string
	PhysicianName string
	StartAt       time.Time
	Notes         string
	CreatedAt     time.Time
	StatusHistory []StatusHistoryItem
}

// BookingSummary is the lightweight view used in list responses (no history).
type BookingSummary struct {
	Reference     string
	Status        string
	ServiceType   string
	CustomerName  string
	PhysicianID   string
	PhysicianName string
	StartAt       time.Time
	CreatedAt     time.Time
}

// ListBookingsInput carries all parameters for the list endpoint.
type ListBookingsInput struct {
	Status      string
	ServiceType string
	PhysicianID string
	Search      string
	DateFrom    time.Time
	DateTo      time.Time
	Page        int
	Limit       int
}

// ListBookingsResult is returned by ListBookings.
type ListBookingsResult struct {
	Items      []BookingSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BookingService defines the booking lifecycle use-cases.
type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*BookingResult, error)
	GetBooking(ctx context.Context, reference string) (*BookingDetail, error)
	ListBookings(ctx context.Context, input ListBookingsInput) (*ListBookingsResult, error)
	// Transition operations fail with domain.ErrInvalidTransition when the
	// target state is not reachable from the current one. Actor is recorded in
	// the status history and audit trail.
	ConfirmBooking(ctx context.Context, reference, actor string) (*BookingDetail, error)
	CancelBooking(ctx context.Context, reference, actor string) (*BookingDetail, error)
	CompleteBooking(ctx context.Context, reference, actor string) (*BookingDetail, error)
}
