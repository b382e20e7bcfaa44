package domain

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrBookingNotFound = errors.New("booking not found")

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Service types a booking can be made for.
const (
	ServicePhysical = "physical"
	ServiceOnline   = "online"
)

// StatusHistoryEntry records a single status change on a booking.
type StatusHistoryEntry struct {
	Status    BookingStatus `json:"status" bson:"status"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Booking is the core aggregate root: a customer's appointment with a physician
// at a resolved instant. Bookings are created in pending status only.
type Booking struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	Reference      string               `json:"reference" bson:"reference"`
	CustomerName   string               `json:"customer_name" bson:"customer_name"`
	CustomerEmail  string               `json:"customer_email" bson:"customer_email"`
	PhysicianID    string               `json:"physician_id" bson:"physician_id"`
	PhysicianName  string               `json:"physician_name,omitempty" bson:"physician_name,omitempty"`
	StartAt        time.Time            `json:"start_at" bson:"start_at"`
	ServiceType    string               `json:"service_type,omitempty" bson:"service_type,omitempty"`
	Status         BookingStatus        `json:"status" bson:"status"`
	Notes          string               `json:"notes,omitempty" bson:"notes,omitempty"`
	IdempotencyKey string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}
