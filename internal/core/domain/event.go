package domain

import "time"

// BookingEvent represents a status change recorded to the audit trail.
type BookingEvent struct {
	Reference string
	Status    BookingStatus
	Timestamp time.Time
	Actor     string
	Notes     string
}
