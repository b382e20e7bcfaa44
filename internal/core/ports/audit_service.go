package ports

import (
	"context"
	"time"
)

// BookingEventInput is the DTO enqueued by the booking lifecycle and consumed
// by the audit worker pool.
type BookingEventInput struct {
	Reference string
	Status    string
	Timestamp time.Time
	Actor     string
	Notes     string
}

// AuditService records booking status changes to the audit trail.
type AuditService interface {
	Process(ctx context.Context, event BookingEventInput) error
}
