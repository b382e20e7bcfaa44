package ports

import (
	"context"

	"github.com/medibook/appointment-system/internal/core/domain"
)

// AuditRepository persists booking status changes to the audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.BookingEvent) error
}
