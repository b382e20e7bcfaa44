package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

const collectionBookingEvents = "booking_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// InsertEvent persists a booking status event to the audit collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.BookingEvent) error {
	doc := bson.M{
		"reference":   event.Reference,
		"status":      string(event.Status),
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Actor != "" {
		doc["actor"] = event.Actor
	}
	if event.Notes != "" {
		doc["notes"] = event.Notes
	}

	if _, err := r.db.Collection(collectionBookingEvents).InsertOne(ctx, doc); err != nil {
		return &domain.PersistenceError{Op: "insert booking event", Err: err}
	}
	return nil
}
