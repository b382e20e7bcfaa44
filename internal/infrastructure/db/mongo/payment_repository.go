package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

type paymentDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName     string             `bson:"customer_name"`
	CustomerEmail    string             `bson:"customer_email,omitempty"`
	PhysicianName    string             `bson:"physician_name"`
	BookingReference string             `bson:"booking_reference,omitempty"`
	PaymentDate      int64              `bson:"payment_date"`
	Amount           float64            `bson:"amount"`
	Type             string             `bson:"type"`
	Status           string             `bson:"status"`
	TransactionID    string             `bson:"transaction_id,omitempty"`
	CreatedAt        int64              `bson:"created_at"`
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toPaymentDoc(p))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "insert payment", Err: err}
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// List returns a page of payments matching filter, newest first, and the
// total count.
func (r *PaymentRepository) List(ctx context.Context, filter ports.ListPaymentsFilter) ([]*domain.Payment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.BookingRef != "" {
		query["booking_reference"] = filter.BookingRef
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, &domain.PersistenceError{Op: "count payments", Err: err}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "payment_date", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, &domain.PersistenceError{Op: "list payments", Err: err}
	}
	defer cur.Close(ctx)

	var payments []*domain.Payment
	for cur.Next(ctx) {
		var doc paymentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, &domain.PersistenceError{Op: "decode payment", Err: err}
		}
		payments = append(payments, fromPaymentDoc(&doc))
	}
	return payments, total, cur.Err()
}

func toPaymentDoc(p *domain.Payment) paymentDoc {
	return paymentDoc{
		CustomerName:     p.CustomerName,
		CustomerEmail:    p.CustomerEmail,
		PhysicianName:    p.PhysicianName,
		BookingReference: p.BookingReference,
		PaymentDate:      p.PaymentDate.Unix(),
		Amount:           p.Amount,
		Type:             p.Type,
		Status:           string(p.Status),
		TransactionID:    p.TransactionID,
		CreatedAt:        p.CreatedAt.Unix(),
	}
}

func fromPaymentDoc(doc *paymentDoc) *domain.Payment {
	return &domain.Payment{
		ID:               doc.ID.Hex(),
		CustomerName:     doc.CustomerName,
		CustomerEmail:    doc.CustomerEmail,
		PhysicianName:    doc.PhysicianName,
		BookingReference: doc.BookingReference,
		PaymentDate:      unixToTime(doc.PaymentDate),
		Amount:           doc.Amount,
		Type:             doc.Type,
		Status:           domain.PaymentStatus(doc.Status),
		TransactionID:    doc.TransactionID,
		CreatedAt:        unixToTime(doc.CreatedAt),
	}
}
