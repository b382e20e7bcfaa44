package domain

import "time"

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment type values. Physical payments distinguish card from cash.
const (
	PaymentTypeOnline       = "online"
	PaymentTypePhysicalCard = "physical_card"
	PaymentTypePhysicalCash = "physical_cash"
)

// Payment is a settlement record shown on the console's payment screen. The
// booking reference is optional; walk-in payments have none. TransactionID is
// the gateway's identifier when one exists.
type Payment struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	CustomerName     string        `json:"customer_name" bson:"customer_name"`
	CustomerEmail    string        `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	PhysicianName    string        `json:"physician_name" bson:"physician_name"`
	BookingReference string        `json:"booking_reference,omitempty" bson:"booking_reference,omitempty"`
	PaymentDate      time.Time     `json:"payment_date" bson:"payment_date"`
	Amount           float64       `json:"amount" bson:"amount"`
	Type             string        `json:"type" bson:"type"`
	Status           PaymentStatus `json:"status" bson:"status"`
	TransactionID    string        `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
}
