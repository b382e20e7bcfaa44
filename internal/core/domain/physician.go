package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrPhysicianNotFound = errors.New("physician not found")

// PhysicianHasBookingsError blocks deleting a physician that bookings still
// reference, regardless of booking status.
type PhysicianHasBookingsError struct {
	Count int64
}

func (e *PhysicianHasBookingsError) Error() string {
	return fmt.Sprintf("physician is referenced by %d booking(s)", e.Count)
}

// Physician is a bookable practitioner. Rates are nil when a consultation type
// is not offered.
type Physician struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Specialty    string    `json:"specialty" bson:"specialty"`
	RatePhysical *float64  `json:"rate_physical,omitempty" bson:"rate_physical,omitempty"`
	RateOnline   *float64  `json:"rate_online,omitempty" bson:"rate_online,omitempty"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
