package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is created in "pending" status at checkout. Later transitions
// (payment confirmation, admin action, time-based completion) arrive from
// outside this service.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId" validate:"required"`
	CarID           primitive.ObjectID `bson:"car_id" json:"carId" validate:"required"`
	StartDate       time.Time          `bson:"start_date" json:"startDate" validate:"required"`
	EndDate         time.Time          `bson:"end_date" json:"endDate" validate:"required"`
	TotalPrice      float64            `bson:"total_price" json:"totalPrice" validate:"min=0"`
	Status          BookingStatus      `bson:"status" json:"status"`
	PickupLocation  string             `bson:"pickup_location" json:"pickupLocation" validate:"required"`
	DropoffLocation string             `bson:"dropoff_location" json:"dropoffLocation" validate:"required"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	// IdempotencyKey deduplicates retried checkout submissions. Empty when
	// the client did not send one.
	IdempotencyKey string    `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	return nil
}
