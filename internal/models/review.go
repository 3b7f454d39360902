package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review mutates a Car's rating aggregate only once approved and not hidden.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	CarID      primitive.ObjectID `bson:"car_id" json:"carId"`
	BookingID  primitive.ObjectID `bson:"booking_id" json:"bookingId"`
	Rating     int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment    string             `bson:"comment" json:"comment"`
	IsApproved bool               `bson:"is_approved" json:"isApproved"`
	IsHidden   bool               `bson:"is_hidden" json:"isHidden"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (r *Review) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	return nil
}

func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.UserID.IsZero() {
		return fmt.Errorf("invalid user ID")
	}
	if r.CarID.IsZero() {
		return fmt.Errorf("invalid car ID")
	}
	if strings.TrimSpace(r.Comment) == "" {
		return fmt.Errorf("comment is required")
	}
	return nil
}

func (r *Review) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)
}
