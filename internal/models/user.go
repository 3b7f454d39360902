package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email           string             `bson:"email" json:"email" validate:"required,email"`
	Password        string             `bson:"password" json:"-" validate:"required,min=8"`
	FirstName       string             `bson:"first_name" json:"firstName" validate:"required"`
	LastName        string             `bson:"last_name" json:"lastName" validate:"required"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsAdmin         bool               `bson:"is_admin" json:"isAdmin"`
	IsEmailVerified bool               `bson:"is_email_verified" json:"isEmailVerified"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
