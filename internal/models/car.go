package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Transmission string

const (
	TransmissionAutomatic Transmission = "automatic"
	TransmissionManual    Transmission = "manual"
)

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

// Car is a catalog entry. Rating aggregates are derived: AverageRating and
// TotalReviews cover only reviews with is_approved && !is_hidden and are
// recomputed whenever moderation changes a review.
type Car struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Make          string             `bson:"make" json:"make" validate:"required"`
	ModelName     string             `bson:"model_name" json:"modelName" validate:"required"`
	Year          int                `bson:"year" json:"year" validate:"required,min=1950"`
	Type          string             `bson:"type" json:"type" validate:"required"`
	Transmission  Transmission       `bson:"transmission" json:"transmission" validate:"required,oneof=automatic manual"`
	FuelType      FuelType           `bson:"fuel_type" json:"fuelType" validate:"required"`
	Seats         int                `bson:"seats" json:"seats" validate:"required,min=1"`
	Doors         int                `bson:"doors" json:"doors" validate:"required,min=1"`
	PricePerDay   float64            `bson:"price_per_day" json:"pricePerDay" validate:"required,gt=0"`
	Images        []string           `bson:"images" json:"images"`
	Description   string             `bson:"description" json:"description"`
	Features      []string           `bson:"features" json:"features"`
	Location      string             `bson:"location" json:"location" validate:"required"`
	IsAvailable   bool               `bson:"is_available" json:"isAvailable"`
	Mileage       int                `bson:"mileage" json:"mileage" validate:"min=0"`
	Color         string             `bson:"color" json:"color"`
	LicensePlate  string             `bson:"license_plate" json:"licensePlate" validate:"required"`
	AverageRating float64            `bson:"average_rating" json:"averageRating"`
	TotalReviews  int                `bson:"total_reviews" json:"totalReviews"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CarFilter carries the query parameters of GET /api/cars. Values are passed
// through to the repository without further validation.
type CarFilter struct {
	Search       string
	Type         string
	Location     string
	MinPrice     float64
	MaxPrice     float64
	Transmission string
	FuelType     string
	Seats        int
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	TotalCars   int  `json:"totalCars"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type CarsResponse struct {
	Cars       []*Car     `json:"cars"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination derives page metadata from a total count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		TotalCars:   total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}
}
