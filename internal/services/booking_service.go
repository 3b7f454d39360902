package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emretknc/driveaway/internal/helpers"
	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/payments"
	"github.com/emretknc/driveaway/internal/pricing"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNoQuote means the submitted date range does not produce a price:
// same-day and inverted ranges alike.
var ErrNoQuote = errors.New("please select valid dates")

var ErrCarUnavailable = errors.New("car is not available for booking")

type BookingService struct {
	bookingsRepo models.BookingsRepo
	carsRepo     models.CarsRepo
	payments     *payments.Provider
}

func NewBookingService(bookingsRepo models.BookingsRepo, carsRepo models.CarsRepo, payments *payments.Provider) *BookingService {
	return &BookingService{
		bookingsRepo: bookingsRepo,
		carsRepo:     carsRepo,
		payments:     payments,
	}
}

type CheckoutInput struct {
	UserID          primitive.ObjectID
	CarID           primitive.ObjectID
	StartDate       string
	EndDate         string
	PickupLocation  string
	DropoffLocation string
	Notes           string
	IdempotencyKey  string
}

type CheckoutResult struct {
	Booking *models.Booking
	URL     string
}

// Checkout validates the submission, prices it server-side, creates a
// pending booking and returns the hosted payment URL. A repeated submission
// with the same idempotency key returns the original booking instead of
// creating a duplicate.
func (bs *BookingService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.UserID.IsZero() || input.CarID.IsZero() {
		return nil, fmt.Errorf("invalid user or car ID")
	}
	if input.PickupLocation == "" || input.DropoffLocation == "" {
		return nil, fmt.Errorf("pickup and dropoff locations are required")
	}

	if input.IdempotencyKey != "" {
		existing, err := bs.bookingsRepo.GetBookingByIdempotencyKey(ctx, input.UserID, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &CheckoutResult{
				Booking: existing,
				URL:     bs.payments.CheckoutURL(existing),
			}, nil
		}
	}

	car, err := bs.carsRepo.GetCarByID(ctx, input.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil || !car.IsAvailable {
		return nil, ErrCarUnavailable
	}

	start, err := helpers.ParseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := helpers.ParseDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	quote := pricing.Quote(car.PricePerDay, start, end)
	if quote == nil {
		return nil, ErrNoQuote
	}

	booking := &models.Booking{
		UserID:          input.UserID,
		CarID:           input.CarID,
		StartDate:       start,
		EndDate:         end,
		TotalPrice:      quote.Total,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		Notes:           input.Notes,
		IdempotencyKey:  input.IdempotencyKey,
	}

	created, err := bs.bookingsRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Booking: created,
		URL:     bs.payments.CheckoutURL(created),
	}, nil
}

func (bs *BookingService) ListUserBookings(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("invalid user ID")
	}
	return bs.bookingsRepo.GetBookingsByUser(ctx, userID)
}

func (bs *BookingService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCompleted, models.BookingCancelled:
	default:
		return fmt.Errorf("unsupported booking status: %s", status)
	}
	return bs.bookingsRepo.SetBookingStatus(ctx, id, status)
}
