package services

import (
	"context"
	"testing"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBookingFixture() (*BookingService, *stubBookingsRepo, *stubCarsRepo, *models.Car) {
	bookings := &stubBookingsRepo{}
	cars := newStubCarsRepo()
	car := cars.add(&models.Car{
		Make:        "Toyota",
		ModelName:   "Camry",
		PricePerDay: 65,
		IsAvailable: true,
		Location:    "New York, NY",
	})
	svc := NewBookingService(bookings, cars, payments.NewProvider("https://pay.example.com"))
	return svc, bookings, cars, car
}

func TestCheckoutCreatesPendingBooking(t *testing.T) {
	svc, bookings, _, car := newBookingFixture()
	userID := primitive.NewObjectID()

	result, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:          userID,
		CarID:           car.ID,
		StartDate:       "2024-01-15",
		EndDate:         "2024-01-18",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, result.Booking.Status)
	// 3 days at 65/day plus 8% tax
	assert.InDelta(t, 210.6, result.Booking.TotalPrice, 1e-9)
	assert.Contains(t, result.URL, result.Booking.ID.Hex())
	assert.Len(t, bookings.bookings, 1)
}

func TestCheckoutPricesServerSide(t *testing.T) {
	svc, _, cars, _ := newBookingFixture()
	luxury := cars.add(&models.Car{
		Make: "BMW", ModelName: "X5", PricePerDay: 150, IsAvailable: true,
	})

	result, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:          primitive.NewObjectID(),
		CarID:           luxury.ID,
		StartDate:       "2024-02-10",
		EndDate:         "2024-02-12",
		PickupLocation:  "Miami, FL",
		DropoffLocation: "Miami, FL",
	})
	require.NoError(t, err)
	assert.InDelta(t, 324.0, result.Booking.TotalPrice, 1e-9)
}

func TestCheckoutRejectsSameDayRange(t *testing.T) {
	svc, bookings, _, car := newBookingFixture()

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:          primitive.NewObjectID(),
		CarID:           car.ID,
		StartDate:       "2024-01-15",
		EndDate:         "2024-01-15",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
	})
	assert.ErrorIs(t, err, ErrNoQuote)
	assert.Empty(t, bookings.bookings)
}

func TestCheckoutRejectsInvertedRange(t *testing.T) {
	svc, _, _, car := newBookingFixture()

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:          primitive.NewObjectID(),
		CarID:           car.ID,
		StartDate:       "2024-01-18",
		EndDate:         "2024-01-15",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
	})
	assert.ErrorIs(t, err, ErrNoQuote)
}

func TestCheckoutRejectsUnavailableCar(t *testing.T) {
	svc, _, cars, car := newBookingFixture()
	cars.cars[car.ID].IsAvailable = false

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:          primitive.NewObjectID(),
		CarID:           car.ID,
		StartDate:       "2024-01-15",
		EndDate:         "2024-01-18",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
	})
	assert.ErrorIs(t, err, ErrCarUnavailable)
}

func TestCheckoutRejectsUnknownCar(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:          primitive.NewObjectID(),
		CarID:           primitive.NewObjectID(),
		StartDate:       "2024-01-15",
		EndDate:         "2024-01-18",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
	})
	assert.ErrorIs(t, err, ErrCarUnavailable)
}

func TestCheckoutIdempotencyReplay(t *testing.T) {
	svc, bookings, _, car := newBookingFixture()
	userID := primitive.NewObjectID()

	input := CheckoutInput{
		UserID:          userID,
		CarID:           car.ID,
		StartDate:       "2024-01-15",
		EndDate:         "2024-01-18",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
		IdempotencyKey:  "retry-key-1",
	}

	first, err := svc.Checkout(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Checkout(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Equal(t, first.URL, second.URL)
	assert.Len(t, bookings.bookings, 1)
}

func TestCheckoutIdempotencyKeyIsPerUser(t *testing.T) {
	svc, bookings, _, car := newBookingFixture()

	input := CheckoutInput{
		CarID:           car.ID,
		StartDate:       "2024-01-15",
		EndDate:         "2024-01-18",
		PickupLocation:  "New York, NY",
		DropoffLocation: "New York, NY",
		IdempotencyKey:  "shared-key",
	}

	input.UserID = primitive.NewObjectID()
	_, err := svc.Checkout(context.Background(), input)
	require.NoError(t, err)

	input.UserID = primitive.NewObjectID()
	_, err = svc.Checkout(context.Background(), input)
	require.NoError(t, err)

	assert.Len(t, bookings.bookings, 2)
}

func TestCheckoutRequiresLocations(t *testing.T) {
	svc, _, _, car := newBookingFixture()

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:    primitive.NewObjectID(),
		CarID:     car.ID,
		StartDate: "2024-01-15",
		EndDate:   "2024-01-18",
	})
	assert.Error(t, err)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, bookings, _, car := newBookingFixture()
	booking, err := bookings.CreateBooking(context.Background(), &models.Booking{
		UserID: primitive.NewObjectID(),
		CarID:  car.ID,
	})
	require.NoError(t, err)

	assert.Error(t, svc.SetStatus(context.Background(), booking.ID, "shipped"))
	require.NoError(t, svc.SetStatus(context.Background(), booking.ID, models.BookingConfirmed))
	assert.Equal(t, models.BookingConfirmed, booking.Status)
}
