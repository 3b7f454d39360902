package services

import (
	"context"
	"strings"

	"github.com/emretknc/driveaway/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubUsersRepo keeps users in a map keyed by lowercased email, mirroring the
// case normalization the real repository applies.
type stubUsersRepo struct {
	users map[string]*models.User
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{users: make(map[string]*models.User)}
}

func (r *stubUsersRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := r.users[email]; ok {
		return nil, models.ErrUserExists
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = email
	r.users[email] = user
	return user, nil
}

func (r *stubUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *stubUsersRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

type stubCarsRepo struct {
	cars         map[primitive.ObjectID]*models.Car
	recalculated []primitive.ObjectID
}

func newStubCarsRepo() *stubCarsRepo {
	return &stubCarsRepo{cars: make(map[primitive.ObjectID]*models.Car)}
}

func (r *stubCarsRepo) add(car *models.Car) *models.Car {
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	r.cars[car.ID] = car
	return car
}

func (r *stubCarsRepo) CreateCar(_ context.Context, car *models.Car) (*models.Car, error) {
	return r.add(car), nil
}

func (r *stubCarsRepo) GetCarByID(_ context.Context, id primitive.ObjectID) (*models.Car, error) {
	return r.cars[id], nil
}

func (r *stubCarsRepo) QueryCars(_ context.Context, filter models.CarFilter) ([]*models.Car, int, error) {
	out := make([]*models.Car, 0, len(r.cars))
	for _, car := range r.cars {
		out = append(out, car)
	}
	return out, len(out), nil
}

func (r *stubCarsRepo) SetAvailability(_ context.Context, id primitive.ObjectID, available bool) error {
	if car, ok := r.cars[id]; ok {
		car.IsAvailable = available
	}
	return nil
}

func (r *stubCarsRepo) RecalculateRating(_ context.Context, carID primitive.ObjectID) error {
	r.recalculated = append(r.recalculated, carID)
	return nil
}

type stubBookingsRepo struct {
	bookings []*models.Booking
}

func (r *stubBookingsRepo) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}
	booking.Status = models.BookingPending
	r.bookings = append(r.bookings, booking)
	return booking, nil
}

func (r *stubBookingsRepo) GetBookingByIdempotencyKey(_ context.Context, userID primitive.ObjectID, key string) (*models.Booking, error) {
	if key == "" {
		return nil, nil
	}
	for _, b := range r.bookings {
		if b.UserID == userID && b.IdempotencyKey == key {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBookingsRepo) GetBookingsByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingsRepo) GetCompletedBooking(_ context.Context, userID, carID primitive.ObjectID) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.UserID == userID && b.CarID == carID && b.Status == models.BookingCompleted {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBookingsRepo) SetBookingStatus(_ context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return nil
}

type stubReviewsRepo struct {
	reviews []*models.Review
}

func (r *stubReviewsRepo) CreateReview(_ context.Context, review *models.Review) (*models.Review, error) {
	if err := review.Validate(); err != nil {
		return nil, err
	}
	if err := review.BeforeCreate(); err != nil {
		return nil, err
	}
	r.reviews = append(r.reviews, review)
	return review, nil
}

func (r *stubReviewsRepo) GetReviewByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	for _, rev := range r.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}
	return nil, nil
}

func (r *stubReviewsRepo) GetVisibleReviewsByCar(_ context.Context, carID primitive.ObjectID) ([]*models.Review, error) {
	out := make([]*models.Review, 0)
	for _, rev := range r.reviews {
		if rev.CarID == carID && rev.IsApproved && !rev.IsHidden {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *stubReviewsRepo) GetReviewsByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Review, error) {
	var out []*models.Review
	for _, rev := range r.reviews {
		if rev.UserID == userID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *stubReviewsRepo) SetReviewApproval(_ context.Context, id primitive.ObjectID, approved bool) error {
	for _, rev := range r.reviews {
		if rev.ID == id {
			rev.IsApproved = approved
		}
	}
	return nil
}

func (r *stubReviewsRepo) SetReviewHidden(_ context.Context, id primitive.ObjectID, hidden bool) error {
	for _, rev := range r.reviews {
		if rev.ID == id {
			rev.IsHidden = hidden
		}
	}
	return nil
}
