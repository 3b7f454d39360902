package services

import (
	"context"
	"testing"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReviewFixture(t *testing.T) (*ReviewService, *stubReviewsRepo, *stubCarsRepo, primitive.ObjectID, *models.Car) {
	t.Helper()

	reviews := &stubReviewsRepo{}
	bookings := &stubBookingsRepo{}
	cars := newStubCarsRepo()
	car := cars.add(&models.Car{Make: "Toyota", ModelName: "Camry", PricePerDay: 65, IsAvailable: true})

	userID := primitive.NewObjectID()
	booking, err := bookings.CreateBooking(context.Background(), &models.Booking{
		UserID: userID,
		CarID:  car.ID,
	})
	require.NoError(t, err)
	require.NoError(t, bookings.SetBookingStatus(context.Background(), booking.ID, models.BookingCompleted))

	return NewReviewService(reviews, bookings, cars), reviews, cars, userID, car
}

func TestSubmitReviewStartsUnapproved(t *testing.T) {
	svc, repo, _, userID, car := newReviewFixture(t)

	review, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  5,
		Comment: "  Excellent car!  ",
	})
	require.NoError(t, err)

	assert.False(t, review.IsApproved)
	assert.False(t, review.IsHidden)
	assert.Equal(t, "Excellent car!", review.Comment)
	assert.Len(t, repo.reviews, 1)
}

func TestSubmitReviewLinksCompletedBooking(t *testing.T) {
	reviews := &stubReviewsRepo{}
	bookings := &stubBookingsRepo{}
	cars := newStubCarsRepo()
	car := cars.add(&models.Car{Make: "Toyota", ModelName: "Camry", PricePerDay: 65, IsAvailable: true})
	svc := NewReviewService(reviews, bookings, cars)

	userID := primitive.NewObjectID()
	booking, err := bookings.CreateBooking(context.Background(), &models.Booking{
		UserID: userID,
		CarID:  car.ID,
	})
	require.NoError(t, err)
	require.NoError(t, bookings.SetBookingStatus(context.Background(), booking.ID, models.BookingCompleted))

	review, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  5,
		Comment: "Excellent car!",
	})
	require.NoError(t, err)

	assert.False(t, review.BookingID.IsZero())
	assert.Equal(t, booking.ID, review.BookingID)
}

func TestSubmitReviewRejectsWhitespaceComment(t *testing.T) {
	svc, repo, _, userID, car := newReviewFixture(t)

	_, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  5,
		Comment: "   \t\n  ",
	})
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.Empty(t, repo.reviews)
}

func TestSubmitReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _, userID, car := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.SubmitReview(context.Background(), ReviewInput{
			UserID:  userID,
			CarID:   car.ID,
			Rating:  rating,
			Comment: "Great car",
		})
		assert.Error(t, err, "rating %d should be rejected", rating)
	}
}

func TestSubmitReviewRequiresCompletedBooking(t *testing.T) {
	svc, repo, _, _, car := newReviewFixture(t)

	// a user with no booking history for this car
	_, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  primitive.NewObjectID(),
		CarID:   car.ID,
		Rating:  4,
		Comment: "Never actually rented it",
	})
	assert.ErrorIs(t, err, ErrNoCompletedBooking)
	assert.Empty(t, repo.reviews)
}

func TestApproveRecalculatesCarRating(t *testing.T) {
	svc, _, cars, userID, car := newReviewFixture(t)

	review, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  5,
		Comment: "Excellent car!",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), review.ID))
	assert.True(t, review.IsApproved)
	require.Len(t, cars.recalculated, 1)
	assert.Equal(t, car.ID, cars.recalculated[0])
}

func TestHideRecalculatesCarRating(t *testing.T) {
	svc, _, cars, userID, car := newReviewFixture(t)

	review, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  1,
		Comment: "Spam review",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(context.Background(), review.ID))

	require.NoError(t, svc.Hide(context.Background(), review.ID))
	assert.True(t, review.IsHidden)
	assert.Len(t, cars.recalculated, 2)
}

func TestModerateUnknownReviewFails(t *testing.T) {
	svc, _, cars, _, _ := newReviewFixture(t)

	assert.Error(t, svc.Approve(context.Background(), primitive.NewObjectID()))
	assert.Empty(t, cars.recalculated)
}

func TestListUserReviewsIncludesUnmoderated(t *testing.T) {
	svc, _, _, userID, car := newReviewFixture(t)

	_, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  4,
		Comment: "Still awaiting moderation",
	})
	require.NoError(t, err)

	mine, err := svc.ListUserReviews(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].IsApproved)

	other, err := svc.ListUserReviews(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestHiddenReviewLeavesVisibleSet(t *testing.T) {
	svc, repo, _, userID, car := newReviewFixture(t)

	review, err := svc.SubmitReview(context.Background(), ReviewInput{
		UserID:  userID,
		CarID:   car.ID,
		Rating:  5,
		Comment: "Excellent car!",
	})
	require.NoError(t, err)

	visible, err := repo.GetVisibleReviewsByCar(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Empty(t, visible, "unapproved reviews are not visible")

	require.NoError(t, svc.Approve(context.Background(), review.ID))
	visible, _ = repo.GetVisibleReviewsByCar(context.Background(), car.ID)
	assert.Len(t, visible, 1)

	require.NoError(t, svc.Hide(context.Background(), review.ID))
	visible, _ = repo.GetVisibleReviewsByCar(context.Background(), car.ID)
	assert.Empty(t, visible)
}
