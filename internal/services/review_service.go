package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emretknc/driveaway/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrNoCompletedBooking: reviews are only accepted after the reviewer
	// finished a rental of the car.
	ErrNoCompletedBooking = errors.New("you can only review cars you have rented")
)

type ReviewService struct {
	reviewsRepo  models.ReviewsRepo
	bookingsRepo models.BookingsRepo
	carsRepo     models.CarsRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo, bookingsRepo models.BookingsRepo, carsRepo models.CarsRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo:  reviewsRepo,
		bookingsRepo: bookingsRepo,
		carsRepo:     carsRepo,
	}
}

type ReviewInput struct {
	UserID  primitive.ObjectID
	CarID   primitive.ObjectID
	Rating  int
	Comment string
}

// SubmitReview creates an unapproved review. It does not touch the car's
// rating aggregate; that happens at moderation time.
func (rs *ReviewService) SubmitReview(ctx context.Context, input ReviewInput) (*models.Review, error) {
	if input.UserID.IsZero() || input.CarID.IsZero() {
		return nil, fmt.Errorf("invalid user or car ID")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, ErrEmptyComment
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	booking, err := rs.bookingsRepo.GetCompletedBooking(ctx, input.UserID, input.CarID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrNoCompletedBooking
	}

	review := &models.Review{
		UserID:     input.UserID,
		CarID:      input.CarID,
		BookingID:  booking.ID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		IsApproved: false,
		IsHidden:   false,
	}
	review.Sanitize()

	return rs.reviewsRepo.CreateReview(ctx, review)
}

// ListUserReviews returns everything the user has written, including reviews
// still awaiting moderation.
func (rs *ReviewService) ListUserReviews(ctx context.Context, userID primitive.ObjectID) ([]*models.Review, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("invalid user ID")
	}
	return rs.reviewsRepo.GetReviewsByUser(ctx, userID)
}

// Approve marks a review approved and recomputes the car aggregate so that
// average_rating and total_reviews stay consistent with the visible set.
func (rs *ReviewService) Approve(ctx context.Context, reviewID primitive.ObjectID) error {
	return rs.moderate(ctx, reviewID, func(id primitive.ObjectID) error {
		return rs.reviewsRepo.SetReviewApproval(ctx, id, true)
	})
}

// Hide removes a review from the visible set and recomputes the aggregate.
func (rs *ReviewService) Hide(ctx context.Context, reviewID primitive.ObjectID) error {
	return rs.moderate(ctx, reviewID, func(id primitive.ObjectID) error {
		return rs.reviewsRepo.SetReviewHidden(ctx, id, true)
	})
}

func (rs *ReviewService) moderate(ctx context.Context, reviewID primitive.ObjectID, apply func(primitive.ObjectID) error) error {
	if reviewID.IsZero() {
		return fmt.Errorf("invalid review ID")
	}
	review, err := rs.reviewsRepo.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return fmt.Errorf("review not found")
	}
	if err := apply(reviewID); err != nil {
		return err
	}
	return rs.carsRepo.RecalculateRating(ctx, review.CarID)
}
