package handlers

import (
	"errors"
	"net/http"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewRequest struct {
	CarID   string `json:"carId" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitReview handles POST /api/reviews. Created reviews await moderation
// and do not change the car's rating until approved.
func SubmitReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		carID, err := primitive.ObjectIDFromHex(req.CarID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid car ID format"))
			return
		}

		review, err := rs.SubmitReview(c.Request.Context(), services.ReviewInput{
			UserID:  userID,
			CarID:   carID,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyComment):
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			case errors.Is(err, services.ErrNoCompletedBooking):
				c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
			default:
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			}
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review submitted for approval"))
	}
}

// MyReviews handles GET /api/reviews/mine: the caller's review history,
// moderation state included.
func MyReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
			return
		}

		reviews, err := rs.ListUserReviews(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

func ApproveReview(rs *services.ReviewService) gin.HandlerFunc {
	return moderateReview(rs, func(rs *services.ReviewService, c *gin.Context, id primitive.ObjectID) error {
		return rs.Approve(c.Request.Context(), id)
	}, "Review approved")
}

func HideReview(rs *services.ReviewService) gin.HandlerFunc {
	return moderateReview(rs, func(rs *services.ReviewService, c *gin.Context, id primitive.ObjectID) error {
		return rs.Hide(c.Request.Context(), id)
	}, "Review hidden")
}

func moderateReview(rs *services.ReviewService, apply func(*services.ReviewService, *gin.Context, primitive.ObjectID) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can moderate reviews"))
			return
		}

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			return
		}

		if err := apply(rs, c, id); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, message))
	}
}
