package handlers

import (
	"errors"
	"net/http"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type checkoutRequest struct {
	CarID           string  `json:"carId" binding:"required"`
	StartDate       string  `json:"startDate" binding:"required"`
	EndDate         string  `json:"endDate" binding:"required"`
	TotalPrice      float64 `json:"totalPrice"`
	PickupLocation  string  `json:"pickupLocation" binding:"required"`
	DropoffLocation string  `json:"dropoffLocation" binding:"required"`
	Notes           string  `json:"notes"`
}

// Checkout handles POST /api/checkout. The submitted totalPrice is accepted
// for the request shape but the charge is always the server-side quote.
func Checkout(bs *services.BookingService) gin.HandlerFunc {
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

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		carID, err := primitive.ObjectIDFromHex(req.CarID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid car ID format"))
			return
		}

		result, err := bs.Checkout(c.Request.Context(), services.CheckoutInput{
			UserID:          userID,
			CarID:           carID,
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			PickupLocation:  req.PickupLocation,
			DropoffLocation: req.DropoffLocation,
			Notes:           req.Notes,
			IdempotencyKey:  c.GetHeader("Idempotency-Key"),
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoQuote):
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			case errors.Is(err, services.ErrCarUnavailable):
				c.JSON(http.StatusConflict, models.ErrorResponse(err.Error()))
			default:
				c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Booking created successfully",
			"url":     result.URL,
		})
	}
}

func ListMyBookings(bs *services.BookingService) gin.HandlerFunc {
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

		bookings, err := bs.ListUserBookings(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

// SetBookingStatus is the admin hook for externally driven transitions
// (payment confirmed, rental completed, cancellation).
func SetBookingStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can update booking status"))
			return
		}

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			return
		}

		var body struct {
			Status models.BookingStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if err := bs.SetStatus(c.Request.Context(), id, body.Status); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Booking status updated"))
	}
}
