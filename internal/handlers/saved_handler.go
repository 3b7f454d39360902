package handlers

import (
	"net/http"
	"strings"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func SaveCar(ss *services.SavedCarsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, carID, ok := savedCarArgs(c)
		if !ok {
			return
		}

		saved, err := ss.SaveCar(c.Request.Context(), userID, carID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(saved, "Car saved"))
	}
}

func UnsaveCar(ss *services.SavedCarsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, carID, ok := savedCarArgs(c)
		if !ok {
			return
		}

		if err := ss.UnsaveCar(c.Request.Context(), userID, carID); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Car removed from saved list"))
	}
}

func GetSavedCars(ss *services.SavedCarsService) gin.HandlerFunc {
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

		saved, err := ss.GetSavedCars(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(saved, ""))
	}
}

func savedCarArgs(c *gin.Context) (primitive.ObjectID, string, bool) {
	claims, ok := currentClaims(c)
	if !ok {
		return primitive.NilObjectID, "", false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return primitive.NilObjectID, "", false
	}
	carID := strings.TrimSpace(c.Param("carId"))
	if carID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("car ID is required"))
		return primitive.NilObjectID, "", false
	}
	return userID, carID, true
}
