package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/emretknc/driveaway/internal/auth"
	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListCars handles GET /api/cars with the full filter surface:
// search, type, location, minPrice, maxPrice, transmission, fuelType,
// seats, limit, page, sortBy, sortOrder.
func ListCars(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.CarFilter{
			Search:       c.Query("search"),
			Type:         c.Query("type"),
			Location:     c.Query("location"),
			Transmission: c.Query("transmission"),
			FuelType:     c.Query("fuelType"),
			SortBy:       c.DefaultQuery("sortBy", "createdAt"),
			SortOrder:    c.DefaultQuery("sortOrder", "desc"),
		}
		filter.MinPrice, _ = strconv.ParseFloat(c.Query("minPrice"), 64)
		filter.MaxPrice, _ = strconv.ParseFloat(c.Query("maxPrice"), 64)
		filter.Seats, _ = strconv.Atoi(c.Query("seats"))
		filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))

		result, err := cs.QueryCars(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetCarByID handles GET /api/cars/:id. The response carries the car and
// its visible reviews; the request is also counted as a detail-page view.
func GetCarByID(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			return
		}

		car, reviews, err := cs.GetCarDetails(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if car == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("car not found"))
			return
		}

		trackView(c, cs, car.ID.Hex())

		c.JSON(http.StatusOK, gin.H{
			"car":     car,
			"reviews": reviews,
		})
	}
}

// trackView records the view without letting tracking failures affect the
// response.
func trackView(c *gin.Context, cs *services.CatalogService, carID string) {
	sessionID, err := c.Cookie("view_session")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("view_session", sessionID, 3600*24*30, "/", "", false, true)
	}

	view := &models.CarView{
		CarID:     carID,
		SessionID: sessionID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if value, exists := c.Get("user"); exists {
		if claims, ok := value.(*auth.SessionClaims); ok {
			uid := claims.UserID
			view.UserID = &uid
		}
	}

	_ = cs.TrackView(c.Request.Context(), view)
}

func CreateCar(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can create cars"))
			return
		}

		var car models.Car
		if err := c.ShouldBindJSON(&car); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.CreateCar(c.Request.Context(), &car)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Car created successfully"))
	}
}

func SetCarAvailability(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can update availability"))
			return
		}

		id, ok := parseObjectIDParam(c, "id")
		if !ok {
			return
		}

		var body struct {
			IsAvailable *bool `json:"isAvailable" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		if err := cs.SetAvailability(c.Request.Context(), id, *body.IsAvailable); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Availability updated"))
	}
}

func CarViewStats(cs *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse("only admins can read view stats"))
			return
		}

		carID := strings.TrimSpace(c.Param("id"))
		stats, err := cs.ViewStats(c.Request.Context(), carID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(stats, ""))
	}
}

// parseObjectIDParam normalizes and parses an ObjectID path parameter.
// Clients occasionally pass values wrapped in quotes from JSON templates.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	raw := strings.TrimSpace(c.Param(name))
	raw = strings.Trim(raw, "\"'")
	if raw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(name+" is required"))
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" format"))
		return primitive.NilObjectID, false
	}
	return id, true
}
