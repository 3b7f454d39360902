package routes

import (
	"github.com/emretknc/driveaway/internal/container"
	"github.com/emretknc/driveaway/internal/handlers"
	"github.com/emretknc/driveaway/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "driveaway-api",
			})
		})

		// public auth routes
		api.POST("/auth/register", handlers.Register(container.UserService))
		api.POST("/auth/login", handlers.Login(container.UserService))
		api.POST("/auth/logout", handlers.Logout())

		// public catalog reads; identity is attached when present so views
		// can be attributed to a user
		api.GET("/cars", handlers.ListCars(container.CatalogService))
		api.GET("/cars/:id", middleware.OptionalAuth(container.Tokens), handlers.GetCarByID(container.CatalogService))
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(container.Tokens, container.Logger))
	{
		protected.GET("/auth/session", handlers.Session())

		protected.POST("/checkout", handlers.Checkout(container.BookingService))
		protected.GET("/bookings", handlers.ListMyBookings(container.BookingService))

		protected.POST("/reviews", handlers.SubmitReview(container.ReviewService))
		protected.GET("/reviews/mine", handlers.MyReviews(container.ReviewService))

		protected.POST("/saved/:carId", handlers.SaveCar(container.SavedCarsService))
		protected.DELETE("/saved/:carId", handlers.UnsaveCar(container.SavedCarsService))
		protected.GET("/saved", handlers.GetSavedCars(container.SavedCarsService))

		// admin
		protected.POST("/cars", handlers.CreateCar(container.CatalogService))
		protected.PATCH("/cars/:id/availability", handlers.SetCarAvailability(container.CatalogService))
		protected.GET("/cars/:id/views", handlers.CarViewStats(container.CatalogService))
		protected.PATCH("/bookings/:id/status", handlers.SetBookingStatus(container.BookingService))
		protected.PATCH("/reviews/:id/approve", handlers.ApproveReview(container.ReviewService))
		protected.PATCH("/reviews/:id/hide", handlers.HideReview(container.ReviewService))
	}

	return r
}
