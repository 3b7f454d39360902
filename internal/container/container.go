package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/emretknc/driveaway/internal/auth"
	"github.com/emretknc/driveaway/internal/config"
	"github.com/emretknc/driveaway/internal/models"
	"github.com/emretknc/driveaway/internal/payments"
	"github.com/emretknc/driveaway/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	MongoDBClient *mongo.Client
	Tokens        *auth.Manager

	UserService      *services.UserService
	CatalogService   *services.CatalogService
	BookingService   *services.BookingService
	ReviewService    *services.ReviewService
	SavedCarsService *services.SavedCarsService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)
	tokens := auth.NewManager(cfg.SessionSecret)
	paymentProvider := payments.NewProvider(cfg.PaymentBaseURL)

	userService := services.NewUserService(repo, tokens)
	catalogService := services.NewCatalogService(repo, repo, repo)
	bookingService := services.NewBookingService(repo, repo, paymentProvider)
	reviewService := services.NewReviewService(repo, repo, repo)
	savedCarsService := services.NewSavedCarsService(repo)

	return &Container{
		Logger:           logger,
		Cloudinary:       cloudinary,
		MongoDBClient:    mongoDBClient,
		Tokens:           tokens,
		UserService:      userService,
		CatalogService:   catalogService,
		BookingService:   bookingService,
		ReviewService:    reviewService,
		SavedCarsService: savedCarsService,
	}
}
