package services

import (
	"context"
	"fmt"

	"github.com/emretknc/driveaway/internal/connect"
	"github.com/emretknc/driveaway/internal/helpers"
	"github.com/emretknc/driveaway/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CatalogService struct {
	carsRepo    models.CarsRepo
	reviewsRepo models.ReviewsRepo
	viewsRepo   models.CarViewsRepo
}

func NewCatalogService(carsRepo models.CarsRepo, reviewsRepo models.ReviewsRepo, viewsRepo models.CarViewsRepo) *CatalogService {
	return &CatalogService{
		carsRepo:    carsRepo,
		reviewsRepo: reviewsRepo,
		viewsRepo:   viewsRepo,
	}
}

// QueryCars lists catalog entries. Filter values beyond page/limit are
// passed through to the repository unvalidated.
func (cs *CatalogService) QueryCars(ctx context.Context, filter models.CarFilter) (*models.CarsResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 12
	}

	cars, total, err := cs.carsRepo.QueryCars(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.CarsResponse{
		Cars:       cars,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// GetCarDetails returns a car and its visible reviews, or (nil, nil, nil)
// when the car does not exist.
func (cs *CatalogService) GetCarDetails(ctx context.Context, id primitive.ObjectID) (*models.Car, []*models.Review, error) {
	if id.IsZero() {
		return nil, nil, fmt.Errorf("invalid car ID")
	}
	car, err := cs.carsRepo.GetCarByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if car == nil {
		return nil, nil, nil
	}
	reviews, err := cs.reviewsRepo.GetVisibleReviewsByCar(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return car, reviews, nil
}

func (cs *CatalogService) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := models.Validate.Struct(car); err != nil {
		return nil, fmt.Errorf("invalid car data provided: %v", err)
	}
	car.Features = helpers.RemoveDuplicates(car.Features)
	car.AverageRating = 0
	car.TotalReviews = 0

	// Image fields may arrive as local paths from admin tooling; push them
	// to Cloudinary and store the hosted URLs.
	if len(car.Images) > 0 && connect.Cld != nil {
		urls, err := helpers.UploadImages(ctx, connect.Cld, car.Images, helpers.CarsFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload images: %v", err)
		}
		car.Images = urls
	}

	return cs.carsRepo.CreateCar(ctx, car)
}

func (cs *CatalogService) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	if id.IsZero() {
		return fmt.Errorf("invalid car ID")
	}
	return cs.carsRepo.SetAvailability(ctx, id, available)
}

// TrackView records a detail-page view; errors never block the page.
func (cs *CatalogService) TrackView(ctx context.Context, view *models.CarView) error {
	return cs.viewsRepo.TrackCarView(ctx, view)
}

func (cs *CatalogService) ViewStats(ctx context.Context, carID string) (*models.CarViewStats, error) {
	if helpers.StringTrim(carID) == "" {
		return nil, fmt.Errorf("car ID cannot be empty")
	}
	return cs.viewsRepo.GetCarViewStats(ctx, carID)
}
