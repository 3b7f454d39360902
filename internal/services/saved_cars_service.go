package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emretknc/driveaway/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SavedCarsService struct {
	savedRepo models.SavedCarsRepo
}

func NewSavedCarsService(savedRepo models.SavedCarsRepo) *SavedCarsService {
	return &SavedCarsService{
		savedRepo: savedRepo,
	}
}

func (ss *SavedCarsService) SaveCar(ctx context.Context, userID primitive.ObjectID, carID string) (*models.SavedCars, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(carID) == "" {
		return nil, fmt.Errorf("car ID cannot be empty")
	}
	if _, err := primitive.ObjectIDFromHex(carID); err != nil {
		return nil, fmt.Errorf("invalid car ID format")
	}

	return ss.savedRepo.SaveCar(ctx, userID, carID)
}

func (ss *SavedCarsService) UnsaveCar(ctx context.Context, userID primitive.ObjectID, carID string) error {
	if userID.IsZero() {
		return fmt.Errorf("invalid user ID")
	}
	if strings.TrimSpace(carID) == "" {
		return fmt.Errorf("car ID cannot be empty")
	}

	return ss.savedRepo.UnsaveCar(ctx, userID, carID)
}

func (ss *SavedCarsService) GetSavedCars(ctx context.Context, userID primitive.ObjectID) (*models.SavedCars, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("invalid user ID")
	}

	return ss.savedRepo.GetSavedCars(ctx, userID)
}
