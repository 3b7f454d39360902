package services

import (
	"context"
	"testing"
	"time"

	"github.com/emretknc/driveaway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubSavedCarsRepo struct {
	byUser map[primitive.ObjectID]*models.SavedCars
}

func newStubSavedCarsRepo() *stubSavedCarsRepo {
	return &stubSavedCarsRepo{byUser: make(map[primitive.ObjectID]*models.SavedCars)}
}

func (r *stubSavedCarsRepo) SaveCar(_ context.Context, userID primitive.ObjectID, carID string) (*models.SavedCars, error) {
	saved, ok := r.byUser[userID]
	if !ok {
		saved = &models.SavedCars{UserID: userID, Items: map[string]models.SavedCarItem{}}
		r.byUser[userID] = saved
	}
	saved.Items[carID] = models.SavedCarItem{CarID: carID, AddedAt: time.Now()}
	return saved, nil
}

func (r *stubSavedCarsRepo) UnsaveCar(_ context.Context, userID primitive.ObjectID, carID string) error {
	if saved, ok := r.byUser[userID]; ok {
		delete(saved.Items, carID)
	}
	return nil
}

func (r *stubSavedCarsRepo) GetSavedCars(_ context.Context, userID primitive.ObjectID) (*models.SavedCars, error) {
	if saved, ok := r.byUser[userID]; ok {
		return saved, nil
	}
	return &models.SavedCars{UserID: userID, Items: map[string]models.SavedCarItem{}}, nil
}

func TestSaveCarIsIdempotent(t *testing.T) {
	svc := NewSavedCarsService(newStubSavedCarsRepo())
	userID := primitive.NewObjectID()
	carID := primitive.NewObjectID().Hex()

	_, err := svc.SaveCar(context.Background(), userID, carID)
	require.NoError(t, err)
	saved, err := svc.SaveCar(context.Background(), userID, carID)
	require.NoError(t, err)

	assert.Len(t, saved.Items, 1)
}

func TestSaveCarRejectsMalformedID(t *testing.T) {
	svc := NewSavedCarsService(newStubSavedCarsRepo())

	_, err := svc.SaveCar(context.Background(), primitive.NewObjectID(), "not-an-object-id")
	assert.Error(t, err)

	_, err = svc.SaveCar(context.Background(), primitive.NewObjectID(), "   ")
	assert.Error(t, err)
}

func TestUnsaveCarRemovesItem(t *testing.T) {
	svc := NewSavedCarsService(newStubSavedCarsRepo())
	userID := primitive.NewObjectID()
	carID := primitive.NewObjectID().Hex()

	_, err := svc.SaveCar(context.Background(), userID, carID)
	require.NoError(t, err)
	require.NoError(t, svc.UnsaveCar(context.Background(), userID, carID))

	saved, err := svc.GetSavedCars(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, saved.Items)
}

func TestGetSavedCarsEmptyForNewUser(t *testing.T) {
	svc := NewSavedCarsService(newStubSavedCarsRepo())

	saved, err := svc.GetSavedCars(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Empty(t, saved.Items)
}
