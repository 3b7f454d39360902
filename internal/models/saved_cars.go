package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SavedCarsColName = "saved_cars"

type SavedCarItem struct {
	CarID   string    `bson:"car_id" json:"carId"`
	AddedAt time.Time `bson:"added_at" json:"addedAt"`
}

// SavedCars is one document per user holding the cars they bookmarked,
// keyed by car id so adds and removes are single field updates.
type SavedCars struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID      `bson:"user_id" json:"userId" validate:"required"`
	Items     map[string]SavedCarItem `bson:"items" json:"items"`
	CreatedAt time.Time               `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time               `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

type SavedCarsRepo interface {
	SaveCar(ctx context.Context, userID primitive.ObjectID, carID string) (*SavedCars, error)
	UnsaveCar(ctx context.Context, userID primitive.ObjectID, carID string) error
	GetSavedCars(ctx context.Context, userID primitive.ObjectID) (*SavedCars, error)
}

func (mdb *MongodbRepo) SaveCar(ctx context.Context, userID primitive.ObjectID, carID string) (*SavedCars, error) {
	col, err := mdb.GetCollection(ctx, DbName, SavedCarsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	now := time.Now()
	filter := bson.M{"user_id": userID}

	update := bson.M{
		"$set": bson.M{
			"updated_at": now,
			fmt.Sprintf("items.%s", carID): SavedCarItem{
				CarID:   carID,
				AddedAt: now,
			},
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result SavedCars
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting saved car: %v", err)
	}
	return &result, nil
}

func (mdb *MongodbRepo) UnsaveCar(ctx context.Context, userID primitive.ObjectID, carID string) error {
	col, err := mdb.GetCollection(ctx, DbName, SavedCarsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$unset": bson.M{
			fmt.Sprintf("items.%s", carID): "",
		},
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}

	_, err = col.UpdateOne(ctx, filter, update)
	return err
}

func (mdb *MongodbRepo) GetSavedCars(ctx context.Context, userID primitive.ObjectID) (*SavedCars, error) {
	col, err := mdb.GetCollection(ctx, DbName, SavedCarsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var saved SavedCars
	err = col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&saved)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &SavedCars{UserID: userID, Items: map[string]SavedCarItem{}}, nil
		}
		return nil, fmt.Errorf("error finding saved cars: %v", err)
	}
	return &saved, nil
}
