package models

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CarsColName = "cars"

type CarsRepo interface {
	CreateCar(ctx context.Context, car *Car) (*Car, error)
	GetCarByID(ctx context.Context, id primitive.ObjectID) (*Car, error)
	QueryCars(ctx context.Context, filter CarFilter) ([]*Car, int, error)
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error
	RecalculateRating(ctx context.Context, carID primitive.ObjectID) error
}

// sortFields maps the sortBy query values the API accepts to stored fields.
// Unknown values fall back to created_at.
var sortFields = map[string]string{
	"pricePerDay":   "price_per_day",
	"averageRating": "average_rating",
	"createdAt":     "created_at",
	"year":          "year",
	"mileage":       "mileage",
}

func (mdb *MongodbRepo) CreateCar(ctx context.Context, car *Car) (*Car, error) {
	col, err := mdb.GetCollection(ctx, DbName, CarsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	now := time.Now()
	car.CreatedAt = now
	car.UpdatedAt = now

	if _, err := col.InsertOne(ctx, car); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("a car with license plate %s already exists", car.LicensePlate)
		}
		return nil, fmt.Errorf("failed to insert car: %w", err)
	}
	return car, nil
}

func (mdb *MongodbRepo) GetCarByID(ctx context.Context, id primitive.ObjectID) (*Car, error) {
	col, err := mdb.GetCollection(ctx, DbName, CarsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var car Car
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&car); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch car: %w", err)
	}
	return &car, nil
}

// QueryCars applies the catalog filters, sorts and paginates. Returns the
// page of cars plus the total count matching the filter.
func (mdb *MongodbRepo) QueryCars(ctx context.Context, filter CarFilter) ([]*Car, int, error) {
	col, err := mdb.GetCollection(ctx, DbName, CarsColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %v", err)
	}

	query := buildCarQuery(filter)

	total, err := col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count cars: %w", err)
	}

	sortField, ok := sortFields[filter.SortBy]
	if !ok {
		sortField = "created_at"
	}
	order := -1
	if filter.SortOrder == "asc" {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cars: %w", err)
	}
	defer cursor.Close(ctx)

	cars := make([]*Car, 0, filter.Limit)
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, 0, fmt.Errorf("failed to decode cars: %w", err)
	}
	return cars, int(total), nil
}

func buildCarQuery(filter CarFilter) bson.M {
	query := bson.M{}

	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"make": pattern},
			bson.M{"model_name": pattern},
			bson.M{"description": pattern},
			bson.M{"location": pattern},
		}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Location != "" {
		query["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Location), Options: "i"}
	}
	if filter.Transmission != "" {
		query["transmission"] = filter.Transmission
	}
	if filter.FuelType != "" {
		query["fuel_type"] = filter.FuelType
	}
	if filter.Seats > 0 {
		query["seats"] = bson.M{"$gte": filter.Seats}
	}

	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price_per_day"] = price
	}

	return query
}

func (mdb *MongodbRepo) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) error {
	col, err := mdb.GetCollection(ctx, DbName, CarsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_available": available, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("car not found")
	}
	return nil
}

// RecalculateRating recomputes average_rating and total_reviews from the
// reviews that are approved and not hidden. Cars without contributing
// reviews go back to 0 / 0.
func (mdb *MongodbRepo) RecalculateRating(ctx context.Context, carID primitive.ObjectID) error {
	reviews, err := mdb.GetCollection(ctx, DbName, ReviewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"car_id":      carID,
			"is_approved": true,
			"is_hidden":   false,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$car_id",
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return fmt.Errorf("failed to decode aggregate: %w", err)
	}

	var avg float64
	var count int
	if len(results) > 0 {
		avg = results[0].Average
		count = results[0].Count
	}

	cars, err := mdb.GetCollection(ctx, DbName, CarsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	_, err = cars.UpdateOne(ctx, bson.M{"_id": carID}, bson.M{
		"$set": bson.M{
			"average_rating": avg,
			"total_reviews":  count,
			"updated_at":     time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update car rating: %w", err)
	}
	return nil
}
