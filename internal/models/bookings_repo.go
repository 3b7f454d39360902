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

const BookingsColName = "bookings"

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByIdempotencyKey(ctx context.Context, userID primitive.ObjectID, key string) (*Booking, error)
	GetBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error)
	GetCompletedBooking(ctx context.Context, userID, carID primitive.ObjectID) (*Booking, error)
	SetBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) error
}

// EnsureBookingIndexes creates the sparse unique index that backs
// idempotency-key deduplication. Safe to call on every startup.
func (mdb *MongodbRepo) EnsureBookingIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	index := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "idempotency_key", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetSparse(true).
			SetName("user_idempotency_unique"),
	}
	if _, err := col.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("error creating booking indexes: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	if err := booking.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare booking for creation: %w", err)
	}
	now := time.Now()
	booking.Status = BookingPending
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to insert booking into database: %w", err)
	}
	return booking, nil
}

// GetBookingByIdempotencyKey returns the booking a previous submission with
// the same key created, or nil when the key is unseen.
func (mdb *MongodbRepo) GetBookingByIdempotencyKey(ctx context.Context, userID primitive.ObjectID, key string) (*Booking, error) {
	if key == "" {
		return nil, nil
	}
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var booking Booking
	err = col.FindOne(ctx, bson.M{"user_id": userID, "idempotency_key": key}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) GetBookingsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetCompletedBooking returns the most recent rental of the car the user
// finished, or nil when there is none. Reviews are gated on it and carry its
// id as their booking reference.
func (mdb *MongodbRepo) GetCompletedBooking(ctx context.Context, userID, carID primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "end_date", Value: -1}})
	var booking Booking
	err = col.FindOne(ctx, bson.M{
		"user_id": userID,
		"car_id":  carID,
		"status":  BookingCompleted,
	}, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) SetBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) error {
	col, err := mdb.GetCollection(ctx, DbName, BookingsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking not found")
	}
	return nil
}
