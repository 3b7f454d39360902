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

const ReviewsColName = "reviews"

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	GetVisibleReviewsByCar(ctx context.Context, carID primitive.ObjectID) ([]*Review, error)
	GetReviewsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Review, error)
	SetReviewApproval(ctx context.Context, id primitive.ObjectID, approved bool) error
	SetReviewHidden(ctx context.Context, id primitive.ObjectID, hidden bool) error
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.Validate(); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}
	if err := review.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare review for creation: %w", err)
	}
	col, err := mdb.GetCollection(ctx, DbName, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}
	return review, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, DbName, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	var review Review
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	return &review, nil
}

// GetVisibleReviewsByCar returns the reviews shown on a car detail page:
// approved and not hidden, newest first.
func (mdb *MongodbRepo) GetVisibleReviewsByCar(ctx context.Context, carID primitive.ObjectID) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, DbName, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{
		"car_id":      carID,
		"is_approved": true,
		"is_hidden":   false,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]*Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (mdb *MongodbRepo) GetReviewsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, DbName, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}
	cursor, err := col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (mdb *MongodbRepo) SetReviewApproval(ctx context.Context, id primitive.ObjectID, approved bool) error {
	return mdb.setReviewFlag(ctx, id, "is_approved", approved)
}

func (mdb *MongodbRepo) SetReviewHidden(ctx context.Context, id primitive.ObjectID, hidden bool) error {
	return mdb.setReviewFlag(ctx, id, "is_hidden", hidden)
}

func (mdb *MongodbRepo) setReviewFlag(ctx context.Context, id primitive.ObjectID, field string, value bool) error {
	col, err := mdb.GetCollection(ctx, DbName, ReviewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{field: value, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}
