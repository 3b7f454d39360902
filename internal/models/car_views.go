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

const CarViewsColName = "car_views"

// CarView is one detail-page view. Records expire after 30 days through the
// TTL index on expires_at.
type CarView struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CarID     string             `bson:"car_id" json:"carId" validate:"required"`
	UserID    *string            `bson:"user_id,omitempty" json:"userId,omitempty"`
	SessionID string             `bson:"session_id" json:"sessionId" validate:"required"`
	IPAddress string             `bson:"ip_address,omitempty" json:"ipAddress,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	ViewedAt  time.Time          `bson:"viewed_at" json:"viewedAt"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
}

type CarViewStats struct {
	CarID         string `json:"carId"`
	TotalViews    int64  `json:"totalViews"`
	UniqueViews   int64  `json:"uniqueViews"`
	ViewsToday    int64  `json:"viewsToday"`
	ViewsThisWeek int64  `json:"viewsThisWeek"`
}

type CarViewsRepo interface {
	TrackCarView(ctx context.Context, view *CarView) error
	GetCarViewStats(ctx context.Context, carID string) (*CarViewStats, error)
	EnsureViewIndexes(ctx context.Context) error
}

// EnsureViewIndexes creates the TTL and uniqueness indexes the tracking
// queries rely on. Safe to call on every startup.
func (mdb *MongodbRepo) EnsureViewIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, DbName, CarViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("expires_at_ttl"),
		},
		{
			Keys: bson.D{
				{Key: "car_id", Value: 1},
				{Key: "session_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("car_session_unique"),
		},
		{
			Keys: bson.D{
				{Key: "car_id", Value: 1},
				{Key: "viewed_at", Value: -1},
			},
			Options: options.Index().SetName("car_viewed_at_idx"),
		},
	}

	if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}
	return nil
}

// TrackCarView records a detail-page view. Repeat views from the same
// session within an hour, and duplicate (car, session) pairs, are dropped
// silently.
func (mdb *MongodbRepo) TrackCarView(ctx context.Context, view *CarView) error {
	col, err := mdb.GetCollection(ctx, DbName, CarViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	oneHourAgo := time.Now().Add(-1 * time.Hour)
	var recent CarView
	err = col.FindOne(ctx, bson.M{
		"car_id":     view.CarID,
		"session_id": view.SessionID,
		"viewed_at":  bson.M{"$gte": oneHourAgo},
	}).Decode(&recent)
	if err == nil {
		return nil
	}

	now := time.Now()
	view.ViewedAt = now
	view.ExpiresAt = now.Add(30 * 24 * time.Hour)
	if view.ID.IsZero() {
		view.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, view); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("error inserting car view: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetCarViewStats(ctx context.Context, carID string) (*CarViewStats, error) {
	col, err := mdb.GetCollection(ctx, DbName, CarViewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	stats := &CarViewStats{CarID: carID}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	totalCount, err := col.CountDocuments(ctx, bson.M{"car_id": carID})
	if err != nil {
		return nil, fmt.Errorf("error counting total views: %v", err)
	}
	stats.TotalViews = totalCount

	uniquePipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"car_id": carID}}},
		{{Key: "$group", Value: bson.M{"_id": "$session_id"}}},
		{{Key: "$count", Value: "unique_sessions"}},
	}
	cursor, err := col.Aggregate(ctx, uniquePipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating unique views: %v", err)
	}
	defer cursor.Close(ctx)

	var uniqueResult []bson.M
	if err := cursor.All(ctx, &uniqueResult); err != nil {
		return nil, fmt.Errorf("error decoding unique views: %v", err)
	}
	if len(uniqueResult) > 0 {
		if count, ok := uniqueResult[0]["unique_sessions"].(int32); ok {
			stats.UniqueViews = int64(count)
		}
	}

	todayCount, err := col.CountDocuments(ctx, bson.M{
		"car_id":    carID,
		"viewed_at": bson.M{"$gte": startOfDay},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting today's views: %v", err)
	}
	stats.ViewsToday = todayCount

	weekCount, err := col.CountDocuments(ctx, bson.M{
		"car_id":    carID,
		"viewed_at": bson.M{"$gte": startOfWeek},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting this week's views: %v", err)
	}
	stats.ViewsThisWeek = weekCount

	return stats, nil
}
