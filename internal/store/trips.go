package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wayfareapp/wayfare-backend/internal/models"
)

type Trips struct {
	col *mongo.Collection
}

func NewTrips(db *mongo.Database) *Trips {
	return &Trips{col: db.Collection("trips")}
}

// Create inserts a new trip. The owner reference on the trip is never changed
// after this point.
func (s *Trips) Create(ctx context.Context, trip models.Trip) (models.Trip, error) {
	trip.ID = primitive.NewObjectID()
	trip.CreatedAt = time.Now().UTC()
	if _, err := s.col.InsertOne(ctx, trip); err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

// ByID looks a trip up by ObjectID.
func (s *Trips) ByID(ctx context.Context, id primitive.ObjectID) (models.Trip, error) {
	var trip models.Trip
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Trip{}, ErrNotFound
	}
	if err != nil {
		return models.Trip{}, err
	}
	return trip, nil
}

// ByOwner returns all trips saved by one user, newest first.
func (s *Trips) ByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Trip, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, bson.M{"user_id": owner}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trips := []models.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// ApplyUpdate writes an authorized $set document in a single update and
// returns the refreshed trip.
func (s *Trips) ApplyUpdate(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Trip, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Trip{}, err
	}
	if res.MatchedCount == 0 {
		return models.Trip{}, ErrNotFound
	}
	return s.ByID(ctx, id)
}
