package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wayfareapp/wayfare-backend/internal/models"
)

// ReviewFilter narrows a review listing. At least one criterion must be set;
// the handler enforces that before calling List.
type ReviewFilter struct {
	City    string
	Country string
	Owner   *primitive.ObjectID
}

type Reviews struct {
	col *mongo.Collection
}

func NewReviews(db *mongo.Database) *Reviews {
	return &Reviews{col: db.Collection("reviews")}
}

// Create inserts a new review. The owner reference is never changed after
// this point.
func (s *Reviews) Create(ctx context.Context, review models.Review) (models.Review, error) {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()
	if _, err := s.col.InsertOne(ctx, review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// ByID looks a review up by ObjectID.
func (s *Reviews) ByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var review models.Review
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, ErrNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// anchoredFold matches the whole value case-insensitively, so "paris" matches
// "Paris" but not "Paris2".
func anchoredFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// List returns the reviews matching the filter, newest first.
func (s *Reviews) List(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	query := bson.M{}
	if filter.City != "" {
		query["city"] = anchoredFold(filter.City)
	}
	if filter.Country != "" {
		query["country"] = anchoredFold(filter.Country)
	}
	if filter.Owner != nil {
		query["user_id"] = *filter.Owner
	}

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ApplyUpdate writes an authorized $set document in a single update and
// returns the refreshed review.
func (s *Reviews) ApplyUpdate(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Review, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return models.Review{}, err
	}
	if res.MatchedCount == 0 {
		return models.Review{}, ErrNotFound
	}
	return s.ByID(ctx, id)
}

// Delete removes a review.
func (s *Reviews) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
