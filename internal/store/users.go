// Package store wraps the MongoDB collections behind small typed stores.
// Each store is constructed with the database handle injected so handlers
// never touch a global connection.
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

type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// Create inserts a new user after checking that neither the username nor the
// email is already registered.
func (s *Users) Create(ctx context.Context, user models.User) (models.User, error) {
	err := s.col.FindOne(ctx, bson.M{"username": user.Username}).Err()
	if err == nil {
		return models.User{}, ErrDuplicateUsername
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	err = s.col.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return models.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ByID looks a user up by ObjectID.
func (s *Users) ByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ByIdentifier matches the identifier against either the username or the
// email. Login uses this so both handles work.
func (s *Users) ByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}

	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// List returns all users, newest first.
func (s *Users) List(ctx context.Context) ([]models.User, error) {
	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
