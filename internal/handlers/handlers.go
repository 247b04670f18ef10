// Package handlers implements the HTTP handlers for the Wayfare API. Each
// handler is a struct constructed with its store dependencies injected, so
// there is no ambient database handle and tests can swap in mocks.
package handlers

import (
	"context"
	"mime/multipart"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfareapp/wayfare-backend/internal/models"
	"github.com/wayfareapp/wayfare-backend/internal/store"
)

// storeTimeout bounds every persistence call made from a handler.
const storeTimeout = 5 * time.Second

func storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

// UserStore is the identity store surface the handlers depend on. Defining
// the interfaces in the consumer package lets handler tests inject mocks
// without a live database.
type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	ByIdentifier(ctx context.Context, identifier string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type TripStore interface {
	Create(ctx context.Context, trip models.Trip) (models.Trip, error)
	ByID(ctx context.Context, id primitive.ObjectID) (models.Trip, error)
	ByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Trip, error)
	ApplyUpdate(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Trip, error)
}

type ReviewStore interface {
	Create(ctx context.Context, review models.Review) (models.Review, error)
	ByID(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	List(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error)
	ApplyUpdate(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
	Invalidate(ctx context.Context, token string) error
}

type ImageUploader interface {
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}
