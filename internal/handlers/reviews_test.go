package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfareapp/wayfare-backend/internal/handlers"
	"github.com/wayfareapp/wayfare-backend/internal/models"
	"github.com/wayfareapp/wayfare-backend/internal/store"
)

type mockReviewStore struct {
	create      func(ctx context.Context, review models.Review) (models.Review, error)
	byID        func(ctx context.Context, id primitive.ObjectID) (models.Review, error)
	list        func(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error)
	applyUpdate func(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Review, error)
	delete      func(ctx context.Context, id primitive.ObjectID) error
}

func (m *mockReviewStore) Create(ctx context.Context, r models.Review) (models.Review, error) {
	return m.create(ctx, r)
}
func (m *mockReviewStore) ByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	return m.byID(ctx, id)
}
func (m *mockReviewStore) List(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error) {
	return m.list(ctx, filter)
}
func (m *mockReviewStore) ApplyUpdate(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Review, error) {
	return m.applyUpdate(ctx, id, set)
}
func (m *mockReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.delete(ctx, id)
}

var _ handlers.ReviewStore = (*mockReviewStore)(nil)

func newReviewRouter(h *handlers.ReviewHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/reviews", h.Create)
	r.Get("/api/reviews", h.List)
	r.Get("/api/reviews/{id}", h.Get)
	r.Patch("/api/reviews/{id}", h.Update)
	r.Delete("/api/reviews/{id}", h.Delete)
	return r
}

func reviewFixture(owner primitive.ObjectID) models.Review {
	return models.Review{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now().UTC(),
		UserID:    owner,
		City:      "Paris",
		Country:   "France",
		Rating:    3,
		Comment:   "crowded but lovely",
	}
}

func TestCreateReviewResolvesOwner(t *testing.T) {
	owner := userFixture()
	reviews := &mockReviewStore{
		create: func(ctx context.Context, review models.Review) (models.Review, error) {
			review.ID = primitive.NewObjectID()
			return review, nil
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, knownUserStore(owner), testLogger))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/reviews", jsonBody(t, map[string]any{
		"userId":  owner.ID.Hex(),
		"city":    "Paris",
		"country": "France",
		"rating":  4,
	})))

	require.Equal(t, http.StatusCreated, res.Code)
	review := decodeBody(t, res)["review"].(map[string]any)
	ownerRef := review["owner"].(map[string]any)
	assert.Equal(t, owner.Username, ownerRef["username"])
	assert.NotContains(t, ownerRef, "email")
}

func TestCreateReviewRatingOutOfRange(t *testing.T) {
	r := newReviewRouter(handlers.NewReviewHandler(&mockReviewStore{}, &mockUserStore{}, testLogger))

	for _, rating := range []any{0, 6, 5.5} {
		res := httptest.NewRecorder()
		r.ServeHTTP(res, httptest.NewRequest(http.MethodPost, "/api/reviews", jsonBody(t, map[string]any{
			"userId":  primitive.NewObjectID().Hex(),
			"city":    "Paris",
			"country": "France",
			"rating":  rating,
		})))

		require.Equal(t, http.StatusBadRequest, res.Code, "rating %v", rating)
		errs := decodeBody(t, res)["errors"].(map[string]any)
		assert.Contains(t, errs, "rating")
	}
}

func TestListReviewsRequiresFilter(t *testing.T) {
	r := newReviewRouter(handlers.NewReviewHandler(&mockReviewStore{}, &mockUserStore{}, testLogger))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/reviews", nil))

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestListReviewsPassesFilterThrough(t *testing.T) {
	owner := userFixture()
	var gotFilter store.ReviewFilter
	reviews := &mockReviewStore{
		list: func(ctx context.Context, filter store.ReviewFilter) ([]models.Review, error) {
			gotFilter = filter
			return []models.Review{reviewFixture(owner.ID)}, nil
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, knownUserStore(owner), testLogger))

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/reviews?city=paris", nil))

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "paris", gotFilter.City)
	assert.Nil(t, gotFilter.Owner)

	body := decodeBody(t, res)
	assert.Equal(t, float64(1), body["total"])
	first := body["reviews"].([]any)[0].(map[string]any)
	assert.Equal(t, owner.Username, first["owner"].(map[string]any)["username"])
}

func TestUpdateReviewDisallowedFieldKeepsRating(t *testing.T) {
	owner := userFixture()
	review := reviewFixture(owner.ID)
	reviews := &mockReviewStore{
		byID: func(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
			return review, nil
		},
		applyUpdate: func(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Review, error) {
			t.Fatal("no write may happen when the field set is rejected")
			return models.Review{}, nil
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, knownUserStore(owner), testLogger))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/"+review.ID.Hex(),
		jsonBody(t, map[string]any{"rating": 4, "city": "X"}))
	r.ServeHTTP(res, asActor(req, owner.ID.Hex()))

	require.Equal(t, http.StatusBadRequest, res.Code)
	body := decodeBody(t, res)
	assert.Equal(t, []any{"city"}, body["invalidFields"].([]any))
}

func TestUpdateReviewNotOwner(t *testing.T) {
	owner := userFixture()
	review := reviewFixture(owner.ID)
	reviews := &mockReviewStore{
		byID: func(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
			return review, nil
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, knownUserStore(owner), testLogger))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/"+review.ID.Hex(),
		jsonBody(t, map[string]any{"rating": 4}))
	r.ServeHTTP(res, asActor(req, primitive.NewObjectID().Hex()))

	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestUpdateReviewSuccess(t *testing.T) {
	owner := userFixture()
	review := reviewFixture(owner.ID)

	var gotSet map[string]any
	reviews := &mockReviewStore{
		byID: func(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
			return review, nil
		},
		applyUpdate: func(ctx context.Context, id primitive.ObjectID, set map[string]any) (models.Review, error) {
			gotSet = set
			updated := review
			updated.Rating = 4
			return updated, nil
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, knownUserStore(owner), testLogger))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reviews/"+review.ID.Hex(),
		jsonBody(t, map[string]any{"rating": 4}))
	r.ServeHTTP(res, asActor(req, owner.ID.Hex()))

	require.Equal(t, http.StatusOK, res.Code)
	// Rating is normalized to an int before the write.
	assert.Equal(t, map[string]any{"rating": 4}, gotSet)
}

func TestDeleteReviewRequiresOwnership(t *testing.T) {
	owner := userFixture()
	review := reviewFixture(owner.ID)
	deleted := false
	reviews := &mockReviewStore{
		byID: func(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
			return review, nil
		},
		delete: func(ctx context.Context, id primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, knownUserStore(owner), testLogger))

	// Non-owner is rejected and nothing is deleted.
	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/"+review.ID.Hex(), nil)
	r.ServeHTTP(res, asActor(req, primitive.NewObjectID().Hex()))
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.False(t, deleted)

	// Owner succeeds.
	res = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/reviews/"+review.ID.Hex(), nil)
	r.ServeHTTP(res, asActor(req, owner.ID.Hex()))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, deleted)
}

func TestDeleteReviewNotFound(t *testing.T) {
	reviews := &mockReviewStore{
		byID: func(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
			return models.Review{}, store.ErrNotFound
		},
	}
	r := newReviewRouter(handlers.NewReviewHandler(reviews, &mockUserStore{}, testLogger))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/"+primitive.NewObjectID().Hex(), nil)
	r.ServeHTTP(res, asActor(req, primitive.NewObjectID().Hex()))

	assert.Equal(t, http.StatusNotFound, res.Code)
}
