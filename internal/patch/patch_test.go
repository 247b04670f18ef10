package patch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfareapp/wayfare-backend/internal/models"
	"github.com/wayfareapp/wayfare-backend/internal/patch"
)

const (
	ownerID = "64b0c8a2f1d2e3a4b5c6d7e8"
	otherID = "64b0c8a2f1d2e3a4b5c6d7e9"
)

func TestAuthorizeEmptyUpdate(t *testing.T) {
	_, err := patch.TripPolicy().Authorize(map[string]any{}, ownerID, ownerID)
	assert.ErrorIs(t, err, patch.ErrEmptyUpdate)

	_, err = patch.TripPolicy().Authorize(nil, ownerID, ownerID)
	assert.ErrorIs(t, err, patch.ErrEmptyUpdate)
}

func TestAuthorizeNamesEveryDisallowedField(t *testing.T) {
	fields := map[string]any{
		"city":    "Lima",
		"userId":  otherID,
		"price":   10.0,
		"country": "Peru",
	}

	_, err := patch.TripPolicy().Authorize(fields, ownerID, ownerID)

	var invalid *patch.InvalidFieldsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"city", "country", "userId"}, invalid.Fields)
}

func TestAuthorizeTripAllowedFields(t *testing.T) {
	fields := map[string]any{
		"notes":     "bring cash",
		"imagePath": "https://img.example/lima.jpg",
		"price":     25.5,
	}

	set, err := patch.TripPolicy().Authorize(fields, ownerID, ownerID)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"notes":      "bring cash",
		"image_path": "https://img.example/lima.jpg",
		"price":      25.5,
	}, set)
}

func TestAuthorizeSubsetTouchesOnlyNamedFields(t *testing.T) {
	set, err := patch.TripPolicy().Authorize(map[string]any{"price": 5.0}, ownerID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"price": 5.0}, set)
}

func TestAuthorizeValidationOneMessagePerField(t *testing.T) {
	fields := map[string]any{
		"rating":  6.0,
		"comment": 42,
	}

	_, err := patch.ReviewPolicy().Authorize(fields, ownerID, ownerID)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
	assert.Contains(t, verr.Problems, "rating")
	assert.Contains(t, verr.Problems, "comment")
}

func TestAuthorizeReviewRatingRange(t *testing.T) {
	for _, rating := range []float64{0, 5.5, 6, -1} {
		_, err := patch.ReviewPolicy().Authorize(map[string]any{"rating": rating}, ownerID, ownerID)

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr, "rating %v should fail", rating)
	}

	for _, rating := range []float64{1, 3, 5} {
		set, err := patch.ReviewPolicy().Authorize(map[string]any{"rating": rating}, ownerID, ownerID)
		require.NoError(t, err, "rating %v should pass", rating)
		assert.Equal(t, int(rating), set["rating"])
	}
}

func TestAuthorizeForbiddenForNonOwner(t *testing.T) {
	_, err := patch.ReviewPolicy().Authorize(map[string]any{"rating": 4.0}, ownerID, otherID)
	assert.ErrorIs(t, err, patch.ErrForbidden)

	// An unestablished acting identity is never the owner.
	_, err = patch.ReviewPolicy().Authorize(map[string]any{"rating": 4.0}, ownerID, "")
	assert.ErrorIs(t, err, patch.ErrForbidden)
}

func TestAuthorizeDisallowedFieldWinsOverValidValue(t *testing.T) {
	// {rating: 4, city: "X"} must fail naming city, even though rating is fine.
	_, err := patch.ReviewPolicy().Authorize(map[string]any{"rating": 4.0, "city": "X"}, ownerID, ownerID)

	var invalid *patch.InvalidFieldsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"city"}, invalid.Fields)
}

func TestAuthorizeAllowListBeforeOwnership(t *testing.T) {
	// A non-owner sending a disallowed field sees the field error, not 403:
	// the allow-list check runs first.
	_, err := patch.ReviewPolicy().Authorize(map[string]any{"city": "X"}, ownerID, otherID)

	var invalid *patch.InvalidFieldsError
	assert.ErrorAs(t, err, &invalid)
}
