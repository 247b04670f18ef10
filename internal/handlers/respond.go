package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wayfareapp/wayfare-backend/internal/models"
	"github.com/wayfareapp/wayfare-backend/internal/patch"
)

// serverErrorMessage is what callers see when the store fails; the detail is
// logged, never returned.
const serverErrorMessage = "Something went wrong. Please try again later."

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func failJSON(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// failValidation returns one message per invalid field so the caller can fix
// everything in a single round trip.
func failValidation(w http.ResponseWriter, verr *models.ValidationError) {
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "Validation failed",
		"errors":  verr.Problems,
	})
}

// failUpdateError maps the partial-update authorizer's errors to responses.
// Returns false when the error is not one of the authorizer's kinds.
func failUpdateError(w http.ResponseWriter, err error) bool {
	var invalid *patch.InvalidFieldsError
	var verr *models.ValidationError
	switch {
	case errors.Is(err, patch.ErrEmptyUpdate):
		failJSON(w, http.StatusBadRequest, "No fields to update")
	case errors.As(err, &invalid):
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success":       false,
			"message":       "Fields cannot be updated: " + strings.Join(invalid.Fields, ", "),
			"invalidFields": invalid.Fields,
		})
	case errors.As(err, &verr):
		failValidation(w, verr)
	case errors.Is(err, patch.ErrForbidden):
		failJSON(w, http.StatusForbidden, "You do not own this resource")
	default:
		return false
	}
	return true
}
