package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wayfareapp/wayfare-backend/internal/middleware"
	"github.com/wayfareapp/wayfare-backend/internal/models"
	"github.com/wayfareapp/wayfare-backend/internal/patch"
	"github.com/wayfareapp/wayfare-backend/internal/store"
)

// CreateTripRequest uses pointers for the numeric fields so an absent field
// can be told apart from a legitimate zero (price 0, equator coordinates).
type CreateTripRequest struct {
	UserID    *string  `json:"userId"`
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Price     *float64 `json:"price"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
	ImagePath string   `json:"imagePath,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

type TripResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Trip    *models.Trip  `json:"trip,omitempty"`
	Owner   *models.Owner `json:"owner,omitempty"`
}

type ListTripsResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Trips   []models.Trip `json:"trips"`
	Total   int           `json:"total"`
}

// TripHandler serves the saved-trip resource.
type TripHandler struct {
	trips  TripStore
	users  UserStore
	policy patch.Policy
	log    *slog.Logger
}

func NewTripHandler(trips TripStore, users UserStore, log *slog.Logger) *TripHandler {
	return &TripHandler{trips: trips, users: users, policy: patch.TripPolicy(), log: log}
}

// Create handles POST /api/savedtrips.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == nil || req.City == nil || req.Country == nil ||
		req.Price == nil || req.Latitude == nil || req.Longitude == nil ||
		*req.UserID == "" || *req.City == "" || *req.Country == "" {
		failJSON(w, http.StatusBadRequest, "userId, city, country, price, lat, and lon are required")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(*req.UserID)
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	problems := map[string]string{}
	price, err := models.ValidatePrice(*req.Price)
	if err != nil {
		problems["price"] = err.Error()
	}
	notes, err := models.ValidateNotes(req.Notes)
	if err != nil {
		problems["notes"] = err.Error()
	}
	if len(problems) > 0 {
		failValidation(w, &models.ValidationError{Problems: problems})
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	if _, err := h.users.ByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("failed to look up trip owner", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	trip, err := h.trips.Create(ctx, models.Trip{
		UserID:    ownerID,
		City:      *req.City,
		Country:   *req.Country,
		Price:     price,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		ImagePath: req.ImagePath,
		Notes:     notes,
	})
	if err != nil {
		h.log.Error("failed to create trip", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusCreated, TripResponse{
		Success: true,
		Message: "Trip saved successfully",
		Trip:    &trip,
	})
}

// List handles GET /api/savedtrips?userId=.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		failJSON(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	trips, err := h.trips.ByOwner(ctx, ownerID)
	if err != nil {
		h.log.Error("failed to list trips", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, ListTripsResponse{
		Success: true,
		Trips:   trips,
		Total:   len(trips),
	})
}

// Get handles GET /api/savedtrips/{id}.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid trip id")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	trip, err := h.trips.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Trip not found")
			return
		}
		h.log.Error("failed to get trip", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, TripResponse{Success: true, Trip: &trip})
}

// Update handles PATCH /api/savedtrips/{id}. Only notes, imagePath and price
// may change, and only the owner may change them. The acting identity comes
// from the verified session, never from the body.
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid trip id")
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	trip, err := h.trips.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Trip not found")
			return
		}
		h.log.Error("failed to get trip", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	set, err := h.policy.Authorize(fields, trip.UserID.Hex(), middleware.UserID(r.Context()))
	if err != nil {
		if !failUpdateError(w, err) {
			h.log.Error("failed to authorize trip update", "error", err)
			failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	updated, err := h.trips.ApplyUpdate(ctx, id, set)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Trip not found")
			return
		}
		h.log.Error("failed to update trip", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, TripResponse{
		Success: true,
		Message: "Trip updated successfully",
		Trip:    &updated,
		Owner:   h.resolveOwner(ctx, updated.UserID),
	})
}

// resolveOwner fetches the display form of a resource owner. A lookup failure
// is logged and the owner omitted rather than failing the whole response.
func (h *TripHandler) resolveOwner(ctx context.Context, id primitive.ObjectID) *models.Owner {
	user, err := h.users.ByID(ctx, id)
	if err != nil {
		h.log.Warn("failed to resolve trip owner", "owner_id", id.Hex(), "error", err)
		return nil
	}
	owner := user.PublicOwner()
	return &owner
}
