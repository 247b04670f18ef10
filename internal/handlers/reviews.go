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

type CreateReviewRequest struct {
	UserID  *string  `json:"userId"`
	City    *string  `json:"city"`
	Country *string  `json:"country"`
	Rating  *float64 `json:"rating"`
	Comment string   `json:"comment,omitempty"`
}

// ReviewRecord is a review with its owner resolved to the display form.
type ReviewRecord struct {
	models.Review
	Owner *models.Owner `json:"owner,omitempty"`
}

type ReviewResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Review  *ReviewRecord `json:"review,omitempty"`
}

type ListReviewsResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Reviews []ReviewRecord `json:"reviews"`
	Total   int            `json:"total"`
}

// ReviewHandler serves the location-review resource.
type ReviewHandler struct {
	reviews ReviewStore
	users   UserStore
	policy  patch.Policy
	log     *slog.Logger
}

func NewReviewHandler(reviews ReviewStore, users UserStore, log *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, users: users, policy: patch.ReviewPolicy(), log: log}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == nil || req.City == nil || req.Country == nil || req.Rating == nil ||
		*req.UserID == "" || *req.City == "" || *req.Country == "" {
		failJSON(w, http.StatusBadRequest, "userId, city, country, and rating are required")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(*req.UserID)
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	problems := map[string]string{}
	rating, err := models.ValidateRating(*req.Rating)
	if err != nil {
		problems["rating"] = err.Error()
	}
	comment, err := models.ValidateComment(req.Comment)
	if err != nil {
		problems["comment"] = err.Error()
	}
	if len(problems) > 0 {
		failValidation(w, &models.ValidationError{Problems: problems})
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	owner, err := h.users.ByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("failed to look up review owner", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	review, err := h.reviews.Create(ctx, models.Review{
		UserID:  ownerID,
		City:    *req.City,
		Country: *req.Country,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		h.log.Error("failed to create review", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	ownerRef := owner.PublicOwner()
	respondJSON(w, http.StatusCreated, ReviewResponse{
		Success: true,
		Message: "Review submitted successfully",
		Review:  &ReviewRecord{Review: review, Owner: &ownerRef},
	})
}

// List handles GET /api/reviews?city=&country=&userId=. At least one filter
// criterion is required; city and country match the whole value
// case-insensitively.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	country := r.URL.Query().Get("country")
	userID := r.URL.Query().Get("userId")

	if city == "" && country == "" && userID == "" {
		failJSON(w, http.StatusBadRequest, "At least one of city, country, or userId is required")
		return
	}

	filter := store.ReviewFilter{City: city, Country: country}
	if userID != "" {
		ownerID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			failJSON(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		filter.Owner = &ownerID
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	reviews, err := h.reviews.List(ctx, filter)
	if err != nil {
		h.log.Error("failed to list reviews", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	records := make([]ReviewRecord, 0, len(reviews))
	owners := map[primitive.ObjectID]*models.Owner{}
	for _, review := range reviews {
		owner, seen := owners[review.UserID]
		if !seen {
			owner = h.resolveOwner(ctx, review.UserID)
			owners[review.UserID] = owner
		}
		records = append(records, ReviewRecord{Review: review, Owner: owner})
	}

	respondJSON(w, http.StatusOK, ListReviewsResponse{
		Success: true,
		Reviews: records,
		Total:   len(records),
	})
}

// Get handles GET /api/reviews/{id}.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	review, err := h.reviews.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Review not found")
			return
		}
		h.log.Error("failed to get review", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, ReviewResponse{
		Success: true,
		Review:  &ReviewRecord{Review: review, Owner: h.resolveOwner(ctx, review.UserID)},
	})
}

// Update handles PATCH /api/reviews/{id}. Only rating and comment may change,
// and only the owner may change them.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	review, err := h.reviews.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Review not found")
			return
		}
		h.log.Error("failed to get review", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	set, err := h.policy.Authorize(fields, review.UserID.Hex(), middleware.UserID(r.Context()))
	if err != nil {
		if !failUpdateError(w, err) {
			h.log.Error("failed to authorize review update", "error", err)
			failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	updated, err := h.reviews.ApplyUpdate(ctx, id, set)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Review not found")
			return
		}
		h.log.Error("failed to update review", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, ReviewResponse{
		Success: true,
		Message: "Review updated successfully",
		Review:  &ReviewRecord{Review: updated, Owner: h.resolveOwner(ctx, updated.UserID)},
	})
}

// Delete handles DELETE /api/reviews/{id}. Only the owner may delete.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	review, err := h.reviews.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Review not found")
			return
		}
		h.log.Error("failed to get review", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	if review.UserID.Hex() != middleware.UserID(r.Context()) {
		failJSON(w, http.StatusForbidden, "You do not own this resource")
		return
	}

	if err := h.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusNotFound, "Review not found")
			return
		}
		h.log.Error("failed to delete review", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Review deleted successfully",
	})
}

func (h *ReviewHandler) resolveOwner(ctx context.Context, id primitive.ObjectID) *models.Owner {
	user, err := h.users.ByID(ctx, id)
	if err != nil {
		h.log.Warn("failed to resolve review owner", "owner_id", id.Hex(), "error", err)
		return nil
	}
	owner := user.PublicOwner()
	return &owner
}
