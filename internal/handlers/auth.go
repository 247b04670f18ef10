package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wayfareapp/wayfare-backend/internal/models"
	"github.com/wayfareapp/wayfare-backend/internal/store"
	"github.com/wayfareapp/wayfare-backend/pkg/utils"
)

// MinPasswordLength is the weakest credential registration accepts.
const MinPasswordLength = 6

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	// Identifier may be either the username or the email.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

type ListUsersResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Users   []models.User `json:"users"`
	Total   int           `json:"total"`
}

// AuthHandler serves registration, login, logout and the user listing.
type AuthHandler struct {
	users    UserStore
	sessions SessionStore
	log      *slog.Logger
}

func NewAuthHandler(users UserStore, sessions SessionStore, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, log: log}
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		failJSON(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}
	if len(req.Password) < MinPasswordLength {
		failJSON(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		h.log.Error("failed to hash password", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	user, err := h.users.Create(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			failJSON(w, http.StatusBadRequest, "User with this username already exists")
		case errors.Is(err, store.ErrDuplicateEmail):
			failJSON(w, http.StatusBadRequest, "User with this email already exists")
		default:
			h.log.Error("failed to create user", "error", err)
			failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    &user,
	})
}

// Login handles POST /api/users/login. The failure message never reveals
// whether the identifier or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Identifier = strings.TrimSpace(req.Identifier)
	if req.Identifier == "" || req.Password == "" {
		failJSON(w, http.StatusBadRequest, "Identifier and password are required")
		return
	}

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	user, err := h.users.ByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failJSON(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.log.Error("failed to look up user", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		failJSON(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.sessions.Create(ctx, user.ID.Hex())
	if err != nil {
		h.log.Error("failed to create session", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    &user,
		Token:   token,
	})
}

// Logout handles POST /api/users/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))

	ctx, cancel := storeContext(r.Context())
	defer cancel()

	if err := h.sessions.Invalidate(ctx, token); err != nil {
		h.log.Error("failed to invalidate session", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out",
	})
}

// GetUsers handles GET /api/users. Password hashes are excluded by the model's
// JSON tags.
func (h *AuthHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeContext(r.Context())
	defer cancel()

	users, err := h.users.List(ctx)
	if err != nil {
		h.log.Error("failed to list users", "error", err)
		failJSON(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	respondJSON(w, http.StatusOK, ListUsersResponse{
		Success: true,
		Users:   users,
		Total:   len(users),
	})
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
