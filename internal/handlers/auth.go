package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dbtsantiago/care-backend/internal/middleware"
	"github.com/dbtsantiago/care-backend/internal/services"
)

// RegisterRequest is a self-service patient registration
type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	DateOfBirth     string `json:"date_of_birth"` // YYYY-MM-DD
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
}

// LoginRequest is a patient login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthHandler exposes the user auth domain over HTTP.
type AuthHandler struct {
	auth *services.UserAuthService
}

func NewAuthHandler(auth *services.UserAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles patient self-registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	// Validate required fields
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, false, "First name, last name, email, and password are required")
		return
	}
	if len(req.Password) < 8 {
		writeMessage(w, http.StatusBadRequest, false, "Password must be at least 8 characters long")
		return
	}

	var dateOfBirth time.Time
	if req.DateOfBirth != "" {
		var err error
		dateOfBirth, err = time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, false, "date_of_birth must be YYYY-MM-DD")
			return
		}
	}

	result, err := h.auth.Register(r.Context(), services.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		DateOfBirth:     dateOfBirth,
		ProfilePhotoURL: req.ProfilePhotoURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Login handles patient login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, false, "Email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Me returns the authenticated patient's own profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// ForgotPassword issues a reset token. It responds identically for known
// and unknown emails.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeMessage(w, http.StatusBadRequest, false, "Email is required")
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "If that email exists, a reset link has been sent")
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, false, "Token and new password are required")
		return
	}
	if len(req.NewPassword) < 8 {
		writeMessage(w, http.StatusBadRequest, false, "Password must be at least 8 characters long")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, true, "Password updated successfully")
}
