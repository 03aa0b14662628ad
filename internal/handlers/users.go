package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/middleware"
	"github.com/dbtsantiago/care-backend/internal/services"
)

// CreateUserRequest is an admin-created patient account
type CreateUserRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	DateOfBirth     string `json:"date_of_birth"` // YYYY-MM-DD
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
	TherapistID     string `json:"therapist_id,omitempty"`
	AdminNotes      string `json:"admin_notes,omitempty"`
}

// AssignTherapistRequest sets the patient's therapist
type AssignTherapistRequest struct {
	TherapistID string `json:"therapist_id"`
}

// UsersHandler exposes admin-side patient management over HTTP.
type UsersHandler struct {
	users *services.UserService
}

func NewUsersHandler(users *services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Create handles admin creation of a patient account
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
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

	var therapistID *uuid.UUID
	if req.TherapistID != "" {
		id, err := uuid.Parse(req.TherapistID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid therapist id")
			return
		}
		therapistID = &id
	}

	user, err := h.users.CreateUser(r.Context(), services.CreateUserInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		DateOfBirth:     dateOfBirth,
		ProfilePhotoURL: req.ProfilePhotoURL,
		TherapistID:     therapistID,
		AdminNotes:      req.AdminNotes,
		CreatedByAdmin:  admin.ID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// List returns patients, optionally filtered by status or therapist
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if therapist := r.URL.Query().Get("therapist_id"); therapist != "" {
		therapistID, err := uuid.Parse(therapist)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid therapist id")
			return
		}
		users, err := h.users.FindByTherapist(r.Context(), therapistID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "users": users})
		return
	}

	var err error
	var users interface{}
	if r.URL.Query().Get("active") == "true" {
		users, err = h.users.FindActive(r.Context())
	} else {
		users, err = h.users.FindAll(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "users": users})
}

// Get returns one patient by id
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid user id")
		return
	}
	user, err := h.users.FindOne(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

// Counts returns total and active patient counts
func (h *UsersHandler) Counts(w http.ResponseWriter, r *http.Request) {
	total, err := h.users.UserCount(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	active, err := h.users.ActiveUserCount(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"total":   total,
		"active":  active,
	})
}

// AssignTherapist assigns a therapist to a patient
func (h *UsersHandler) AssignTherapist(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid user id")
		return
	}

	var req AssignTherapistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	therapistID, err := uuid.Parse(req.TherapistID)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid therapist id")
		return
	}

	user, err := h.users.AssignTherapist(r.Context(), userID, therapistID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

// RemoveTherapist clears the patient's therapist assignment
func (h *UsersHandler) RemoveTherapist(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid user id")
		return
	}

	user, err := h.users.RemoveTherapist(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}
