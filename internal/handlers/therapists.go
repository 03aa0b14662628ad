package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/services"
)

// CreateTherapistRequest is an admin-created therapist record
type CreateTherapistRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateTherapistRequest carries optional field updates
type UpdateTherapistRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// TherapistsHandler exposes therapist lifecycle management over HTTP.
type TherapistsHandler struct {
	therapists *services.TherapistService
}

func NewTherapistsHandler(therapists *services.TherapistService) *TherapistsHandler {
	return &TherapistsHandler{therapists: therapists}
}

// Create handles therapist creation
func (h *TherapistsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTherapistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		writeMessage(w, http.StatusBadRequest, false, "Email, first name, and last name are required")
		return
	}

	therapist, err := h.therapists.Create(r.Context(), services.CreateTherapistInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "therapist": therapist})
}

// List returns therapists; ?active=true filters to active ones
func (h *TherapistsHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	therapists, err := h.therapists.FindAll(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "therapists": therapists})
}

// Get returns one therapist by id
func (h *TherapistsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}
	therapist, err := h.therapists.FindOne(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "therapist": therapist})
}

// Update handles partial therapist updates
func (h *TherapistsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}

	var req UpdateTherapistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	therapist, err := h.therapists.Update(r.Context(), id, services.UpdateTherapistInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "therapist": therapist})
}

// Delete hard-deletes a therapist with no active patients
func (h *TherapistsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}
	if err := h.therapists.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "Therapist deleted")
}

// Activate flips the therapist back to active
func (h *TherapistsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}
	therapist, err := h.therapists.Activate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "therapist": therapist})
}

// Deactivate soft-deletes a therapist; assigned patients keep their reference
func (h *TherapistsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}
	therapist, err := h.therapists.Deactivate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "therapist": therapist})
}

// PatientCount returns the aggregate count of active patients
func (h *TherapistsHandler) PatientCount(w http.ResponseWriter, r *http.Request) {
	id, ok := therapistID(w, r)
	if !ok {
		return
	}
	count, err := h.therapists.PatientCount(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "patient_count": count})
}

func therapistID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid therapist id")
		return uuid.Nil, false
	}
	return id, true
}
