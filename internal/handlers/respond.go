package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dbtsantiago/care-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": success,
		"message": message,
	})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500 with the detail kept server-side.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountNotActive),
		errors.Is(err, services.ErrIPNotAllowed),
		errors.Is(err, services.ErrPrincipalNotFound):
		writeMessage(w, http.StatusUnauthorized, false, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrHasActivePatients):
		writeMessage(w, http.StatusConflict, false, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTherapistNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		writeMessage(w, http.StatusNotFound, false, err.Error())
	case errors.Is(err, services.ErrInvalidResetToken):
		writeMessage(w, http.StatusBadRequest, false, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
	}
}
