package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dbtsantiago/care-backend/internal/services"
	"github.com/dbtsantiago/care-backend/pkg/clientip"
)

// AdminLoginRequest is a platform admin login
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminAuthHandler exposes the admin auth domain over HTTP.
type AdminAuthHandler struct {
	auth *services.AdminAuthService
}

func NewAdminAuthHandler(auth *services.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

// Login handles admin login. The client IP is part of the decision because
// admins may carry an IP allow-list.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, false, "Email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password, clientip.RealClientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
