package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/middleware"
	"github.com/dbtsantiago/care-backend/internal/models"
	"github.com/dbtsantiago/care-backend/internal/services"
)

// CreateSessionRequest starts a care session for the authenticated patient
type CreateSessionRequest struct {
	StartDate         string `json:"start_date"` // YYYY-MM-DD, defaults to today
	ResponseFrequency string `json:"response_frequency,omitempty"`
}

// CreateDailyRecordRequest is one dated clinical snapshot
type CreateDailyRecordRequest struct {
	Date                string `json:"date"` // YYYY-MM-DD, defaults to today
	Mood                *int   `json:"mood,omitempty"`
	Anxiety             *int   `json:"anxiety,omitempty"`
	Stress              *int   `json:"stress,omitempty"`
	Energy              *int   `json:"energy,omitempty"`
	Emotions            string `json:"emotions,omitempty"`
	Triggers            string `json:"triggers,omitempty"`
	CopingStrategies    string `json:"coping_strategies,omitempty"`
	MedicationTaken     string `json:"medication_taken,omitempty"`
	SleepHours          string `json:"sleep_hours,omitempty"`
	ExerciseMinutes     string `json:"exercise_minutes,omitempty"`
	Notes               string `json:"notes,omitempty"`
	CrisisPlanActivated bool   `json:"crisis_plan_activated,omitempty"`
}

// SessionsHandler exposes care sessions and daily records to the
// authenticated patient.
type SessionsHandler struct {
	sessions *services.SessionService
}

func NewSessionsHandler(sessions *services.SessionService) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// Create starts a new care session
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	startDate := time.Now()
	if req.StartDate != "" {
		var err error
		startDate, err = time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, false, "start_date must be YYYY-MM-DD")
			return
		}
	}

	frequency := models.ResponseFrequency(req.ResponseFrequency)
	switch frequency {
	case "", models.FrequencyDaily, models.FrequencyTwiceDaily, models.FrequencyWeekly:
	default:
		writeMessage(w, http.StatusBadRequest, false, "response_frequency must be daily, twice_daily, or weekly")
		return
	}

	session, err := h.sessions.Create(r.Context(), services.CreateSessionInput{
		UserID:            user.ID,
		StartDate:         startDate,
		ResponseFrequency: frequency,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "session": session})
}

// List returns the authenticated patient's sessions
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}
	sessions, err := h.sessions.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "sessions": sessions})
}

// Complete marks a session completed
func (h *SessionsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, func(id, userID uuid.UUID) (*models.Session, error) {
		return h.sessions.Complete(r.Context(), id, userID)
	})
}

// Cancel marks a session cancelled
func (h *SessionsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, func(id, userID uuid.UUID) (*models.Session, error) {
		return h.sessions.Cancel(r.Context(), id, userID)
	})
}

func (h *SessionsHandler) finish(w http.ResponseWriter, r *http.Request, op func(id, userID uuid.UUID) (*models.Session, error)) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid session id")
		return
	}
	session, err := op(id, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "session": session})
}

// AddRecord appends a daily record to one of the patient's sessions
func (h *SessionsHandler) AddRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid session id")
		return
	}

	var req CreateDailyRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
		return
	}

	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, false, "date must be YYYY-MM-DD")
			return
		}
	}

	record, err := h.sessions.AddDailyRecord(r.Context(), sessionID, user.ID, services.CreateDailyRecordInput{
		Date:                date,
		Mood:                req.Mood,
		Anxiety:             req.Anxiety,
		Stress:              req.Stress,
		Energy:              req.Energy,
		Emotions:            req.Emotions,
		Triggers:            req.Triggers,
		CopingStrategies:    req.CopingStrategies,
		MedicationTaken:     req.MedicationTaken,
		SleepHours:          req.SleepHours,
		ExerciseMinutes:     req.ExerciseMinutes,
		Notes:               req.Notes,
		CrisisPlanActivated: req.CrisisPlanActivated,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "record": record})
}

// ListRecords returns the daily records of one of the patient's sessions
func (h *SessionsHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Unauthorized")
		return
	}
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Invalid session id")
		return
	}

	records, err := h.sessions.ListDailyRecords(r.Context(), sessionID, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "records": records})
}
