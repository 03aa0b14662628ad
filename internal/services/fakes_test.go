package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// In-memory repository fakes shared by the service tests.

type memAdminRepo struct {
	admins        map[uuid.UUID]*models.Admin
	lastAccessErr error
}

func newMemAdminRepo(admins ...*models.Admin) *memAdminRepo {
	r := &memAdminRepo{admins: make(map[uuid.UUID]*models.Admin)}
	for _, a := range admins {
		r.admins[a.ID] = a
	}
	return r
}

func (r *memAdminRepo) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAdminRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	a, ok := r.admins[id]
	if !ok || !a.Active {
		return nil, nil
	}
	return a, nil
}

func (r *memAdminRepo) UpdateLastAccess(_ context.Context, id uuid.UUID, t time.Time) error {
	if r.lastAccessErr != nil {
		return r.lastAccessErr
	}
	if a, ok := r.admins[id]; ok {
		a.LastAccess = &t
	}
	return nil
}

type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *memUserRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.Status != models.UserActive {
		return nil, nil
	}
	return u, nil
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) SetTherapist(_ context.Context, userID uuid.UUID, therapistID *uuid.UUID) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.TherapistID = therapistID
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = passwordHash
	u.RequiresPasswordChange = false
	return nil
}

func (r *memUserRepo) UpdateLastAccess(_ context.Context, id uuid.UUID, t time.Time) error {
	if u, ok := r.users[id]; ok {
		u.LastAccess = &t
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) ListActive(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Status == models.UserActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListByTherapist(_ context.Context, therapistID uuid.UUID) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.TherapistID != nil && *u.TherapistID == therapistID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func (r *memUserRepo) CountByStatus(_ context.Context, status models.UserStatus) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memUserRepo) CountByTherapistAndStatus(_ context.Context, therapistID uuid.UUID, status models.UserStatus) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.TherapistID != nil && *u.TherapistID == therapistID && u.Status == status {
			count++
		}
	}
	return count, nil
}

type memTherapistRepo struct {
	therapists map[uuid.UUID]*models.Therapist
}

func newMemTherapistRepo(therapists ...*models.Therapist) *memTherapistRepo {
	r := &memTherapistRepo{therapists: make(map[uuid.UUID]*models.Therapist)}
	for _, t := range therapists {
		r.therapists[t.ID] = t
	}
	return r
}

func (r *memTherapistRepo) FindByEmail(_ context.Context, email string) (*models.Therapist, error) {
	for _, t := range r.therapists {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTherapistRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Therapist, error) {
	t, ok := r.therapists[id]
	if !ok {
		return nil, nil
	}
	return t, nil
}

func (r *memTherapistRepo) Create(_ context.Context, t *models.Therapist) error {
	r.therapists[t.ID] = t
	return nil
}

func (r *memTherapistRepo) Update(_ context.Context, t *models.Therapist) error {
	if _, ok := r.therapists[t.ID]; !ok {
		return errors.New("no such therapist")
	}
	r.therapists[t.ID] = t
	return nil
}

func (r *memTherapistRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	t, ok := r.therapists[id]
	if !ok {
		return errors.New("no such therapist")
	}
	t.Active = active
	return nil
}

func (r *memTherapistRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.therapists, id)
	return nil
}

func (r *memTherapistRepo) List(_ context.Context, activeOnly bool) ([]*models.Therapist, error) {
	var out []*models.Therapist
	for _, t := range r.therapists {
		if !activeOnly || t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

type memSessionRepo struct {
	sessions map[uuid.UUID]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*models.Session)}
}

func (r *memSessionRepo) Create(_ context.Context, s *models.Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *memSessionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Session, error) {
	var out []*models.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.SessionStatus, endDate *time.Time) error {
	s, ok := r.sessions[id]
	if !ok {
		return errors.New("no such session")
	}
	s.Status = status
	if endDate != nil {
		s.EndDate = endDate
	}
	return nil
}

type memRecordRepo struct {
	records []*models.DailyRecord
}

func (r *memRecordRepo) Create(_ context.Context, d *models.DailyRecord) error {
	r.records = append(r.records, d)
	return nil
}

func (r *memRecordRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*models.DailyRecord, error) {
	var out []*models.DailyRecord
	for _, d := range r.records {
		if d.SessionID == sessionID {
			out = append(out, d)
		}
	}
	return out, nil
}

type resetTokenEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
	used      bool
}

type memResetTokenRepo struct {
	tokens map[string]*resetTokenEntry
}

func newMemResetTokenRepo() *memResetTokenRepo {
	return &memResetTokenRepo{tokens: make(map[string]*resetTokenEntry)}
}

func (r *memResetTokenRepo) Create(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.tokens[token] = &resetTokenEntry{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *memResetTokenRepo) FindValid(_ context.Context, token string, now time.Time) (uuid.UUID, bool, error) {
	entry, ok := r.tokens[token]
	if !ok || entry.used || !entry.expiresAt.After(now) {
		return uuid.Nil, false, nil
	}
	return entry.userID, true, nil
}

func (r *memResetTokenRepo) MarkUsed(_ context.Context, token string) error {
	if entry, ok := r.tokens[token]; ok {
		entry.used = true
	}
	return nil
}

// mailRecorder counts sends and can simulate delivery failure.
type mailRecorder struct {
	err         error
	welcomes    []string
	assignments []string
	resets      []string
	resetTokens []string
}

func (m *mailRecorder) SendWelcome(_ context.Context, user *models.User, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, user.Email)
	return nil
}

func (m *mailRecorder) SendAssignment(_ context.Context, user *models.User, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.assignments = append(m.assignments, user.Email)
	return nil
}

func (m *mailRecorder) SendPasswordReset(_ context.Context, user *models.User, token string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, user.Email)
	m.resetTokens = append(m.resetTokens, token)
	return nil
}
