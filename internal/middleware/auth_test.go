package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/models"
	"github.com/dbtsantiago/care-backend/internal/services"
)

type stubAdminResolver struct {
	admins map[uuid.UUID]*models.Admin
}

func (r *stubAdminResolver) ValidateAdmin(_ context.Context, id uuid.UUID) (*models.Admin, error) {
	admin, ok := r.admins[id]
	if !ok || !admin.Active {
		return nil, services.ErrPrincipalNotFound
	}
	return admin, nil
}

type stubUserResolver struct {
	users map[uuid.UUID]*models.User
}

func (r *stubUserResolver) ValidateUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok || user.Status != models.UserActive {
		return nil, services.ErrPrincipalNotFound
	}
	return user, nil
}

func guardedRequest(t *testing.T, guard func(http.Handler) http.Handler, authorization string, sawPrincipal *bool) *httptest.ResponseRecorder {
	t.Helper()
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawPrincipal != nil {
			_, adminOK := AdminFromContext(r.Context())
			_, userOK := UserFromContext(r.Context())
			*sawPrincipal = adminOK || userOK
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAdmin(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", "24h")
	require.NoError(t, err)

	admin := &models.Admin{ID: uuid.New(), Email: "admin@dbtsantiago.com", Role: models.RoleAdmin, Active: true}
	resolver := &stubAdminResolver{admins: map[uuid.UUID]*models.Admin{admin.ID: admin}}
	guard := RequireAdmin(tokens, resolver)

	adminToken, err := tokens.Issue(admin.ID, admin.Email, auth.KindAdmin, string(admin.Role))
	require.NoError(t, err)
	userToken, err := tokens.Issue(admin.ID, admin.Email, auth.KindUser, "")
	require.NoError(t, err)

	var sawPrincipal bool
	rec := guardedRequest(t, guard, "Bearer "+adminToken, &sawPrincipal)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawPrincipal, "the handler must see the injected admin")

	for name, header := range map[string]string{
		"no header":        "",
		"not bearer":       "Basic abc123",
		"garbage token":    "Bearer not-a-jwt",
		"user-kind token":  "Bearer " + userToken,
		"whitespace token": "Bearer ",
	} {
		rec := guardedRequest(t, guard, header, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.JSONEq(t, `{"success":false,"message":"Unauthorized"}`, rec.Body.String(), name)
	}
}

func TestRequireAdminRejectsDeactivated(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", "24h")
	require.NoError(t, err)

	admin := &models.Admin{ID: uuid.New(), Email: "admin@dbtsantiago.com", Active: true}
	resolver := &stubAdminResolver{admins: map[uuid.UUID]*models.Admin{admin.ID: admin}}
	guard := RequireAdmin(tokens, resolver)

	token, err := tokens.Issue(admin.ID, admin.Email, auth.KindAdmin, "admin")
	require.NoError(t, err)

	admin.Active = false
	rec := guardedRequest(t, guard, "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code,
		"a still-valid token does not outlive the principal")
}

func TestRequireAdminRejectsExpired(t *testing.T) {
	shortLived, err := auth.NewTokenService("test-secret", "1ns")
	require.NoError(t, err)

	admin := &models.Admin{ID: uuid.New(), Email: "admin@dbtsantiago.com", Active: true}
	resolver := &stubAdminResolver{admins: map[uuid.UUID]*models.Admin{admin.ID: admin}}
	guard := RequireAdmin(shortLived, resolver)

	token, err := shortLived.Issue(admin.ID, admin.Email, auth.KindAdmin, "admin")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	rec := guardedRequest(t, guard, "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUser(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", "24h")
	require.NoError(t, err)

	user := &models.User{ID: uuid.New(), Email: "a@x.com", Status: models.UserActive}
	resolver := &stubUserResolver{users: map[uuid.UUID]*models.User{user.ID: user}}
	guard := RequireUser(tokens, resolver)

	userToken, err := tokens.Issue(user.ID, user.Email, auth.KindUser, "")
	require.NoError(t, err)
	adminToken, err := tokens.Issue(user.ID, user.Email, auth.KindAdmin, "admin")
	require.NoError(t, err)

	var sawPrincipal bool
	rec := guardedRequest(t, guard, "Bearer "+userToken, &sawPrincipal)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawPrincipal)

	rec = guardedRequest(t, guard, "Bearer "+adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code,
		"admin tokens never pass a user guard")

	user.Status = models.UserSuspended
	rec = guardedRequest(t, guard, "Bearer "+userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
