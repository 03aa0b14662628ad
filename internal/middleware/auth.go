package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/models"
)

// AdminResolver re-reads the admin principal on every guarded request.
type AdminResolver interface {
	ValidateAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// UserResolver re-reads the user principal on every guarded request.
type UserResolver interface {
	ValidateUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type contextKey int

const (
	adminContextKey contextKey = iota
	userContextKey
)

// RequireAdmin only lets requests through that carry a valid admin-kind
// bearer token for a still-active admin. All rejections look the same to
// the caller; the precise cause goes to the log.
func RequireAdmin(tokens *auth.TokenService, admins AdminResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				unauthorized(w, r, "missing bearer token")
				return
			}
			claims, err := tokens.Verify(tokenString, auth.KindAdmin)
			if err != nil {
				unauthorized(w, r, err.Error())
				return
			}
			id, err := claims.SubjectID()
			if err != nil {
				unauthorized(w, r, "malformed subject")
				return
			}
			admin, err := admins.ValidateAdmin(r.Context(), id)
			if err != nil {
				unauthorized(w, r, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser is the user-kind counterpart of RequireAdmin. An admin token
// is rejected here even before expiry.
func RequireUser(tokens *auth.TokenService, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				unauthorized(w, r, "missing bearer token")
				return
			}
			claims, err := tokens.Verify(tokenString, auth.KindUser)
			if err != nil {
				unauthorized(w, r, err.Error())
				return
			}
			id, err := claims.SubjectID()
			if err != nil {
				unauthorized(w, r, "malformed subject")
				return
			}
			user, err := users.ValidateUser(r.Context(), id)
			if err != nil {
				unauthorized(w, r, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the admin injected by RequireAdmin.
func AdminFromContext(ctx context.Context) (*models.Admin, bool) {
	admin, ok := ctx.Value(adminContextKey).(*models.Admin)
	return admin, ok
}

// UserFromContext returns the user injected by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	log.Printf("unauthorized %s %s: %s", r.Method, r.URL.Path, reason)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
}
