package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind discriminates admin-domain tokens from user-domain tokens.
// A token of one kind must never authorize the other domain.
type Kind string

const (
	KindAdmin Kind = "admin"
	KindUser  Kind = "user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrKindMismatch = errors.New("token kind mismatch")
)

// Claims is the signed payload shared by both principal kinds.
// Role is only set on admin tokens.
type Claims struct {
	Email string `json:"email"`
	Kind  Kind   `json:"kind"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens for both
// principal kinds through a single signing mechanism.
type TokenService struct {
	secret    []byte
	lifetime  time.Duration
	expiresIn string
	now       func() time.Time
}

// NewTokenService parses expiresIn (e.g. "24h") as the token lifetime.
// The raw string is what callers surface to clients as expires_in.
func NewTokenService(secret, expiresIn string) (*TokenService, error) {
	lifetime, err := time.ParseDuration(expiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid token lifetime %q: %w", expiresIn, err)
	}
	return &TokenService{
		secret:    []byte(secret),
		lifetime:  lifetime,
		expiresIn: expiresIn,
		now:       time.Now,
	}, nil
}

// ExpiresIn returns the configured lifetime as an opaque duration string.
func (s *TokenService) ExpiresIn() string {
	return s.expiresIn
}

// Issue signs a token for the given principal. role is ignored unless
// kind is KindAdmin.
func (s *TokenService) Issue(id uuid.UUID, email string, kind Kind, role string) (string, error) {
	if kind != KindAdmin {
		role = ""
	}
	now := s.now()
	claims := Claims{
		Email: email,
		Kind:  kind,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify decodes and validates a token, requiring its kind discriminator
// to match expected. Cross-domain reuse fails with ErrKindMismatch even
// when the signature is valid.
func (s *TokenService) Verify(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != expected {
		return nil, ErrKindMismatch
	}
	return claims, nil
}

// SubjectID parses the token subject back into a principal id.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
