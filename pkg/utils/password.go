package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for all stored credentials.
const passwordCost = 12

// HashPassword hashes a password using bcrypt.
// Each call salts independently, so the same input yields different digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored digest.
// A malformed digest is reported as a mismatch, never as an error.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
