package services

import "errors"

// Request-scoped failures surfaced to handlers. None of these are fatal;
// handlers translate them into HTTP statuses.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so responses never reveal which half failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrIPNotAllowed       = errors.New("access from this IP is not allowed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPrincipalNotFound  = errors.New("principal not found or inactive")

	ErrUserNotFound      = errors.New("user not found")
	ErrTherapistNotFound = errors.New("therapist not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrHasActivePatients = errors.New("cannot delete therapist with active patients; deactivate instead")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
