// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no demo user matches the username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the idle timeout has elapsed.
	// The session is deleted and the user must sign in again.
	ErrSessionExpired = errors.New("session timed out")
)
