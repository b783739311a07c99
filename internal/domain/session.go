package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrBlockedSession indicates a blocked session.
	ErrBlockedSession = errors.New("blocked session")
	// ErrMismatchedRefreshToken indicates that the refresh token does not match the session.
	ErrMismatchedRefreshToken = errors.New("mismatched session token")
	// ErrInvalidUser indicates an incorrect session user.
	ErrInvalidUser = errors.New("incorrect session user")
	// ErrExpiredSession indicates an expired session.
	ErrExpiredSession = errors.New("expired session")
)

// Session holds refresh token session data.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateSessionParams is the input data to create a session.
type CreateSessionParams struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
}
