package domain

import (
	"errors"

	tarot "tarot-backend/internal/tarot/domain"
)

var (
	ErrUnauthorized  = errors.New("invalid or expired token")
	ErrInvalidAdmin  = errors.New("invalid admin key")
	ErrAdminDisabled = errors.New("admin API is not configured")
)

// User is the authenticated caller, resolved from a Supabase access token
type User struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Tier  tarot.Tier `json:"tier"`
}
