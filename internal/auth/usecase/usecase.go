package usecase

import (
	"context"

	authdomain "tarot-backend/internal/auth/domain"
	"tarot-backend/pkg/supabase"
)

// AuthUsecase resolves callers and manages their push tokens
type AuthUsecase interface {
	// ValidateToken resolves a Supabase access token to a user with its tier
	ValidateToken(ctx context.Context, token string) (*authdomain.User, error)

	// VerifyAdminKey checks the X-Admin-Key header value
	VerifyAdminKey(key string) error

	// AdminEnabled reports whether an admin key hash is configured
	AdminEnabled() bool

	// RegisterFCMToken stores a device token for daily card pushes
	RegisterFCMToken(userID, token, deviceInfo, locale string) error

	// UnregisterFCMToken removes one of the user's device tokens
	UnregisterFCMToken(userID, token string) error
}

// SupabaseClient is the Supabase surface the usecase needs
type SupabaseClient interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	GetProfile(ctx context.Context, accessToken, userID string) (*supabase.Profile, error)
}
