package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authdomain "tarot-backend/internal/auth/domain"
	"tarot-backend/internal/auth/repository"
	tarot "tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/supabase"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	supabase     SupabaseClient
	fcmRepo      repository.FCMTokenRepository
	jwtSecret    string
	adminKeyHash string
	logger       *zap.Logger
}

// Options carries the secrets the usecase verifies against
type Options struct {
	// JWTSecret enables local HS256 verification of access tokens;
	// empty means every token is checked against Supabase
	JWTSecret string

	// AdminKeyHash is the bcrypt hash of the admin API key
	AdminKeyHash string
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(sb SupabaseClient, fcmRepo repository.FCMTokenRepository, opts Options, logger *zap.Logger) AuthUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &authUsecase{
		supabase:     sb,
		fcmRepo:      fcmRepo,
		jwtSecret:    opts.JWTSecret,
		adminKeyHash: opts.AdminKeyHash,
		logger:       logger.Named("auth"),
	}
}

func (u *authUsecase) ValidateToken(ctx context.Context, tokenString string) (*authdomain.User, error) {
	var user *authdomain.User
	var err error
	if u.jwtSecret != "" {
		user, err = u.parseToken(tokenString)
	} else {
		user, err = u.fetchUser(ctx, tokenString)
	}
	if err != nil {
		return nil, err
	}

	user.Tier = u.lookupTier(ctx, tokenString, user.ID)
	return user, nil
}

// parseToken verifies a Supabase access token locally
func (u *authUsecase) parseToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return nil, authdomain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, authdomain.ErrUnauthorized
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, authdomain.ErrUnauthorized
	}
	email, _ := claims["email"].(string)

	return &authdomain.User{ID: userID, Email: email}, nil
}

func (u *authUsecase) fetchUser(ctx context.Context, tokenString string) (*authdomain.User, error) {
	if u.supabase == nil {
		return nil, authdomain.ErrUnauthorized
	}
	sbUser, err := u.supabase.GetUser(ctx, tokenString)
	if err != nil {
		if errors.Is(err, supabase.ErrUnauthorized) {
			return nil, authdomain.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return &authdomain.User{ID: sbUser.ID, Email: sbUser.Email}, nil
}

// lookupTier reads the subscription tier from the profile row. Any failure
// leaves the user on the free tier.
func (u *authUsecase) lookupTier(ctx context.Context, tokenString, userID string) tarot.Tier {
	if u.supabase == nil {
		return tarot.TierFree
	}
	profile, err := u.supabase.GetProfile(ctx, tokenString, userID)
	if err != nil {
		u.logger.Warn("profile lookup failed, using free tier", zap.String("user_id", userID), zap.Error(err))
		return tarot.TierFree
	}
	if profile == nil {
		return tarot.TierFree
	}
	return tarot.ParseTier(strings.ToLower(strings.TrimSpace(profile.SubscriptionTier)))
}

func (u *authUsecase) AdminEnabled() bool {
	return u.adminKeyHash != ""
}

func (u *authUsecase) VerifyAdminKey(key string) error {
	if u.adminKeyHash == "" {
		return authdomain.ErrAdminDisabled
	}
	if key == "" {
		return authdomain.ErrInvalidAdmin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.adminKeyHash), []byte(key)); err != nil {
		return authdomain.ErrInvalidAdmin
	}
	return nil
}

func (u *authUsecase) RegisterFCMToken(userID, token, deviceInfo, locale string) error {
	if u.fcmRepo == nil {
		return errors.New("push notifications are not configured")
	}
	if locale != "pt" {
		locale = "en"
	}
	return u.fcmRepo.SaveToken(userID, token, deviceInfo, locale)
}

func (u *authUsecase) UnregisterFCMToken(userID, token string) error {
	if u.fcmRepo == nil {
		return errors.New("push notifications are not configured")
	}
	deleted, err := u.fcmRepo.DeleteUserToken(userID, token)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.New("token not found")
	}
	return nil
}
