package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authdomain "tarot-backend/internal/auth/domain"
	tarot "tarot-backend/internal/tarot/domain"
)

type stubAuth struct {
	adminHash bool
}

func (s stubAuth) ValidateToken(ctx context.Context, token string) (*authdomain.User, error) {
	switch token {
	case "free":
		return &authdomain.User{ID: "u-free", Tier: tarot.TierFree}, nil
	case "premium":
		return &authdomain.User{ID: "u-premium", Tier: tarot.TierPremium}, nil
	}
	return nil, authdomain.ErrUnauthorized
}

func (s stubAuth) VerifyAdminKey(key string) error {
	if !s.adminHash {
		return authdomain.ErrAdminDisabled
	}
	if key != "admin" {
		return authdomain.ErrInvalidAdmin
	}
	return nil
}

func (s stubAuth) AdminEnabled() bool { return s.adminHash }

func (s stubAuth) RegisterFCMToken(userID, token, deviceInfo, locale string) error { return nil }

func (s stubAuth) UnregisterFCMToken(userID, token string) error { return nil }

func init() {
	gin.SetMode(gin.TestMode)
}

func echoRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("userID"), "tier": c.GetString("tier")})
	})
	return r
}

func get(r http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := echoRouter(AuthMiddleware(stubAuth{}))

	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Token free"}).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer nope"}).Code)

	w := get(r, map[string]string{"Authorization": "Bearer premium"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u-premium","tier":"premium"}`, w.Body.String())
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := echoRouter(OptionalAuthMiddleware(stubAuth{}))

	w := get(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"","tier":"free"}`, w.Body.String())

	w = get(r, map[string]string{"Authorization": "Bearer free"})
	assert.JSONEq(t, `{"user":"u-free","tier":"free"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer nope"}).Code)
}

func TestAdminMiddleware(t *testing.T) {
	r := echoRouter(AdminMiddleware(stubAuth{adminHash: true}))
	assert.Equal(t, http.StatusOK, get(r, map[string]string{AdminKeyHeader: "admin"}).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{AdminKeyHeader: "guess"}).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)

	disabled := echoRouter(AdminMiddleware(stubAuth{}))
	assert.Equal(t, http.StatusServiceUnavailable, get(disabled, map[string]string{AdminKeyHeader: "admin"}).Code)
}
