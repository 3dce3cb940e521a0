package delivery

import (
	"errors"
	"net/http"
	"strings"

	authdomain "tarot-backend/internal/auth/domain"
	"tarot-backend/internal/auth/usecase"
	tarot "tarot-backend/internal/tarot/domain"

	"github.com/gin-gonic/gin"
)

// AdminKeyHeader carries the admin API key
const AdminKeyHeader = "X-Admin-Key"

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// ok is false when the header is present but malformed.
func bearerToken(c *gin.Context) (token string, present, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, true
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", true, false
	}
	return parts[1], true, true
}

func setUser(c *gin.Context, user *authdomain.User) {
	c.Set("user", user)
	c.Set("userID", user.ID)
	c.Set("tier", string(user.Tier))
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearerToken(c)
		if !present {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the user when a token is sent and lets
// anonymous requests through on the free tier
func OptionalAuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, ok := bearerToken(c)
		if !present {
			c.Set("tier", string(tarot.TierFree))
			c.Next()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// AdminMiddleware checks the X-Admin-Key header against the configured bcrypt hash
func AdminMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := authUsecase.VerifyAdminKey(c.GetHeader(AdminKeyHeader))
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, authdomain.ErrAdminDisabled):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			c.Abort()
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			c.Abort()
		}
	}
}
