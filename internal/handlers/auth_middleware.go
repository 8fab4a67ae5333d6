package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alumbridge/scholarship-service/internal/auth"
	"github.com/alumbridge/scholarship-service/internal/models"
	"github.com/alumbridge/scholarship-service/internal/repositories"
)

// AuthMiddleware resolves the caller's identity from a bearer token before
// any business operation runs. Locally issued tokens are checked first; when
// a Casdoor verifier is configured, externally issued tokens are accepted as
// a fallback.
type AuthMiddleware struct {
	gateway  auth.Gateway
	fallback auth.TokenVerifier
	profiles repositories.ProfileRepository
}

func NewAuthMiddleware(gateway auth.Gateway, fallback auth.TokenVerifier, profiles repositories.ProfileRepository) *AuthMiddleware {
	return &AuthMiddleware{
		gateway:  gateway,
		fallback: fallback,
		profiles: profiles,
	}
}

// RequireAuth rejects the request with 401 unless a valid bearer token
// resolves to a known profile. On success the identity is set in the gin
// context under user_id, user and user_role.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		id, err := m.gateway.Verify(c.Request.Context(), token)
		if err != nil && m.fallback != nil {
			id, err = m.fallback.Verify(c.Request.Context(), token)
		}
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		profile, err := m.profiles.GetByID(c.Request.Context(), id)
		if err != nil {
			abortUnauthorized(c, "unknown identity")
			return
		}

		c.Set("user_id", id)
		c.Set("user", profile)
		c.Set("user_role", profile.Role)
		c.Next()
	}
}

// RequireRole rejects with 403 unless the authenticated caller holds one of
// the given roles. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			abortForbidden(c, "user role not found in context")
			return
		}

		role, ok := value.(models.UserRole)
		if !ok {
			abortForbidden(c, "invalid user role in context")
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		abortForbidden(c, fmt.Sprintf("requires role %v", roles))
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: msg,
	})
}

func abortForbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
		Error:   "forbidden",
		Message: msg,
	})
}

// GetUserIDFromContext returns the authenticated caller's identifier.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}
	id, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}
	return id, nil
}

// GetUserFromContext returns the authenticated caller's profile.
func GetUserFromContext(c *gin.Context) (*models.Profile, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}
	profile, ok := value.(*models.Profile)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}
	return profile, nil
}
