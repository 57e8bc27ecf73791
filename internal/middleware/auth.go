package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spaceqrpro/qrmenu-api/internal/httperr"
	"github.com/spaceqrpro/qrmenu-api/internal/models"
	"github.com/spaceqrpro/qrmenu-api/internal/token"
)

const ContextUser = "currentUser"

// UserFinder resolves a token claim to a stored user. A missing user is
// (nil, nil), errors are reserved for store failures.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Auth verifies the bearer token and loads the user behind its claim.
// A valid token whose user no longer exists fails exactly like an invalid
// token so callers cannot probe for deleted accounts.
func Auth(maker *token.Maker, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		claims, err := maker.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		user, err := users.FindUserByEmail(c.Request.Context(), claims.Email())
		if err != nil {
			httperr.Internal(c, "internal_error", "Could not load user.")
			c.Abort()
			return
		}
		if user == nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireActive runs after Auth and rejects deactivated accounts.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "user_not_in_context")
			return
		}
		if !user.IsActive {
			httperr.Forbidden(c, "inactive_account", "Account is inactive.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSubscribed runs after RequireActive and gates all restaurant,
// menu and dish management.
func RequireSubscribed() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "user_not_in_context")
			return
		}
		if !user.IsSubscribed() {
			httperr.Forbidden(c, "subscription_required", "Active subscription required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin is a flag test, not a subscription tier.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "user_not_in_context")
			return
		}
		if !user.IsAdmin {
			httperr.Forbidden(c, "admin_required", "Admin access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abortUnauthorized(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.HTTPError{
		Code:    code,
		Message: "Could not validate credentials.",
	})
}
