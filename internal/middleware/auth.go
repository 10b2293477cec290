package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"budgetbuddy/internal/auth"
	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/store"
)

// IdentityKey is the gin context key holding the authenticated auth.Identity.
const IdentityKey = "identity"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserFinder resolves the user a token was issued for.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticate verifies the bearer token and attaches the caller's identity
// to both the request context and the gin context. A token for a user that
// no longer exists is rejected.
func Authenticate(tokens TokenVerifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header must be 'Bearer <token>'"))
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			AbortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				AbortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "User no longer exists"))
				return
			}
			AbortWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}

		identity := auth.Identity{ID: user.ID, Name: user.Name, Email: user.Email}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by Authenticate.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	if v, ok := c.Get(IdentityKey); ok {
		if identity, ok := v.(auth.Identity); ok && identity.ID != 0 {
			return identity, true
		}
	}
	return auth.IdentityFromContext(c.Request.Context())
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
