package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	appauth "github.com/arjun/placementhub/internal/app/auth"
	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/auth"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// AuthCookieName is the session cookie set on signin
const AuthCookieName = "auth_token"

const principalKey = "principal"

// PrincipalResolver looks up the user behind a validated token. Tokens for
// deleted users must not authenticate.
type PrincipalResolver interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthMiddleware authenticates requests. The session cookie is preferred;
// a Bearer Authorization header is accepted as a fallback for API clients.
func AuthMiddleware(jwtService *auth.JWTService, users PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				HandleAPIError(c, apperrors.ErrTokenExpired)
			default:
				HandleAPIError(c, apperrors.ErrTokenInvalid)
			}
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Warn().Int64("userID", claims.UserID).Msg("Token valid but user no longer exists")
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(principalKey, &appauth.Principal{
			ID:   user.ID,
			Role: user.Role,
		})
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	return auth.ExtractBearerToken(c.GetHeader("Authorization"))
}

// GetPrincipal returns the authenticated caller set by AuthMiddleware.
func GetPrincipal(c *gin.Context) (*appauth.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*appauth.Principal)
	return p, ok
}
