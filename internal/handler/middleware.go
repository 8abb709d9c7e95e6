package handler

import (
	"log/slog"
	"net/http"

	"shop_service/internal/auth"
	"shop_service/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	ctxUsername  = "Username"
	ctxRole      = "Role"
	ctxRequestID = "RequestID"
)

// RequestID tags every request with an id that handlers pick up for
// logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.NewV4()
		if err == nil {
			c.Set(ctxRequestID, id.String())
			c.Header("X-Request-Id", id.String())
		}
		c.Next()
	}
}

// AuthMiddleware authenticates a request from the accessToken cookie.
// A missing cookie is 401; a cookie that fails verification, including
// an expired one, is 403.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(accessTokenCookie)
		if err != nil || token == "" {
			newErrorResponse(c, http.StatusUnauthorized, "access token required")

			return
		}

		claims, err := issuer.VerifyAccessToken(token)
		if err != nil {
			newErrorResponse(c, http.StatusForbidden, "invalid access token")

			return
		}

		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

// RequireRole authorizes an already-authenticated request.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != role {
			newErrorResponse(c, http.StatusForbidden, "Access denied")

			return
		}

		c.Next()
	}
}

// LoginLimiter rejects a client that exceeded its login budget before
// credentials are even read, so throttling is independent of whether
// they would have been valid.
func LoginLimiter(limiter *ratelimit.PerClient, lgr *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			lgr.Warn("login rate limited", slog.String("client", c.ClientIP()))

			newErrorResponse(c, http.StatusTooManyRequests,
				"Too many login attempts. Please try again later.")

			return
		}

		c.Next()
	}
}
