package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/stock-quote-api/internal/utils"
)

// JWTAuth returns an Echo middleware that guards protected routes.  It is a
// pure function of the Authorization header and the clock: no storage is
// consulted.  On success the token's identity is injected into the request
// context under "user_id" (uint64) and "email" (string); on any failure the
// request is rejected with 401 and a reason-specific body so clients can
// tell a missing token from an expired or tampered one.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header is exactly "Bearer <token>".  Anything else,
			// including an empty header, is treated as a missing token.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, "JWT token not found", "MissingToken")
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				return unauthorized(c, "JWT token not found", "MissingToken")
			}

			claims, err := utils.VerifyToken(secret, raw)
			if err != nil {
				switch {
				case errors.Is(err, utils.ErrTokenExpired):
					return unauthorized(c, "Token has expired", "ExpiredToken")
				case errors.Is(err, utils.ErrInvalidSignature):
					return unauthorized(c, "Invalid token signature", "InvalidSignature")
				default:
					return unauthorized(c, "Malformed token", "Malformed")
				}
			}

			// Downstream handlers read the authenticated identity from the
			// context rather than re-parsing the token.
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}

// unauthorized writes the 401 envelope shared by all auth failures.  The
// status code is identical for every reason; only message and error_code
// differ.
func unauthorized(c echo.Context, message, code string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success":    false,
		"message":    message,
		"error_code": code,
	})
}
