package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finance-ledger/internal/utils"
)

// contextUserKey is where the authenticated subject id is stored on
// the Echo context.
const contextUserKey = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects the token's subject into the request context. The provided
// secret must match the one used when issuing tokens. Both a missing
// and an invalid token answer 403, matching the wire contract of the
// public API. Verification checks signature and expiry only; whether
// the subject still exists is the concern of the handlers behind the
// gate.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "token is missing"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			c.Set(contextUserKey, uid)
			return next(c)
		}
	}
}

// UserID extracts the authenticated subject id placed in the context
// by JWTAuth. The second return value is false when the request did
// not pass through the gate.
func UserID(c echo.Context) (uint64, bool) {
	uid, ok := c.Get(contextUserKey).(uint64)
	return uid, ok
}
