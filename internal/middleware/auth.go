package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ohmfruit/fruitstore-service/internal/auth"
	"github.com/ohmfruit/fruitstore-service/pkg/response"
	"github.com/ohmfruit/fruitstore-service/pkg/utils"
)

const claimsKey = "admin_claims"

// RequireAdmin rejects the request before the handler runs unless it carries
// a bearer token for an admin.
func RequireAdmin(guard auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := guard.Verify(c.Request().Context(), BearerToken(c))
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or an empty string.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// Claims returns the admin claims stored by RequireAdmin.
func Claims(c echo.Context) (utils.AdminClaims, bool) {
	claims, ok := c.Get(claimsKey).(utils.AdminClaims)
	return claims, ok
}
