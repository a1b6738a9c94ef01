package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/parishworks/reportsdb/internal/auth"
	"github.com/parishworks/reportsdb/internal/types"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "report_session"

// AuthUser validates the session token from the report_session cookie or an
// Authorization bearer header and stores the account id in the context.
func AuthUser(secretKey []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			header := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			return types.NewCustomError(fiber.StatusUnauthorized,
				"Session token not found", "data.authorization.user")
		}

		accountID, err := auth.AccountIDFromToken(token, secretKey)
		if err != nil {
			return types.NewCustomError(fiber.StatusUnauthorized,
				"Invalid or expired session", "data.authorization.user")
		}

		c.Locals("accountID", accountID)
		return c.Next()
	}
}

// AccountID returns the authenticated account id set by AuthUser.
func AccountID(c *fiber.Ctx) string {
	id, _ := c.Locals("accountID").(string)
	return id
}
