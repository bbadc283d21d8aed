package middleware

// identity.go defines helpers shared across middleware files.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID returns the subject stored by JWTAuth, or "anon" for requests that
// did not carry a token.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return "anon"
}
