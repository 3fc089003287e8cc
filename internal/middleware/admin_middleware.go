package middleware

import (
	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin lets only admins through. It must run after Auth.
func RequireAdmin(c *fiber.Ctx) error {
	caller, ok := CallerFrom(c)
	if !ok {
		return apperr.Unauthorized("missing token")
	}
	if caller.Role != models.RoleAdmin {
		return apperr.Forbidden("Access denied. Admins only.")
	}
	return c.Next()
}
