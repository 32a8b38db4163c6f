package jobboard

import (
	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by the Protected middleware.
const (
	LocalsClaimsKey = "auth_claims"
	LocalsUserIDKey = "user_id"
	LocalsRoleKey   = "role"
)

// ClaimsFromCtx returns the claims stored by the Protected middleware.
func ClaimsFromCtx(c *fiber.Ctx) (AuthClaims, error) {
	claims, ok := c.Locals(LocalsClaimsKey).(AuthClaims)
	if !ok || claims == nil {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// UserIDFromCtx returns the authenticated user id, empty when unauthenticated.
func UserIDFromCtx(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserIDKey).(string)
	return id
}

// RoleFromCtx returns the authenticated role, empty when unauthenticated.
func RoleFromCtx(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsRoleKey).(string)
	return role
}
