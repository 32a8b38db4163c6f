package jobboard

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Protected ensures the request carries a valid bearer token. Claims are
// injected into the request locals for downstream handlers.
func Protected(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := BearerToken(c)
		if err != nil {
			return err
		}

		claims, err := validator.Validate(raw)
		if err != nil {
			if IsTokenExpiredError(err) {
				return ErrTokenExpired
			}
			return ErrInvalidToken
		}

		c.Locals(LocalsClaimsKey, claims)
		c.Locals(LocalsUserIDKey, claims.UserID())
		c.Locals(LocalsRoleKey, claims.Role())

		return c.Next()
	}
}

// RequireRole gates a route to the given roles, must be placed after Protected.
func RequireRole(roles ...UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := ClaimsFromCtx(c)
		if err != nil {
			return err
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				return c.Next()
			}
		}

		return ErrorWithMetadata(ErrForbidden, map[string]any{
			"required_roles": roles,
			"role":           claims.Role(),
		})
	}
}

// AdminRequired gates a route to administrators, must be placed after Protected.
func AdminRequired() fiber.Handler {
	return RequireRole(RoleAdmin)
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}

	return strings.TrimSpace(parts[1]), nil
}
