package jobboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobboard "github.com/goliatone/go-jobboard"
)

func newGuardedApp(t *testing.T) (*fiber.App, jobboard.TokenService) {
	t.Helper()

	tokens := jobboard.NewTokenService([]byte("test-signing-key"), 1, "test",
		[]string{"test"}, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: jobboard.NewErrorHandler(jobboard.ErrorHandlerConfig{}),
	})

	authed := jobboard.Protected(tokens)
	app.Get("/me", authed, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": jobboard.UserIDFromCtx(c),
			"role":    jobboard.RoleFromCtx(c),
		})
	})
	app.Get("/employers-only", authed, jobboard.RequireRole(jobboard.RoleEmployer), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin-only", authed, jobboard.AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app, tokens
}

func guardedRequest(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func TestProtected(t *testing.T) {
	app, tokens := newGuardedApp(t)

	token, err := tokens.Generate(staticIdentity{
		id:    "user-1",
		email: "user@example.com",
		name:  "User",
		role:  jobboard.RoleEmployee,
	})
	require.NoError(t, err)

	t.Run("valid token populates the request context", func(t *testing.T) {
		res := guardedRequest(t, app, "/me", "Bearer "+token)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		defer res.Body.Close()
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "user-1", body["user_id"])
		assert.Equal(t, jobboard.RoleEmployee, body["role"])
	})

	t.Run("missing header", func(t *testing.T) {
		res := guardedRequest(t, app, "/me", "")
		require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

		defer res.Body.Close()
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "access denied, no token provided", body["error"])
	})

	t.Run("wrong scheme", func(t *testing.T) {
		res := guardedRequest(t, app, "/me", "Token "+token)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("empty bearer value", func(t *testing.T) {
		res := guardedRequest(t, app, "/me", "Bearer ")
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		res := guardedRequest(t, app, "/me", "Bearer not.a.jwt")
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		service, ok := tokens.(*jobboard.TokenServiceImpl)
		require.True(t, ok)

		expired, err := service.SignClaims(&jobboard.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test",
				Subject:   "user-1",
				Audience:  jwt.ClaimStrings{"test"},
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})
		require.NoError(t, err)

		res := guardedRequest(t, app, "/me", "Bearer "+expired)
		require.Equal(t, fiber.StatusUnauthorized, res.StatusCode)

		defer res.Body.Close()
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "token is expired", body["error"])
	})
}

func TestRequireRole(t *testing.T) {
	app, tokens := newGuardedApp(t)

	tokenFor := func(role jobboard.UserRole) string {
		token, err := tokens.Generate(staticIdentity{
			id:    "user-" + role,
			email: role + "@example.com",
			name:  "User",
			role:  role,
		})
		require.NoError(t, err)
		return token
	}

	t.Run("matching role passes", func(t *testing.T) {
		res := guardedRequest(t, app, "/employers-only", "Bearer "+tokenFor(jobboard.RoleEmployer))
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	})

	t.Run("other roles are rejected", func(t *testing.T) {
		res := guardedRequest(t, app, "/employers-only", "Bearer "+tokenFor(jobboard.RoleEmployee))
		require.Equal(t, fiber.StatusForbidden, res.StatusCode)

		defer res.Body.Close()
		body := map[string]any{}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "insufficient privileges", body["error"])
	})

	t.Run("admin gate only admits admins", func(t *testing.T) {
		res := guardedRequest(t, app, "/admin-only", "Bearer "+tokenFor(jobboard.RoleAdmin))
		assert.Equal(t, fiber.StatusOK, res.StatusCode)

		res = guardedRequest(t, app, "/admin-only", "Bearer "+tokenFor(jobboard.RoleManagement))
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})
}
