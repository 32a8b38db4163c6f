package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobboard "github.com/goliatone/go-jobboard"
	"github.com/goliatone/go-jobboard/admin"
	"github.com/goliatone/go-jobboard/jobs"
)

type userIdentity struct {
	user *jobboard.User
}

func (i userIdentity) ID() string    { return i.user.ID.String() }
func (i userIdentity) Email() string { return i.user.Email }
func (i userIdentity) Name() string  { return i.user.Name }
func (i userIdentity) Role() string  { return string(i.user.Role) }

type adminTestEnv struct {
	app          *fiber.App
	users        *jobboard.UserStore
	applications *jobs.ApplicationStore
	tokens       jobboard.TokenService
	events       []jobboard.ActivityEvent
	admin        *jobboard.User
}

func newAdminTestEnv(t *testing.T) *adminTestEnv {
	t.Helper()

	env := &adminTestEnv{
		users:        jobboard.NewUserStore(),
		applications: jobs.NewApplicationStore(),
		tokens: jobboard.NewTokenService([]byte("test-signing-key"), 1, "test",
			[]string{"test"}, nil),
	}

	env.admin = env.seedUser(t, "Root Admin", "admin@jobportal.com", jobboard.RoleAdmin)

	controller := admin.NewController(
		admin.WithUsers(env.users),
		admin.WithApplications(env.applications),
		admin.WithActivitySink(jobboard.ActivitySinkFunc(func(ctx context.Context, event jobboard.ActivityEvent) error {
			env.events = append(env.events, event)
			return nil
		})),
	)

	env.app = fiber.New(fiber.Config{
		ErrorHandler: jobboard.NewErrorHandler(jobboard.ErrorHandlerConfig{}),
	})
	admin.RegisterRoutes(env.app, controller, env.tokens)

	return env
}

func (env *adminTestEnv) seedUser(t *testing.T, name, email string, role jobboard.UserRole) *jobboard.User {
	t.Helper()

	created, err := env.users.Register(context.Background(), &jobboard.User{
		Email:      email,
		Name:       name,
		Role:       role,
		IsVerified: true,
		IsActive:   true,
		Status:     jobboard.UserStatusActive,
	})
	require.NoError(t, err)
	return created
}

func (env *adminTestEnv) request(t *testing.T, method, path string, as *jobboard.User, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if as != nil {
		token, err := env.tokens.Generate(userIdentity{user: as})
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	res, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeMap(t *testing.T, res *http.Response) map[string]any {
	t.Helper()

	defer res.Body.Close()
	out := map[string]any{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestAdmin_RoleGuard(t *testing.T) {
	env := newAdminTestEnv(t)
	employee := env.seedUser(t, "Worker", "worker@example.com", jobboard.RoleEmployee)
	manager := env.seedUser(t, "Manager", "manager@example.com", jobboard.RoleManagement)

	t.Run("non-admin roles are rejected", func(t *testing.T) {
		for _, user := range []*jobboard.User{employee, manager} {
			res := env.request(t, fiber.MethodGet, "/api/admin/employees", user, nil)
			assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
		}
	})

	t.Run("anonymous requests are rejected", func(t *testing.T) {
		res := env.request(t, fiber.MethodGet, "/api/admin/employees", nil, nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	})
}

func TestAdmin_ListEmployees(t *testing.T) {
	env := newAdminTestEnv(t)
	env.seedUser(t, "Worker", "worker@example.com", jobboard.RoleEmployee)
	env.seedUser(t, "Boss", "boss@example.com", jobboard.RoleEmployer)
	env.seedUser(t, "Manager", "manager@example.com", jobboard.RoleManagement)

	res := env.request(t, fiber.MethodGet, "/api/admin/employees", env.admin, nil)
	require.Equal(t, fiber.StatusOK, res.StatusCode)

	defer res.Body.Close()
	var list []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))

	// Management and admin accounts stay out of the listing.
	require.Len(t, list, 2)
	emails := []string{list[0]["email"].(string), list[1]["email"].(string)}
	assert.ElementsMatch(t, []string{"worker@example.com", "boss@example.com"}, emails)
}

func TestAdmin_GetEmployee(t *testing.T) {
	env := newAdminTestEnv(t)
	worker := env.seedUser(t, "Worker", "worker@example.com", jobboard.RoleEmployee)

	_, err := env.applications.Create(context.Background(), &jobs.Application{
		JobID:      uuid.New(),
		EmployeeID: worker.ID,
	})
	require.NoError(t, err)

	t.Run("returns the account with applications attached", func(t *testing.T) {
		res := env.request(t, fiber.MethodGet, "/api/admin/employees/"+worker.ID.String(), env.admin, nil)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "worker@example.com", body["email"])
		applications, ok := body["applications"].([]any)
		require.True(t, ok)
		assert.Len(t, applications, 1)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		res := env.request(t, fiber.MethodGet, "/api/admin/employees/"+uuid.NewString(), env.admin, nil)
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	})
}

func TestAdmin_AddEmployee(t *testing.T) {
	env := newAdminTestEnv(t)

	t.Run("creates a verified active account", func(t *testing.T) {
		res := env.request(t, fiber.MethodPost, "/api/admin/employees", env.admin, map[string]any{
			"name":        "New Hire",
			"email":       "hire@example.com",
			"password":    "Secret123!",
			"role":        "employer",
			"designation": "Recruiter",
		})
		require.Equal(t, fiber.StatusCreated, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "Employee added successfully", body["message"])

		stored, err := env.users.GetByIdentifier(context.Background(), "hire@example.com")
		require.NoError(t, err)
		assert.Equal(t, jobboard.RoleEmployer, stored.Role)
		assert.True(t, stored.IsVerified)
		assert.True(t, stored.IsActive)
		assert.Equal(t, env.admin.ID.String(), stored.AddedBy)
		assert.NotNil(t, stored.AddedAt)
		assert.NotEqual(t, "Secret123!", stored.PasswordHash)
	})

	t.Run("role defaults to employee", func(t *testing.T) {
		res := env.request(t, fiber.MethodPost, "/api/admin/employees", env.admin, map[string]any{
			"name":     "Default Role",
			"email":    "default@example.com",
			"password": "Secret123!",
		})
		require.Equal(t, fiber.StatusCreated, res.StatusCode)
		res.Body.Close()

		stored, err := env.users.GetByIdentifier(context.Background(), "default@example.com")
		require.NoError(t, err)
		assert.Equal(t, jobboard.RoleEmployee, stored.Role)
	})

	t.Run("admin role cannot be granted", func(t *testing.T) {
		res := env.request(t, fiber.MethodPost, "/api/admin/employees", env.admin, map[string]any{
			"name":     "Pretender",
			"email":    "pretender@example.com",
			"password": "Secret123!",
			"role":     "admin",
		})
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		res := env.request(t, fiber.MethodPost, "/api/admin/employees", env.admin, map[string]any{
			"name":     "Bad Email",
			"email":    "not-an-email",
			"password": "Secret123!",
		})
		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		res := env.request(t, fiber.MethodPost, "/api/admin/employees", env.admin, map[string]any{
			"name":     "Again",
			"email":    "hire@example.com",
			"password": "Secret123!",
		})
		require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "user already exists with this email", body["error"])
	})
}

func TestAdmin_RestrictAndActivate(t *testing.T) {
	env := newAdminTestEnv(t)
	worker := env.seedUser(t, "Worker", "worker@example.com", jobboard.RoleEmployee)

	t.Run("restricts with an explicit reason", func(t *testing.T) {
		res := env.request(t, fiber.MethodPut, "/api/admin/employees/"+worker.ID.String()+"/restrict", env.admin, map[string]any{
			"restrict_reason": "policy violation",
		})
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "Employee has been restricted", body["message"])

		user := body["user"].(map[string]any)
		assert.Equal(t, worker.ID.String(), user["id"])
		assert.Equal(t, string(jobboard.UserStatusRestricted), user["status"])

		stored, err := env.users.GetByID(context.Background(), worker.ID)
		require.NoError(t, err)
		assert.Equal(t, "policy violation", stored.RestrictReason)
		assert.Equal(t, env.admin.ID.String(), stored.RestrictedBy)
	})

	t.Run("activation clears the restriction", func(t *testing.T) {
		res := env.request(t, fiber.MethodPut, "/api/admin/employees/"+worker.ID.String()+"/activate", env.admin, nil)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "Employee has been activated", body["message"])

		stored, err := env.users.GetByID(context.Background(), worker.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsActive)
		assert.Empty(t, stored.RestrictReason)
		assert.Equal(t, env.admin.ID.String(), stored.ActivatedBy)
	})

	t.Run("restriction reason defaults when omitted", func(t *testing.T) {
		res := env.request(t, fiber.MethodPut, "/api/admin/employees/"+worker.ID.String()+"/restrict", env.admin, nil)
		require.Equal(t, fiber.StatusOK, res.StatusCode)
		res.Body.Close()

		stored, err := env.users.GetByID(context.Background(), worker.ID)
		require.NoError(t, err)
		assert.Equal(t, "No reason provided", stored.RestrictReason)
	})

	t.Run("admin accounts cannot be restricted", func(t *testing.T) {
		res := env.request(t, fiber.MethodPut, "/api/admin/employees/"+env.admin.ID.String()+"/restrict", env.admin, nil)
		require.Equal(t, fiber.StatusForbidden, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "administrator accounts cannot be modified", body["error"])
	})
}

func TestAdmin_RemoveEmployee(t *testing.T) {
	env := newAdminTestEnv(t)
	worker := env.seedUser(t, "Jane Doe", "jane@example.com", jobboard.RoleEmployee)

	t.Run("removes the account and records the event", func(t *testing.T) {
		res := env.request(t, fiber.MethodDelete, "/api/admin/employees/"+worker.ID.String(), env.admin, nil)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeMap(t, res)
		assert.Equal(t, "Employee Jane Doe has been removed", body["message"])

		_, err := env.users.GetByID(context.Background(), worker.ID)
		assert.ErrorIs(t, err, jobboard.ErrIdentityNotFound)

		require.Len(t, env.events, 1)
		event := env.events[0]
		assert.Equal(t, jobboard.ActivityEventUserStatusChanged, event.EventType)
		assert.Equal(t, worker.ID.String(), event.UserID)
		assert.Equal(t, "removed", event.Metadata["action"])
		assert.Equal(t, "jane@example.com", event.Metadata["email"])
		assert.Equal(t, env.admin.ID.String(), event.Actor.ID)
	})

	t.Run("admin accounts cannot be removed", func(t *testing.T) {
		res := env.request(t, fiber.MethodDelete, "/api/admin/employees/"+env.admin.ID.String(), env.admin, nil)
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})
}
