package jobboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobboard "github.com/goliatone/go-jobboard"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected jobboard.StringList
	}{
		{
			name:     "json array",
			input:    `["Go","SQL"]`,
			expected: jobboard.StringList{"Go", "SQL"},
		},
		{
			name:     "comma separated string",
			input:    `"Go, SQL , Docker"`,
			expected: jobboard.StringList{"Go", "SQL", "Docker"},
		},
		{
			name:     "single value",
			input:    `"Go"`,
			expected: jobboard.StringList{"Go"},
		},
		{
			name:     "empty string",
			input:    `""`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got jobboard.StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

type profileTestEnv struct {
	app        *fiber.App
	users      *jobboard.UserStore
	tokens     jobboard.TokenService
	uploadsDir string
}

func newProfileTestEnv(t *testing.T) *profileTestEnv {
	t.Helper()

	env := &profileTestEnv{
		users:      jobboard.NewUserStore(),
		uploadsDir: t.TempDir(),
		tokens: jobboard.NewTokenService([]byte("test-signing-key"), 1, "test",
			[]string{"test"}, nil),
	}

	controller := jobboard.NewProfileController(env.users, env.uploadsDir, nil)

	env.app = fiber.New(fiber.Config{
		ErrorHandler: jobboard.NewErrorHandler(jobboard.ErrorHandlerConfig{}),
	})
	jobboard.RegisterProfileRoutes(env.app, controller, env.tokens)

	return env
}

func (env *profileTestEnv) seedUser(t *testing.T, email string, role jobboard.UserRole, profile *jobboard.Profile) *jobboard.User {
	t.Helper()

	created, err := env.users.Register(context.Background(), &jobboard.User{
		Email:      email,
		Name:       "Profile User",
		Role:       role,
		IsVerified: true,
		IsActive:   true,
		Status:     jobboard.UserStatusActive,
		Profile:    profile,
	})
	require.NoError(t, err)
	return created
}

func (env *profileTestEnv) tokenFor(t *testing.T, user *jobboard.User) string {
	t.Helper()

	token, err := env.tokens.Generate(staticIdentity{
		id:    user.ID.String(),
		email: user.Email,
		name:  user.Name,
		role:  user.Role,
	})
	require.NoError(t, err)
	return token
}

func (env *profileTestEnv) jsonRequest(t *testing.T, method, path string, user *jobboard.User, payload any) *http.Response {
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
	if user != nil {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+env.tokenFor(t, user))
	}

	res, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func (env *profileTestEnv) uploadCV(t *testing.T, user *jobboard.User, filename string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("cv", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/profile/cv", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+env.tokenFor(t, user))

	res, err := env.app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func TestProfileController_UpdateProfile(t *testing.T) {
	env := newProfileTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "profile@example.com", jobboard.RoleEmployee, &jobboard.Profile{
		Bio:    "Original bio",
		Skills: []string{"Go"},
	})

	t.Run("merges posted fields and keeps the rest", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodPut, "/api/profile", user, map[string]any{
			"phone":             "03001234567",
			"desired_job_title": "Backend Engineer",
			"skills":            "Go, SQL",
		})
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "Profile updated successfully", body["message"])

		stored, err := env.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "03001234567", stored.Profile.Phone)
		assert.Equal(t, "Backend Engineer", stored.Profile.DesiredJobTitle)
		assert.Equal(t, []string{"Go", "SQL"}, []string(stored.Profile.Skills))
		// Absent fields keep their stored value.
		assert.Equal(t, "Original bio", stored.Profile.Bio)
		assert.NotNil(t, stored.Profile.UpdatedAt)
	})

	t.Run("rejects invalid phone numbers", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodPut, "/api/profile", user, map[string]any{
			"phone": "12345",
		})
		require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "invalid phone number", body["error"])
	})

	t.Run("creates the profile on first update", func(t *testing.T) {
		fresh := env.seedUser(t, "blank@example.com", jobboard.RoleEmployee, nil)

		res := env.jsonRequest(t, fiber.MethodPut, "/api/profile", fresh, map[string]any{
			"bio": "Hello",
		})
		require.Equal(t, fiber.StatusOK, res.StatusCode)
		res.Body.Close()

		stored, err := env.users.GetByID(ctx, fresh.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Profile)
		assert.Equal(t, "Hello", stored.Profile.Bio)
	})
}

func TestProfileController_UpdateManagementProfile(t *testing.T) {
	env := newProfileTestEnv(t)
	ctx := context.Background()

	manager := env.seedUser(t, "ceo@example.com", jobboard.RoleManagement, nil)
	employee := env.seedUser(t, "worker@example.com", jobboard.RoleEmployee, nil)

	t.Run("employees are rejected", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodPut, "/api/profile/management", employee, map[string]any{
			"company_name": "Sneaky Inc",
		})
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
	})

	t.Run("stores the management section", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodPut, "/api/profile/management", manager, map[string]any{
			"name":             "Jane CEO",
			"bio":              "Leading things",
			"company_name":     "Acme Ltd",
			"position_title":   "CEO",
			"management_level": "executive",
			"team_size":        40,
		})
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "Management profile updated successfully", body["message"])

		stored, err := env.users.GetByID(ctx, manager.ID)
		require.NoError(t, err)
		assert.Equal(t, "Jane CEO", stored.Name)
		require.NotNil(t, stored.Profile.ManagementProfile)
		assert.Equal(t, "Acme Ltd", stored.Profile.ManagementProfile.CompanyName)
		assert.Equal(t, 40, stored.Profile.ManagementProfile.TeamSize)
		assert.Equal(t, "Leading things", stored.Profile.ManagementProfile.Bio)
		assert.NotNil(t, stored.Profile.ManagementProfile.ProfileCompletedAt)
	})
}

func TestProfileController_UploadCV(t *testing.T) {
	env := newProfileTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "cv@example.com", jobboard.RoleEmployee, nil)

	t.Run("stores the file and records the path", func(t *testing.T) {
		res := env.uploadCV(t, user, "resume.pdf", []byte("%PDF-1.4 fake"))
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "CV uploaded successfully", body["message"])

		cv, ok := body["cv"].(string)
		require.True(t, ok)
		assert.True(t, len(cv) > len("/uploads/"))

		onDisk := filepath.Join(env.uploadsDir, filepath.Base(cv))
		_, err := os.Stat(onDisk)
		assert.NoError(t, err)

		stored, err := env.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, cv, stored.Profile.CV)
		assert.NotNil(t, stored.Profile.CVUploadedAt)
	})

	t.Run("replaces the previous file", func(t *testing.T) {
		stored, err := env.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		previous := filepath.Join(env.uploadsDir, filepath.Base(stored.Profile.CV))

		res := env.uploadCV(t, user, "updated.docx", []byte("new version"))
		require.Equal(t, fiber.StatusOK, res.StatusCode)
		res.Body.Close()

		_, err = os.Stat(previous)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		res := env.uploadCV(t, user, "resume.exe", []byte("MZ"))
		require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "only PDF, DOC, and DOCX files are allowed", body["error"])
	})

	t.Run("rejects requests without a file", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodPost, "/api/profile/cv", user, map[string]any{})
		require.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "no file uploaded", body["error"])
	})
}

func TestProfileController_GetUser(t *testing.T) {
	env := newProfileTestEnv(t)

	viewer := env.seedUser(t, "viewer@example.com", jobboard.RoleEmployer, nil)
	target := env.seedUser(t, "target@example.com", jobboard.RoleEmployee, &jobboard.Profile{
		Skills: []string{"Go"},
	})

	t.Run("returns the account without the password hash", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodGet, "/api/users/"+target.ID.String(), viewer, nil)
		require.Equal(t, fiber.StatusOK, res.StatusCode)

		body := decodeBody(t, res)
		assert.Equal(t, "target@example.com", body["email"])
		assert.NotContains(t, body, "password_hash")
	})

	t.Run("bad ids are not found", func(t *testing.T) {
		res := env.jsonRequest(t, fiber.MethodGet, "/api/users/not-a-uuid", viewer, nil)
		assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	})
}
