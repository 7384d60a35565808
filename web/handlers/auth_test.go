package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sididaher/achat-app/models"
	"github.com/Sididaher/achat-app/web/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type mockAuthStore struct {
	users []models.User
}

func (m *mockAuthStore) GetByEmail(email string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockAuthStore) GetByID(id uint) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, models.ErrUserNotFound
}

func newAuthApp(t *testing.T) (*fiber.App, *mockAuthStore) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockAuthStore{
		users: []models.User{
			{ID: 1, Username: "admin", Email: "admin@achat.local", Password: string(hashed), Role: models.RoleAdmin},
		},
	}

	handler := NewAuthHandler(store, testSecret)
	app := fiber.New()
	app.Post("/auth/login", handler.Login)
	app.Get("/auth/session", middleware.RequireAuth(testSecret), handler.Session)
	app.Post("/auth/logout", middleware.RequireAuth(testSecret), handler.Logout)
	return app, store
}

func TestLogin(t *testing.T) {
	testCases := []struct {
		name               string
		body               map[string]any
		expectedStatusCode int
	}{
		{
			name:               "Valid credentials",
			body:               map[string]any{"email": "admin@achat.local", "password": "password123"},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Email lookup is case insensitive",
			body:               map[string]any{"email": "Admin@Achat.Local", "password": "password123"},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Wrong password",
			body:               map[string]any{"email": "admin@achat.local", "password": "nope"},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Unknown email",
			body:               map[string]any{"email": "ghost@achat.local", "password": "password123"},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Missing fields",
			body:               map[string]any{"email": "admin@achat.local"},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newAuthApp(t)
			resp := postJSON(t, app, "/auth/login", tc.body)
			assert.Equal(t, tc.expectedStatusCode, resp.StatusCode)

			if tc.expectedStatusCode == http.StatusOK {
				var body authResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.Token)
				require.NotNil(t, body.User)
				assert.Equal(t, "admin", body.User.Username)
			}
		})
	}
}

func TestLoginNeverLeaksPasswordHash(t *testing.T) {
	app, _ := newAuthApp(t)
	resp := postJSON(t, app, "/auth/login", map[string]any{
		"email":    "admin@achat.local",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	user, ok := raw["user"].(map[string]any)
	require.True(t, ok)
	_, present := user["password"]
	assert.False(t, present)
}

func TestSession(t *testing.T) {
	app, _ := newAuthApp(t)

	t.Run("With valid token", func(t *testing.T) {
		token, err := middleware.GenerateToken(testSecret, 1, "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "admin@achat.local", body["user"].Email)
	})

	t.Run("Without token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/session", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("With garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("With token for a deleted user", func(t *testing.T) {
		token, err := middleware.GenerateToken(testSecret, 999, "employee")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	app, _ := newAuthApp(t)

	token, err := middleware.GenerateToken(testSecret, 1, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
