package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sididaher/achat-app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserStore struct {
	users []models.User

	created   *models.User
	updated   *models.User
	createErr error
}

func (m *mockUserStore) GetAll() ([]models.User, error) {
	return m.users, nil
}

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserStore) Create(user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserStore) Update(user *models.User) error {
	m.updated = user
	return nil
}

func (m *mockUserStore) Delete(id uint) error {
	return nil
}

func newUserApp(store UserStore) *fiber.App {
	app := fiber.New()
	handler := NewUserHandler(store)
	app.Get("/users", handler.List)
	app.Post("/users", handler.Create)
	app.Put("/users/:id", handler.Update)
	app.Delete("/users/:id", handler.Delete)
	return app
}

func TestCreateUser(t *testing.T) {
	testCases := []struct {
		name               string
		body               map[string]any
		createErr          error
		expectedStatusCode int
		expectedError      string
	}{
		{
			name: "Valid employee",
			body: map[string]any{
				"username": "karim",
				"email":    "Karim@Achat.Local",
				"password": "password123",
				"role":     "employee",
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name: "Invalid role",
			body: map[string]any{
				"username": "karim",
				"email":    "karim@achat.local",
				"password": "password123",
				"role":     "superuser",
			},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "role must be admin or employee",
		},
		{
			name: "Missing password",
			body: map[string]any{
				"username": "karim",
				"email":    "karim@achat.local",
				"role":     "employee",
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "Duplicate email",
			body: map[string]any{
				"username": "karim",
				"email":    "karim@achat.local",
				"password": "password123",
				"role":     "employee",
			},
			createErr:          errors.New("duplicate key value violates unique constraint"),
			expectedStatusCode: http.StatusConflict,
			expectedError:      "email already exists",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockUserStore{createErr: tc.createErr}
			app := newUserApp(store)

			resp := postJSON(t, app, "/users", tc.body)
			assert.Equal(t, tc.expectedStatusCode, resp.StatusCode)

			if tc.expectedError != "" {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
				assert.Equal(t, tc.expectedError, errResp["error"])
			}

			if tc.expectedStatusCode == http.StatusCreated {
				require.NotNil(t, store.created)
				// Stored lowercase, hashed, never plaintext
				assert.Equal(t, "karim@achat.local", store.created.Email)
				assert.NotEqual(t, "password123", store.created.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword(
					[]byte(store.created.Password), []byte("password123")))
			}
		})
	}
}

func TestUpdateUserKeepsPasswordWhenOmitted(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("original"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockUserStore{
		users: []models.User{
			{ID: 1, Username: "admin", Email: "admin@achat.local", Password: string(hashed), Role: models.RoleAdmin},
		},
	}
	app := newUserApp(store)

	resp := postJSONMethod(t, app, "PUT", "/users/1", map[string]any{
		"username": "admin2",
		"email":    "admin@achat.local",
		"role":     "admin",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, store.updated)
	assert.Equal(t, "admin2", store.updated.Username)
	assert.Equal(t, string(hashed), store.updated.Password)
}

func TestListUsersFilter(t *testing.T) {
	store := &mockUserStore{
		users: []models.User{
			{ID: 1, Username: "admin", Email: "admin@achat.local", Role: models.RoleAdmin},
			{ID: 2, Username: "karim", Email: "karim@achat.local", Role: models.RoleEmployee},
		},
	}
	app := newUserApp(store)

	req := httptest.NewRequest("GET", "/users?q=karim", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var list []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "karim", list[0].Username)
}
