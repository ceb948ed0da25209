package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillswap/internal/models"
	"skillswap/internal/service"
	"skillswap/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestGetUserProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userService: service.NewUserService(mockRepo)}

	app.Get("/users/:id", s.GetUserProfile)

	tests := []struct {
		name           string
		userIDParam    string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Success",
			userIDParam: "1",
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "alex"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			userIDParam:    "abc",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Not Found",
			userIDParam: "99",
			mockSetup: func() {
				mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userIDParam, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetCurrentUser_HidesPassword(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{userService: service.NewUserService(mockRepo)}

	// Middleware to set userID in Locals
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/users/current", s.GetCurrentUser)

	mockRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "me", Password: "$2a$10$hash"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "me", body["username"])
	assert.NotContains(t, body, "password")
	mockRepo.AssertExpectations(t)
}

func TestUpdateCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "elena")
	env.register(t, "david")

	resp := env.do(t, http.MethodPatch, "/api/users/current", token, map[string]string{
		"bio":    "Data scientist",
		"avatar": "https://example.com/elena.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	decode(t, resp, &user)
	require.NotNil(t, user.Bio)
	assert.Equal(t, "Data scientist", *user.Bio)

	resp = env.do(t, http.MethodPatch, "/api/users/current", token, map[string]string{"bio": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user = models.User{}
	decode(t, resp, &user)
	assert.Nil(t, user.Bio)
	require.NotNil(t, user.Avatar, "untouched fields are kept")

	resp = env.do(t, http.MethodPatch, "/api/users/current", token, map[string]string{"username": "david"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/users/current", token, map[string]string{"avatar": "ftp://nope"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "james")

	resp := env.upload(t, "/api/users/current/avatar", token, "avatar", "me.png", testutil.TinyPNG(t, 40, 30))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	decode(t, resp, &user)
	require.NotNil(t, user.Avatar)
	assert.True(t, strings.HasPrefix(*user.Avatar, "/uploads/avatars/"))
	assert.True(t, strings.HasSuffix(*user.Avatar, ".webp"))

	key := strings.TrimPrefix(*user.Avatar, "/uploads/")
	_, stored := env.store.Get(key)
	assert.True(t, stored)

	resp = env.upload(t, "/api/users/current/avatar", token, "avatar", "notes.txt", []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "zed")
	env.register(t, "amy")

	resp := env.do(t, http.MethodGet, "/api/users?limit=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decode(t, resp, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "amy", users[0].Username, "ordered by username")
}
