package handlers

import (
	"errors"
	"testing"

	apperrors "leasefee/internal/errors"
	"leasefee/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(email, password string) (*models.User, string, string, error) {
	args := m.Called(email, password)
	u, _ := args.Get(0).(*models.User)
	return u, args.String(1), args.String(2), args.Error(3)
}

func (m *mockAuthService) RefreshTokens(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) Logout(userID uint) error {
	return m.Called(userID).Error(0)
}

func (m *mockAuthService) ParseToken(token string) (*models.UserClaims, error) {
	args := m.Called(token)
	c, _ := args.Get(0).(*models.UserClaims)
	return c, args.Error(1)
}

func (m *mockAuthService) GetUserTokenVersion(userID uint) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(mockAuthService)
	user := &models.User{Model: gorm.Model{ID: 1}, Email: "admin@example.com", Role: models.RoleAdmin}
	svc.On("Login", "admin@example.com", "Sup3r$ecret").Return(user, "access", "refresh", nil)
	svc.On("Login", "admin@example.com", "wrong").Return(nil, "", "", apperrors.ErrInvalidCredentials)
	svc.On("Login", "broken@example.com", "x").Return(nil, "", "", errors.New("db down"))

	app := fiber.New()
	app.Post("/login", NewAuthHandler(svc, zerolog.Nop()).Login)

	status, body := doJSON(t, app, "POST", "/login", map[string]string{
		"email": "admin@example.com", "password": "Sup3r$ecret",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "access", body["access_token"])
	assert.Equal(t, "refresh", body["refresh_token"])

	status, _ = doJSON(t, app, "POST", "/login", map[string]string{
		"email": "admin@example.com", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", "/login", map[string]string{
		"email": "broken@example.com", "password": "x",
	})
	assert.Equal(t, fiber.StatusInternalServerError, status)

	status, body = doJSON(t, app, "POST", "/login", map[string]string{"email": "nope"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("RefreshTokens", "good").Return("new-access", "new-refresh", nil)
	svc.On("RefreshTokens", "bad").Return("", "", apperrors.ErrInvalidToken)
	svc.On("Logout", uint(3)).Return(nil)

	h := NewAuthHandler(svc, zerolog.Nop())
	app := fiber.New()
	app.Post("/refresh", h.RefreshToken)
	app.Post("/logout", withClaims(&models.UserClaims{UserID: 3}), h.Logout)
	app.Post("/logout-anon", h.Logout)

	status, body := doJSON(t, app, "POST", "/refresh", map[string]string{"refresh_token": "good"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "new-access", body["access_token"])

	status, _ = doJSON(t, app, "POST", "/refresh", map[string]string{"refresh_token": "bad"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", "/refresh", map[string]string{})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, app, "POST", "/logout", nil)
	assert.Equal(t, fiber.StatusOK, status)
	svc.AssertCalled(t, "Logout", uint(3))

	status, _ = doJSON(t, app, "POST", "/logout-anon", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
