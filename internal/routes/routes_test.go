package routes

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"leasefee/internal/handlers"
	"leasefee/internal/models"
	"leasefee/internal/repositories"
	"leasefee/internal/services/auth"
	"leasefee/internal/services/checkout"
	"leasefee/internal/services/fee"
	"leasefee/internal/services/quote"
	"leasefee/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
)

type stubUsers struct {
	user *models.User
}

func (s *stubUsers) Create(*models.User) error { return nil }
func (s *stubUsers) Update(*models.User) error { return nil }
func (s *stubUsers) GetByEmail(string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (s *stubUsers) IncrementTokenVersion(uint) error { return nil }
func (s *stubUsers) GetByID(id uint) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repositories.ErrUserNotFound
}

type noGateway struct{}

func (noGateway) CreatePaymentIntent(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return &stripe.PaymentIntent{ID: "pi_test"}, nil
}

func newTestApp(t *testing.T, users *stubUsers, tokens *utils.TokenIssuer) *fiber.App {
	t.Helper()
	calc := fee.NewCalculator(fee.DefaultConstants())
	quotes := quote.NewService(calc, repositories.NewFeeRecordRepository(nil), nil, zerolog.Nop())
	authService := auth.NewService(users, tokens, zerolog.Nop())

	app := fiber.New()
	SetupRoutes(app, Handlers{
		Fee:      handlers.NewFeeHandler(quotes),
		Records:  handlers.NewRecordHandler(quotes),
		Checkout: handlers.NewCheckoutHandler(checkout.NewService(calc, noGateway{}, zerolog.Nop())),
		Auth:     handlers.NewAuthHandler(authService, zerolog.Nop()),
	}, authService, zerolog.Nop())
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestSetupRoutes(t *testing.T) {
	tokens := utils.NewTokenIssuer("route-secret")
	analyst := &models.User{Role: models.RoleAnalyst, Status: models.UserStatusActive, TokenVersion: 1}
	analyst.ID = 9
	app := newTestApp(t, &stubUsers{user: analyst}, tokens)

	access, _, err := tokens.GenerateTokens(&models.UserClaims{
		UserID:       analyst.ID,
		Role:         analyst.Role,
		Permissions:  models.GetDefaultPermissions(analyst.Role),
		TokenVersion: analyst.TokenVersion,
	})
	require.NoError(t, err)

	calc := `{"base_price":1000,"transaction_type":"date_change"}`

	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/api/fees/calculate", "", calc))
	assert.Equal(t, fiber.StatusOK, request(t, app, "GET", "/api/fees/types", "", ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "POST", "/api/fees/records", "", calc))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "POST", "/api/fees/checkout", "", calc))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "POST", "/api/fees/records", access, calc))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "POST", "/api/fees/checkout", access, calc))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "GET", "/api/admin/cache-stats", access, ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "POST", "/api/login", "", `{"email":"x@example.com","password":"y"}`))
}
