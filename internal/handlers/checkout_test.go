package handlers

import (
	"testing"

	"leasefee/internal/services/checkout"
	"leasefee/internal/services/fee"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v72"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePaymentIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	args := m.Called(params)
	pi, _ := args.Get(0).(*stripe.PaymentIntent)
	return pi, args.Error(1)
}

func newCheckoutApp(gw *mockGateway) *fiber.App {
	svc := checkout.NewService(fee.NewCalculator(fee.DefaultConstants()), gw, zerolog.Nop())
	app := fiber.New()
	app.Post("/checkout", NewCheckoutHandler(svc).Create)
	return app
}

func TestCheckoutHandler_Create(t *testing.T) {
	t.Run("creates intent", func(t *testing.T) {
		gw := new(mockGateway)
		gw.On("CreatePaymentIntent", mock.MatchedBy(func(p *stripe.PaymentIntentParams) bool {
			return *p.Amount == 100750
		})).Return(&stripe.PaymentIntent{ID: "pi_1", ClientSecret: "secret", Status: "requires_payment_method"}, nil)

		status, body := doJSON(t, newCheckoutApp(gw), "POST", "/checkout", map[string]interface{}{
			"base_price":       1000,
			"transaction_type": "sublet",
		})
		require.Equal(t, fiber.StatusCreated, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "pi_1", data["id"])
		assert.Equal(t, 100750.0, data["amount_cents"])
	})

	t.Run("bad receipt email", func(t *testing.T) {
		status, body := doJSON(t, newCheckoutApp(new(mockGateway)), "POST", "/checkout", map[string]interface{}{
			"base_price":       1000,
			"transaction_type": "sublet",
			"receipt_email":    "not-an-email",
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		fields := body["fields"].(map[string]interface{})
		assert.Equal(t, "must be a valid email address", fields["receipt_email"])
	})

	t.Run("provider failure", func(t *testing.T) {
		gw := new(mockGateway)
		gw.On("CreatePaymentIntent", mock.Anything).Return(nil, &stripe.Error{Msg: "declined"})

		status, body := doJSON(t, newCheckoutApp(gw), "POST", "/checkout", map[string]interface{}{
			"base_price":       1000,
			"transaction_type": "sublet",
		})
		assert.Equal(t, fiber.StatusBadGateway, status)
		assert.Equal(t, "PAYMENT_FAILED", body["code"])
	})
}
