// Package checkout turns a tenant's fee-inclusive payment into a payment intent.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "leasefee/internal/errors"
	"leasefee/internal/services/fee"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
)

var centsPerUnit = decimal.NewFromInt(100)

// Request describes the transaction a tenant is paying for.
type Request struct {
	BasePrice       float64
	TransactionType fee.TransactionType
	Options         fee.Options
	ListingID       string
	ReceiptEmail    string
}

// Intent is the created payment intent together with the payment it covers.
type Intent struct {
	ID           string             `json:"id"`
	ClientSecret string             `json:"client_secret"`
	Status       string             `json:"status"`
	AmountCents  int64              `json:"amount_cents"`
	Currency     string             `json:"currency"`
	Payment      *fee.TenantPayment `json:"payment"`
}

type Service struct {
	calc     *fee.Calculator
	gateway  Gateway
	currency stripe.Currency
	log      zerolog.Logger
}

func NewService(calc *fee.Calculator, gateway Gateway, log zerolog.Logger) *Service {
	return &Service{
		calc:     calc,
		gateway:  gateway,
		currency: stripe.CurrencyUSD,
		log:      log.With().Str("component", "checkout").Logger(),
	}
}

// CreateTenantCheckout charges the tenant's total payment, fees included.
func (s *Service) CreateTenantCheckout(ctx context.Context, req Request) (*Intent, error) {
	payment, err := s.calc.CalculateTenantPayment(req.BasePrice, req.TransactionType, req.Options)
	if err != nil {
		if errors.Is(err, fee.ErrInvalidInput) {
			return nil, apperrors.ErrInvalidFeeInput.Wrap(err)
		}
		return nil, err
	}

	cents := ToCents(payment.TotalPayment)
	if cents <= 0 {
		return nil, apperrors.ErrInvalidFeeInput.Wrap(
			fmt.Errorf("payment total %.2f is not chargeable", payment.TotalPayment))
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(cents),
		Currency:           stripe.String(string(s.currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Description:        stripe.String(describe(req.TransactionType, payment)),
	}
	params.Context = ctx
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	params.AddMetadata("transaction_type", string(req.TransactionType))
	params.AddMetadata("base_price", decimal.NewFromFloat(payment.BasePrice).StringFixed(2))
	params.AddMetadata("tenant_fee", decimal.NewFromFloat(payment.TenantShare).StringFixed(2))
	params.AddMetadata("fee_structure_version", fee.FeeStructureVersion)
	if req.ListingID != "" {
		params.AddMetadata("listing_id", req.ListingID)
	}

	pi, err := s.gateway.CreatePaymentIntent(params)
	if err != nil {
		s.log.Error().Err(err).
			Str("transaction_type", string(req.TransactionType)).
			Int64("amount_cents", cents).
			Msg("payment intent creation failed")
		return nil, apperrors.ErrPaymentFailed.Wrap(providerError(err))
	}

	s.log.Info().
		Str("payment_intent", pi.ID).
		Str("transaction_type", string(req.TransactionType)).
		Int64("amount_cents", cents).
		Msg("payment intent created")

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  cents,
		Currency:     strings.ToUpper(string(s.currency)),
		Payment:      payment,
	}, nil
}

// ToCents converts a two-decimal dollar amount to integer cents.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(centsPerUnit).Round(0).IntPart()
}

func describe(t fee.TransactionType, p *fee.TenantPayment) string {
	policy, _ := t.Policy()
	return fmt.Sprintf("%s (fees %s)", policy.Description, fee.FormatCurrency(p.TenantShare, ""))
}

// providerError keeps the provider's message without its request metadata.
func providerError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return errors.New(se.Msg)
	}
	return err
}
