package handlers

import (
	"leasefee/internal/services/checkout"
	"leasefee/internal/services/fee"
	"leasefee/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc}
}

type checkoutRequest struct {
	BasePrice       *float64    `json:"base_price" validate:"required"`
	TransactionType string      `json:"transaction_type" validate:"required"`
	Options         fee.Options `json:"options"`
	ListingID       string      `json:"listing_id" validate:"max=100"`
	ReceiptEmail    string      `json:"receipt_email" validate:"omitempty,email"`
}

// Create starts a payment for the tenant's fee-inclusive total.
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var req checkoutRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	intent, err := h.checkout.CreateTenantCheckout(c.UserContext(), checkout.Request{
		BasePrice:       *req.BasePrice,
		TransactionType: fee.TransactionType(req.TransactionType),
		Options:         req.Options,
		ListingID:       req.ListingID,
		ReceiptEmail:    req.ReceiptEmail,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Created(c, "Payment intent created", intent)
}
