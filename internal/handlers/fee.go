package handlers

import (
	"encoding/json"
	"math"

	"leasefee/internal/services/fee"
	"leasefee/internal/services/quote"
	"leasefee/internal/utils/response"
	"leasefee/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// FeeHandler serves the public fee calculation endpoints.
type FeeHandler struct {
	quotes *quote.Service
}

func NewFeeHandler(quotes *quote.Service) *FeeHandler {
	return &FeeHandler{quotes: quotes}
}

type calculationRequest struct {
	BasePrice       *float64    `json:"base_price" validate:"required"`
	TransactionType string      `json:"transaction_type" validate:"required"`
	Options         fee.Options `json:"options"`
}

type compareRequest struct {
	BasePrice *float64    `json:"base_price" validate:"required"`
	Options   fee.Options `json:"options"`
}

type batchItemRequest struct {
	BasePrice       *float64    `json:"base_price" validate:"required"`
	TransactionType string      `json:"transaction_type" validate:"required"`
	Options         fee.Options `json:"options"`
}

type batchRequest struct {
	Items []batchItemRequest `json:"items" validate:"max=500,dive"`
}

// parseBody decodes and validates the request body into dst. It writes the
// error response itself and reports whether the handler should continue.
func parseBody(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, response.BadRequest(c, "Invalid request body")
	}
	v := validation.New()
	v.Struct(dst)
	if !v.Valid() {
		return false, response.ValidationError(c, v.Errors)
	}
	return true, nil
}

// Calculate returns the full fee breakdown.
func (h *FeeHandler) Calculate(c *fiber.Ctx) error {
	var req calculationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	b, err := h.quotes.Breakdown(*req.BasePrice, fee.TransactionType(req.TransactionType), req.Options)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(b)
}

func (h *FeeHandler) Total(c *fiber.Ctx) error {
	var req calculationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	total, err := h.quotes.TotalPrice(*req.BasePrice, fee.TransactionType(req.TransactionType), req.Options)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"total_price": total})
}

// Validate answers 200 for any well-formed JSON body; problems are reported in the result.
func (h *FeeHandler) Validate(c *fiber.Ctx) error {
	var req struct {
		BasePrice       json.RawMessage `json:"base_price"`
		TransactionType string          `json:"transaction_type"`
		Options         fee.Options     `json:"options"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return c.JSON(h.quotes.Validate(decodePrice(req.BasePrice), fee.TransactionType(req.TransactionType), req.Options))
}

// decodePrice maps an absent or null price to nil and anything that is not a
// JSON number to NaN, so the validator reports it instead of the body parser.
func decodePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		v = math.NaN()
	}
	return &v
}

func (h *FeeHandler) LandlordReceipt(c *fiber.Ctx) error {
	var req calculationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	r, err := h.quotes.LandlordReceipt(*req.BasePrice, fee.TransactionType(req.TransactionType), req.Options)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(r)
}

func (h *FeeHandler) TenantPayment(c *fiber.Ctx) error {
	var req calculationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	p, err := h.quotes.TenantPayment(*req.BasePrice, fee.TransactionType(req.TransactionType), req.Options)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(p)
}

func (h *FeeHandler) Compare(c *fiber.Ctx) error {
	var req compareRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	rows, err := h.quotes.Compare(c.UserContext(), *req.BasePrice, req.Options)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(fiber.Map{"comparisons": rows})
}

func (h *FeeHandler) Batch(c *fiber.Ctx) error {
	var req batchRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	items := make([]fee.BatchItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = fee.BatchItem{
			BasePrice:       *it.BasePrice,
			TransactionType: fee.TransactionType(it.TransactionType),
			Options:         it.Options,
		}
	}

	res, err := h.quotes.Batch(items)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(res)
}

// Display returns the breakdown with every figure formatted for presentation.
func (h *FeeHandler) Display(c *fiber.Ctx) error {
	var req calculationRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	d, err := h.quotes.Display(*req.BasePrice, fee.TransactionType(req.TransactionType), req.Options)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(d)
}

func (h *FeeHandler) Constants(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"fee_structure_version": fee.FeeStructureVersion,
		"constants":             h.quotes.Calculator().Constants(),
	})
}

func (h *FeeHandler) Types(c *fiber.Ctx) error {
	type typeInfo struct {
		Type fee.TransactionType `json:"type"`
		fee.TypePolicy
	}

	types := make([]typeInfo, 0, len(fee.SupportedTransactionTypes))
	for _, t := range fee.SupportedTransactionTypes {
		policy, _ := t.Policy()
		types = append(types, typeInfo{Type: t, TypePolicy: policy})
	}
	return c.JSON(fiber.Map{"transaction_types": types})
}
