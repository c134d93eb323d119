package handlers

import (
	"leasefee/internal/models"
	"leasefee/internal/services/fee"
	"leasefee/internal/services/quote"
	"leasefee/internal/utils"
	"leasefee/internal/utils/response"
	"leasefee/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const defaultRecordPageSize = 20

// RecordHandler persists and looks up calculated fee records.
type RecordHandler struct {
	quotes *quote.Service
}

func NewRecordHandler(quotes *quote.Service) *RecordHandler {
	return &RecordHandler{quotes: quotes}
}

type recordRequest struct {
	BasePrice       *float64    `json:"base_price" validate:"required"`
	TransactionType string      `json:"transaction_type" validate:"required"`
	Options         fee.Options `json:"options"`
	ListingID       string      `json:"listing_id" validate:"max=100"`
}

func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var req recordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	record, err := h.quotes.Record(c.UserContext(), quote.RecordInput{
		BasePrice:       *req.BasePrice,
		TransactionType: fee.TransactionType(req.TransactionType),
		Options:         req.Options,
		ListingID:       req.ListingID,
		CreatedBy:       claims.UserID,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Created(c, "Fee record stored", record)
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	record, err := h.quotes.GetRecord(c.UserContext(), c.Params("reference"))
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(record)
}

// List supports ?type=, ?listing_id=, ?page= and ?limit=.
func (h *RecordHandler) List(c *fiber.Ctx) error {
	p := utils.GetPagination(c, defaultRecordPageSize, validation.MaxPageSize)
	filter := models.FeeRecordFilter{
		TransactionType: c.Query("type"),
		ListingID:       c.Query("listing_id"),
	}

	records, total, err := h.quotes.ListRecords(c.UserContext(), filter, p.Offset, p.Limit)
	if err != nil {
		return response.DomainError(c, err)
	}
	p.SetTotal(total)
	return c.JSON(utils.NewPaginatedResponse(records, p))
}
