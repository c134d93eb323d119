package handlers

import (
	"errors"
	"testing"

	"leasefee/internal/models"
	"leasefee/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRecordApp(repo *mockRecordRepository) *fiber.App {
	h := NewRecordHandler(newQuoteService(repo))
	app := fiber.New()
	app.Use(withClaims(&models.UserClaims{UserID: 7, Role: models.RoleAdmin}))
	app.Post("/records", h.Create)
	app.Get("/records", h.List)
	app.Get("/records/:reference", h.Get)
	return app
}

func TestRecordHandler_Create(t *testing.T) {
	t.Run("stores record", func(t *testing.T) {
		repo := new(mockRecordRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.FeeRecord) bool {
			return r.CreatedBy == 7 && r.ListingID == "listing-1" && r.TotalFee == 15 && r.Reference != ""
		})).Return(nil)

		status, body := doJSON(t, newRecordApp(repo), "POST", "/records", map[string]interface{}{
			"base_price":       1000,
			"transaction_type": "lease_takeover",
			"listing_id":       "listing-1",
		})
		require.Equal(t, fiber.StatusCreated, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "lease_takeover", data["transaction_type"])
		assert.Equal(t, "1.5_split_model_v1", data["fee_structure_version"])
		repo.AssertExpectations(t)
	})

	t.Run("database failure", func(t *testing.T) {
		repo := new(mockRecordRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		status, body := doJSON(t, newRecordApp(repo), "POST", "/records", map[string]interface{}{
			"base_price":       1000,
			"transaction_type": "sublet",
		})
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "PERSISTENCE_FAILED", body["code"])
	})

	t.Run("requires claims", func(t *testing.T) {
		h := NewRecordHandler(newQuoteService(nil))
		app := fiber.New()
		app.Post("/records", h.Create)

		status, _ := doJSON(t, app, "POST", "/records", map[string]interface{}{
			"base_price":       1000,
			"transaction_type": "sublet",
		})
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})
}

func TestRecordHandler_Get(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("FindByReference", mock.Anything, "abc").Return(&models.FeeRecord{Reference: "abc", TotalFee: 15}, nil)
	repo.On("FindByReference", mock.Anything, "nope").Return(nil, repositories.ErrFeeRecordNotFound)
	app := newRecordApp(repo)

	status, body := doJSON(t, app, "GET", "/records/abc", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "abc", body["reference"])

	status, body = doJSON(t, app, "GET", "/records/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "FEE_RECORD_NOT_FOUND", body["code"])
}

func TestRecordHandler_List(t *testing.T) {
	repo := new(mockRecordRepository)
	repo.On("List", mock.Anything, models.FeeRecordFilter{TransactionType: "sublet"}, 5, 5).
		Return([]models.FeeRecord{{Reference: "a"}, {Reference: "b"}}, int64(12), nil)
	app := newRecordApp(repo)

	status, body := doJSON(t, app, "GET", "/records?type=sublet&page=2&limit=5", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 2)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, 12.0, pagination["total"])
	assert.Equal(t, 3.0, pagination["last_page"])

	status, body = doJSON(t, app, "GET", "/records?type=rent", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_FEE_INPUT", body["code"])
}
