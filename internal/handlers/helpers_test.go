package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasefee/internal/models"
	"leasefee/internal/services/fee"
	"leasefee/internal/services/quote"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecordRepository struct {
	mock.Mock
}

func (m *mockRecordRepository) Create(ctx context.Context, record *models.FeeRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockRecordRepository) FindByReference(ctx context.Context, reference string) (*models.FeeRecord, error) {
	args := m.Called(ctx, reference)
	r, _ := args.Get(0).(*models.FeeRecord)
	return r, args.Error(1)
}

func (m *mockRecordRepository) List(ctx context.Context, filter models.FeeRecordFilter, offset, limit int) ([]models.FeeRecord, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	records, _ := args.Get(0).([]models.FeeRecord)
	return records, args.Get(1).(int64), args.Error(2)
}

func newQuoteService(repo *mockRecordRepository) *quote.Service {
	if repo == nil {
		repo = new(mockRecordRepository)
	}
	return quote.NewService(fee.NewCalculator(fee.DefaultConstants()), repo, nil, zerolog.Nop())
}

// withClaims stands in for the auth middleware.
func withClaims(claims *models.UserClaims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("claims", claims)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}
