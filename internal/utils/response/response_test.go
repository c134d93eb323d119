package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	apperrors "leasefee/internal/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", apperrors.ErrInvalidFeeInput.Wrap(errors.New("base price cannot be negative")), fiber.StatusBadRequest, "INVALID_FEE_INPUT"},
		{"empty batch", apperrors.ErrEmptyBatch, fiber.StatusBadRequest, "EMPTY_BATCH"},
		{"not found", apperrors.ErrRecordNotFound.Wrap(errors.New("missing")), fiber.StatusNotFound, "FEE_RECORD_NOT_FOUND"},
		{"credentials", apperrors.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"payment", apperrors.ErrPaymentFailed.Wrap(errors.New("card declined")), fiber.StatusBadGateway, "PAYMENT_FAILED"},
		{"persistence", apperrors.ErrPersistence.Wrap(errors.New("db down")), fiber.StatusInternalServerError, "PERSISTENCE_FAILED"},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return DomainError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.wantCode == "" {
				assert.Equal(t, "internal server error", body["error"])
				assert.NotContains(t, body, "code")
				return
			}
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}
