// Package routes wires handlers and middleware into the Fiber application.
package routes

import (
	"leasefee/internal/handlers"
	"leasefee/internal/middleware"
	"leasefee/internal/models"
	"leasefee/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Fee      *handlers.FeeHandler
	Records  *handlers.RecordHandler
	Checkout *handlers.CheckoutHandler
	Auth     *handlers.AuthHandler
	Health   *handlers.HealthHandler
}

// SetupRoutes mounts the public fee API and the authenticated record and
// checkout routes.
func SetupRoutes(app *fiber.App, h Handlers, authService auth.Service, log zerolog.Logger) {
	if h.Health != nil {
		app.Get("/health", h.Health.HealthCheck)
	}

	api := app.Group("/api")
	api.Post("/login", h.Auth.Login)
	api.Post("/refresh", h.Auth.RefreshToken)

	fees := api.Group("/fees")
	fees.Post("/calculate", h.Fee.Calculate)
	fees.Post("/total", h.Fee.Total)
	fees.Post("/validate", h.Fee.Validate)
	fees.Post("/landlord-receipt", h.Fee.LandlordReceipt)
	fees.Post("/tenant-payment", h.Fee.TenantPayment)
	fees.Post("/compare", h.Fee.Compare)
	fees.Post("/batch", h.Fee.Batch)
	fees.Post("/display", h.Fee.Display)
	fees.Get("/constants", h.Fee.Constants)
	fees.Get("/types", h.Fee.Types)

	requireAuth := middleware.NewAuthMiddleware(authService, log).Handler
	api.Post("/logout", requireAuth, h.Auth.Logout)

	records := api.Group("/fees/records", requireAuth)
	records.Post("/", middleware.HasPermission(models.PermissionRecordWrite), h.Records.Create)
	records.Get("/", middleware.HasPermission(models.PermissionRecordRead), h.Records.List)
	records.Get("/:reference", middleware.HasPermission(models.PermissionRecordRead), h.Records.Get)

	api.Post("/fees/checkout", requireAuth, middleware.HasPermission(models.PermissionCheckoutWrite), h.Checkout.Create)

	admin := api.Group("/admin", requireAuth, middleware.AdminOnly)
	if h.Health != nil {
		admin.Get("/cache-stats", h.Health.CacheStats)
	}
}
