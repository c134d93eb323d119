// Package main starts the fee API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"leasefee/internal/config"
	"leasefee/internal/handlers"
	"leasefee/internal/logger"
	"leasefee/internal/repositories"
	"leasefee/internal/repositories/cache"
	"leasefee/internal/routes"
	"leasefee/internal/services/auth"
	"leasefee/internal/services/checkout"
	"leasefee/internal/services/fee"
	"leasefee/internal/services/quote"
	"leasefee/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadEnv()

	log := logger.New(config.Logger())
	logger.SetGlobalLogger(log)

	db, err := repositories.InitDB(repositories.DBConfigFromEnv(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise database")
	}
	defer func() {
		if err := repositories.CloseDB(db); err != nil {
			log.Warn().Err(err).Msg("failed to close database connection")
		}
	}()

	cacheSvc := cache.NewCacheService(
		cache.NewRedisClient(cache.RedisConfigFromEnv()),
		config.GetDurationEnv("FEE_COMPARE_CACHE_TTL", 10*time.Minute),
	)
	defer func() {
		if err := cacheSvc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis connection")
		}
	}()

	var compareCache quote.Cache
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := cacheSvc.HealthCheck(pingCtx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, comparisons will not be cached")
	} else {
		compareCache = cacheSvc
		log.Info().Msg("redis connected")
	}
	cancel()

	constants := config.FeeConstants()
	calc := fee.NewCalculator(constants)
	log.Info().
		Float64("platform_rate", constants.PlatformRate).
		Float64("landlord_rate", constants.LandlordRate).
		Float64("min_fee_amount", constants.MinFeeAmount).
		Str("fee_structure_version", fee.FeeStructureVersion).
		Msg("fee engine configured")

	jwtSecret := config.GetEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	stripeKey := config.GetEnv("STRIPE_SECRET_KEY", "")
	if stripeKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, checkout requests will fail")
	}

	quotes := quote.NewService(calc, repositories.NewFeeRecordRepository(db), compareCache, log)
	authService := auth.NewService(repositories.NewUserRepository(db), utils.NewTokenIssuer(jwtSecret), log)
	checkoutService := checkout.NewService(calc, checkout.NewStripeGateway(stripeKey), log)

	app := fiber.New(fiber.Config{
		AppName:      "leasefee",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))
	app.Use("/api/fees/batch", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("BATCH_RATE_LIMIT", 30),
		Expiration: 1 * time.Minute,
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Fee:      handlers.NewFeeHandler(quotes),
		Records:  handlers.NewRecordHandler(quotes),
		Checkout: handlers.NewCheckoutHandler(checkoutService),
		Auth:     handlers.NewAuthHandler(authService, log),
		Health:   handlers.NewHealthHandler(db, cacheSvc),
	}, authService, log)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	addr := ":" + strings.TrimPrefix(config.GetEnv("PORT", "3000"), ":")
	log.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
