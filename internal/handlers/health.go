package handlers

import (
	"context"
	"time"

	"leasefee/internal/repositories/cache"
	"leasefee/internal/services/fee"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	db       *gorm.DB
	cacheSvc *cache.CacheService
}

func NewHealthHandler(db *gorm.DB, cacheSvc *cache.CacheService) *HealthHandler {
	return &HealthHandler{db: db, cacheSvc: cacheSvc}
}

// HealthCheck reports dependency status. A down dependency degrades the
// service but the fee engine itself stays available.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	services := fiber.Map{
		"database": h.databaseStatus(ctx),
		"redis":    h.redisStatus(ctx),
	}

	status := "ok"
	for _, s := range services {
		if s != "connected" {
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":                status,
		"fee_structure_version": fee.FeeStructureVersion,
		"services":              services,
	})
}

// CacheStats reports cache hit rates and redis pool usage.
func (h *HealthHandler) CacheStats(c *fiber.Ctx) error {
	if h.cacheSvc == nil {
		return c.JSON(fiber.Map{"cache_stats": nil})
	}

	poolStats := h.cacheSvc.PoolStats()
	return c.JSON(fiber.Map{
		"cache_stats": h.cacheSvc.Stats(),
		"pool_stats": fiber.Map{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"timeouts":    poolStats.Timeouts,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
			"stale_conns": poolStats.StaleConns,
		},
	})
}

func (h *HealthHandler) databaseStatus(ctx context.Context) string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "disconnected"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}

func (h *HealthHandler) redisStatus(ctx context.Context) string {
	if h.cacheSvc == nil {
		return "not configured"
	}
	if err := h.cacheSvc.HealthCheck(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}
