package health

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	Redis *redis.Client
	DB    *gorm.DB
}

func (h *Handlers) pinger() DBPinger {
	if h.DB == nil {
		return nil
	}
	sqlDB, err := h.DB.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}

// GET /health
func (h *Handlers) Summary(c *fiber.Ctx) error {
	res := Collect(c.Context(), h.Redis, h.pinger())
	status := fiber.StatusOK
	if res.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status": res.Status,
		"uptime": res.Runtime.UptimeSeconds,
	})
}

// GET /health/json
func (h *Handlers) Full(c *fiber.Ctx) error {
	res := Collect(c.Context(), h.Redis, h.pinger())
	return c.JSON(res)
}
