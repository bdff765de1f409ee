package seed

import (
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/admin/seed
func (h *Handlers) Seed(c *fiber.Ctx) error {
	res := h.Service.SeedAll(c.Context())
	if len(res.Errors) > 0 {
		return response.Success(c, "Seed completed with errors", res, nil)
	}
	return response.Success(c, "Seed completed", res, nil)
}

// POST /api/v1/admin/clear
func (h *Handlers) Clear(c *fiber.Ctx) error {
	res := h.Service.ClearAll(c.Context())
	if len(res.Errors) > 0 {
		return response.Success(c, "Clear completed with errors", res, nil)
	}
	return response.Success(c, "Clear completed", res, nil)
}
