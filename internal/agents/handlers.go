package agents

import (
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/agents
func (h *Handlers) List(c *fiber.Ctx) error {
	agents, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.QueryFailed(c, "Could not load agents")
	}
	return response.Success(c, "Agents fetched", agents, nil)
}

// GET /api/v1/agents/:id
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid agent id", fiber.StatusBadRequest, nil)
	}
	a, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err == ErrAgentNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.QueryFailed(c, "Could not load agent")
	}
	return response.Success(c, "Agent fetched", a, nil)
}
