package reviews

import (
	"encoding/json"

	"karoo-backend/internal/middleware"
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createBody struct {
	PropertyID string `json:"property_id"`
	AgentID    string `json:"agent_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// POST /api/v1/reviews, authenticated users.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid property_id", fiber.StatusBadRequest, nil)
	}
	agentID, err := uuid.Parse(body.AgentID)
	if err != nil {
		return response.Error(c, "Invalid agent_id", fiber.StatusBadRequest, nil)
	}

	in := CreateReviewInput{
		PropertyID: propertyID,
		AgentID:    agentID,
		Rating:     body.Rating,
		Comment:    body.Comment,
	}
	if callerID, err := uuid.Parse(middleware.GetUserID(c)); err == nil {
		in.UserID = &callerID
	}

	r, err := h.Service.Create(c.Context(), in)
	if err != nil {
		if err == ErrInvalidRating {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to create review", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Review submitted for approval", r, nil)
}

// GET /api/v1/reviews/property/:id
func (h *Handlers) ForProperty(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	reviews, err := h.Service.GetForProperty(c.Context(), id)
	if err != nil {
		return response.QueryFailed(c, "Could not load reviews")
	}
	return response.Success(c, "Reviews fetched", reviews, nil)
}

// PATCH /api/v1/reviews/:id/approve, admin only (route-level permission).
func (h *Handlers) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid review id", fiber.StatusBadRequest, nil)
	}
	r, err := h.Service.Approve(c.Context(), id)
	if err != nil {
		if err == ErrReviewNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to approve review", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Review approved", r, nil)
}
