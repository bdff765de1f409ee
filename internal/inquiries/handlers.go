package inquiries

import (
	"encoding/json"

	"karoo-backend/internal/middleware"
	"karoo-backend/internal/pkg/response"
	"karoo-backend/internal/properties"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createBody struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

// POST /api/v1/inquiries, open to anonymous and authenticated callers.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		return response.Error(c, "Invalid property_id", fiber.StatusBadRequest, nil)
	}

	in := CreateInquiryInput{
		PropertyID: propertyID,
		Name:       body.Name,
		Email:      body.Email,
		Phone:      body.Phone,
		Message:    body.Message,
	}
	if callerID, err := uuid.Parse(middleware.GetUserID(c)); err == nil {
		in.UserID = &callerID
	}

	inq, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch err {
		case ErrMissingFields, ErrInvalidEmail:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case properties.ErrPropertyNotFound:
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to create inquiry", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Inquiry sent", inq, nil)
}

// GET /api/v1/inquiries/agent, agent's own inbox.
func (h *Handlers) ForAgent(c *fiber.Ctx) error {
	agentID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	out, err := h.Service.GetForAgent(c.Context(), agentID)
	if err != nil {
		return response.QueryFailed(c, "Could not load inquiries")
	}
	return response.Success(c, "Inquiries fetched", out, nil)
}

// PATCH /api/v1/inquiries/:id/respond
func (h *Handlers) Respond(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid inquiry id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.Message == "" {
		return response.Error(c, "Response message is required", fiber.StatusBadRequest, nil)
	}
	inq, err := h.Service.Respond(c.Context(), id, middleware.GetUserID(c), body.Message)
	if err != nil {
		if err == ErrInquiryNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to respond", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Response recorded", inq, nil)
}

// PATCH /api/v1/inquiries/:id/status
func (h *Handlers) SetStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid inquiry id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	inq, err := h.Service.SetStatus(c.Context(), id, body.Status)
	if err != nil {
		switch err {
		case ErrInquiryNotFound:
			return response.NotFound(c, err.Error())
		case ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to update inquiry", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Inquiry updated", inq, nil)
}
