package savedsearches

import (
	"encoding/json"

	"karoo-backend/internal/catalog"
	"karoo-backend/internal/middleware"
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

func callerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(middleware.GetUserID(c))
	return id, err == nil
}

type createBody struct {
	Name      string         `json:"name"`
	Filters   catalog.Filter `json:"filters"`
	Frequency string         `json:"frequency"`
}

// POST /api/v1/saved-searches
func (h *Handlers) Create(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var body createBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Name == "" {
		return response.Error(c, "Missing required field: name", fiber.StatusBadRequest, nil)
	}
	ss, err := h.Service.Create(c.Context(), CreateInput{
		UserID:    userID,
		Name:      body.Name,
		Filters:   body.Filters,
		Frequency: body.Frequency,
	})
	if err != nil {
		if err == ErrInvalidFrequency {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to save search", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Search saved", ss, nil)
}

// GET /api/v1/saved-searches
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	out, err := h.Service.GetForUser(c.Context(), userID)
	if err != nil {
		return response.QueryFailed(c, "Could not load saved searches")
	}
	return response.Success(c, "Saved searches fetched", out, nil)
}

type updateBody struct {
	Name      *string         `json:"name"`
	Filters   *catalog.Filter `json:"filters"`
	Frequency *string         `json:"frequency"`
}

// PUT /api/v1/saved-searches/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	searchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid search id", fiber.StatusBadRequest, nil)
	}
	var body updateBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	ss, err := h.Service.Update(c.Context(), searchID, userID, UpdateInput{
		Name:      body.Name,
		Filters:   body.Filters,
		Frequency: body.Frequency,
	})
	if err != nil {
		switch err {
		case ErrSearchNotFound:
			return response.NotFound(c, err.Error())
		case ErrNotSearchOwner:
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case ErrInvalidFrequency:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to update saved search", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Saved search updated", ss, nil)
}

// DELETE /api/v1/saved-searches/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	searchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid search id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), searchID, userID); err != nil {
		switch err {
		case ErrSearchNotFound:
			return response.NotFound(c, err.Error())
		case ErrNotSearchOwner:
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		}
		return response.Error(c, "Failed to delete saved search", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Saved search deleted", nil, nil)
}
