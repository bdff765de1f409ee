package users

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

func callerID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(middleware.GetUserID(c))
	return id, err == nil
}

// GET /api/v1/users/profile
func (h *Handlers) Profile(c *fiber.Ctx) error {
	id, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	u, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err == ErrUserNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to fetch profile", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Profile fetched", u, nil)
}

// PUT /api/v1/users/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	id, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.UpdateProfile(c.Context(), id, fields)
	if err != nil {
		if err == ErrUserNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	return response.Success(c, "Profile updated", u, nil)
}

// POST /api/v1/users/saved-properties/:id
func (h *Handlers) SaveProperty(c *fiber.Ctx) error {
	return h.setOp(c, func(userID, propID uuid.UUID) (interface{}, error) {
		return h.Service.SaveProperty(c.Context(), userID, propID)
	}, "Property saved")
}

// DELETE /api/v1/users/saved-properties/:id
func (h *Handlers) UnsaveProperty(c *fiber.Ctx) error {
	return h.setOp(c, func(userID, propID uuid.UUID) (interface{}, error) {
		return h.Service.UnsaveProperty(c.Context(), userID, propID)
	}, "Property removed from saved")
}

// POST /api/v1/users/viewed-properties/:id
func (h *Handlers) MarkViewed(c *fiber.Ctx) error {
	return h.setOp(c, func(userID, propID uuid.UUID) (interface{}, error) {
		return h.Service.MarkViewed(c.Context(), userID, propID)
	}, "Property marked viewed")
}

func (h *Handlers) setOp(c *fiber.Ctx, op func(userID, propID uuid.UUID) (interface{}, error), message string) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	propID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	u, err := op(userID, propID)
	if err != nil {
		if err == ErrUserNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to update saved properties", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, message, u, nil)
}

// PATCH /api/v1/admin/promote-role, admin only (route-level permission).
func (h *Handlers) PromoteRole(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.PromoteUserRole(c.Context(), body.Email, body.Role)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			return response.NotFound(c, err.Error())
		case ErrInvalidRole:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to update role", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Role updated", u, nil)
}

// POST /api/v1/admin/backfill-roles, admin only (route-level permission).
func (h *Handlers) BackfillRoles(c *fiber.Ctx) error {
	updated, err := h.Service.BackfillRoleField(c.Context())
	if err != nil {
		return response.Error(c, "Backfill failed", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Role backfill complete", map[string]interface{}{"updated": updated}, nil)
}
