package properties

import (
	"encoding/json"
	"errors"
	"strconv"

	"karoo-backend/internal/access"
	"karoo-backend/internal/catalog"
	"karoo-backend/internal/middleware"
	"karoo-backend/internal/models"
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers wires the property service and the catalog query composer to HTTP.
type Handlers struct {
	Service *Service
	Catalog *catalog.Service
}

// GET /api/v1/properties, composed filter query via query params.
func (h *Handlers) List(c *fiber.Ctx) error {
	f := catalog.Filter{
		Type:       c.Query("type"),
		Province:   c.Query("province"),
		PriceRange: c.Query("price"),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Cursor:     c.Query("cursor"),
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true"
		f.Featured = &b
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Limit = n
		}
	}

	res, err := h.Catalog.Query(c.Context(), f)
	if err != nil {
		var qe *catalog.QueryError
		if errors.As(err, &qe) {
			return response.QueryFailed(c, "Could not load properties, please retry")
		}
		return response.Error(c, "Failed to fetch properties", fiber.StatusInternalServerError, nil)
	}
	meta := map[string]interface{}{"count": len(res.Properties)}
	if res.NextCursor != "" {
		meta["next_cursor"] = res.NextCursor
	}
	return response.Success(c, "Properties fetched successfully", res.Properties, meta)
}

// GET /api/v1/properties/featured
func (h *Handlers) Featured(c *fiber.Ctx) error {
	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	props, err := h.Service.GetFeatured(c.Context(), limit)
	if err != nil {
		return response.QueryFailed(c, "Could not load featured properties")
	}
	return response.Success(c, "Featured properties fetched", props, nil)
}

// GET /api/v1/properties/:id, bumps the view counter.
func (h *Handlers) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if err == ErrPropertyNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.QueryFailed(c, "Could not load property")
	}
	_ = h.Service.IncrementViews(c.Context(), id)
	return response.Success(c, "Property fetched", p, nil)
}

type createBody struct {
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Address      string                  `json:"address"`
	City         string                  `json:"city"`
	Province     string                  `json:"province"`
	Latitude     float64                 `json:"latitude"`
	Longitude    float64                 `json:"longitude"`
	Price        float64                 `json:"price"`
	Size         models.PropertySize     `json:"size"`
	Features     models.PropertyFeatures `json:"features"`
	PropertyType string                  `json:"property_type"`
	Status       string                  `json:"status"`
	Featured     bool                    `json:"featured"`
	Images       []string                `json:"images"`
	AgentName    string                  `json:"agent_name"`
	AgentPhone   string                  `json:"agent_phone"`
	AgentEmail   string                  `json:"agent_email"`
}

// POST /api/v1/properties, agent/admin only (route-level permission).
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	for field, val := range map[string]string{
		"title": body.Title, "city": body.City, "province": body.Province, "property_type": body.PropertyType,
	} {
		if val == "" {
			return response.Error(c, "Missing required field: "+field, fiber.StatusBadRequest, nil)
		}
	}

	in := CreatePropertyInput{
		Title:        body.Title,
		Description:  body.Description,
		Address:      body.Address,
		City:         body.City,
		Province:     body.Province,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		Price:        body.Price,
		Size:         body.Size,
		Features:     body.Features,
		PropertyType: body.PropertyType,
		Status:       body.Status,
		Featured:     body.Featured,
		Images:       body.Images,
		AgentName:    body.AgentName,
		AgentPhone:   body.AgentPhone,
		AgentEmail:   body.AgentEmail,
	}
	if callerID, err := uuid.Parse(middleware.GetUserID(c)); err == nil {
		in.AgentID = &callerID
	}

	p, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch err {
		case ErrInvalidPrice, ErrInvalidType, ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to create property", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Property created", p, nil)
}

type updateBody struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
	Featured    *bool    `json:"featured"`
	Images      []string `json:"images"`
}

// PUT /api/v1/properties/:id, listing agent, owner, or admin.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	var body updateBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	callerID, _ := uuid.Parse(middleware.GetUserID(c))
	isAdmin := access.Decide(middleware.GetRole(c), access.RoleAdmin, true).State == access.StateAllowed

	p, err := h.Service.Update(c.Context(), id, callerID, isAdmin, UpdatePropertyInput{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		Status:      body.Status,
		Featured:    body.Featured,
		Images:      body.Images,
	})
	if err != nil {
		switch err {
		case ErrPropertyNotFound:
			return response.NotFound(c, err.Error())
		case ErrNotOwner:
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case ErrInvalidPrice, ErrInvalidStatus:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Failed to update property", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property updated", p, nil)
}

// DELETE /api/v1/properties/:id, admin only (route-level permission).
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid property id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrPropertyNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Failed to delete property", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Property deleted", nil, nil)
}
