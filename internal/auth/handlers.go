package auth

import (
	"context"
	"encoding/json"

	"karoo-backend/internal/middleware"
	"karoo-backend/internal/models"
	"karoo-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers wires the auth service to HTTP and the session middleware.
type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// POST /api/v1/auth/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var in SignupInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.Signup(c.Context(), in)
	if err != nil {
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	}
	h.startSession(c, u)
	return response.SuccessCreated(c, "Account created", SessionShape(u), nil)
}

// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in LoginInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	u, err := h.Service.Login(c.Context(), in)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidEmail, ErrIncorrectPassword:
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Login failed", fiber.StatusInternalServerError, nil)
	}
	h.startSession(c, u)
	return response.Success(c, "Logged in", SessionShape(u), nil)
}

// GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	shape, err := VerifyUser(middleware.GetUser(c))
	if err != nil {
		return response.Unauthorized(c, err.Error())
	}
	return response.Success(c, "Authenticated", shape, nil)
}

// DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sid := middleware.GetSessionID(c)
	if sid != "" && h.Rdb != nil {
		h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sid)
	}
	middleware.DestroySession(c)
	cookie := middleware.SessionCookie(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)
	return response.Success(c, "Logged out", nil, nil)
}

// POST /api/v1/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.RequestPasswordReset(c.Context(), body.Email); err != nil {
		if err == ErrInvalidEmail {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Could not dispatch reset email", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "If the account exists, a reset email has been sent", nil, nil)
}

func (h *Handlers) startSession(c *fiber.Ctx, u *models.User) {
	sid := middleware.RegenerateSessionID(c)
	shape := SessionShape(u)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   shape.UserID,
		Fullname: shape.Fullname,
		Email:    shape.Email,
		Role:     shape.Role,
	})
	cookie := middleware.SessionCookie(h.Config)
	cookie.Value = "s:" + sid
	c.Cookie(&cookie)
}
