package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/milena/wayfare-api/internal/middleware"
	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/services"
	"github.com/milena/wayfare-api/pkg/dto"
)

// UsersHandler manages admin accounts. All routes sit behind the
// main-admin-only gate.
type UsersHandler struct {
	userService UserServiceInterface
}

func NewUsersHandler(userService UserServiceInterface) *UsersHandler {
	return &UsersHandler{userService: userService}
}

func (h *UsersHandler) List(c *drift.Context) {
	users, err := h.userService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to fetch users")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i, u := range users {
		response[i] = dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}

	_ = c.JSON(200, map[string]any{"users": response, "count": len(response)})
}

func (h *UsersHandler) Create(c *drift.Context) {
	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		c.BadRequest("email, name and password are required")
		return
	}

	if req.Role == "" {
		req.Role = models.RoleAdmin
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleMainAdmin {
		c.BadRequest("invalid role")
		return
	}

	user, err := h.userService.Create(context.Background(), req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		c.InternalServerError("failed to create user")
		return
	}

	_ = c.JSON(201, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (h *UsersHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	if id == middleware.GetUserID(c) {
		c.BadRequest("cannot delete your own account")
		return
	}

	if err := h.userService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("user not found")
			return
		}
		c.InternalServerError("failed to delete user")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "user deleted"})
}
