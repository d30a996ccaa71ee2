package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/usecase"
)

// UserHandler exposes user CRUD.
type UserHandler struct {
	userService *usecase.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *usecase.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

type UserRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"required,max=255"`
	Role  string `json:"role" validate:"omitempty,oneof=student club_admin admin"`
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &model.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
	if err := h.userService.CreateUser(c.Request().Context(), user); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /api/v1/users/:id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/v1/users. An optional ?email= looks up a single user.
func (h *UserHandler) ListUsers(c echo.Context) error {
	if email := c.QueryParam("email"); email != "" {
		user, err := h.userService.GetUserByEmail(c.Request().Context(), email)
		if err != nil {
			return writeError(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, user)
	}

	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /api/v1/users/:id.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := &model.User{
		ID:    id,
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
	if err := h.userService.UpdateUser(c.Request().Context(), user); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/v1/users/:id.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}
