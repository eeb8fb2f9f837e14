package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/middleware"
	"surfcamp/internal/services"
)

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// HandleMe returns the caller's profile.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.userService.Me(middleware.Tx(c), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}

type updateProfileRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

// HandleUpdateMe replaces the caller's first and last name.
func (h *UserHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(middleware.Tx(c), middleware.UserID(c), req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, user)
}
