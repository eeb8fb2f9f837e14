package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/middleware"
	"surfcamp/internal/services"
)

// AuthHandler handles HTTP requests for the credential lifecycle.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

type signUpRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
}

// HandleSignUp registers a user and returns a session token.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	token, err := h.authService.SignUp(middleware.Tx(c), services.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"token": token})
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignIn authenticates a user and returns a session token.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	token, err := h.authService.SignIn(middleware.Tx(c), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"token": token})
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleUpdateEmail changes the caller's email address.
func (h *AuthHandler) HandleUpdateEmail(c *fiber.Ctx) error {
	var req updateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	if err := h.authService.UpdateEmail(middleware.Tx(c), middleware.UserID(c), req.Email); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "email updated"})
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// HandleUpdatePassword changes the caller's password.
func (h *AuthHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	var req updatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	if err := h.authService.UpdatePassword(middleware.Tx(c), middleware.UserID(c), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "password updated"})
}

// HandleDeactivate soft-deletes the caller's account. Signing in again
// restores it.
func (h *AuthHandler) HandleDeactivate(c *fiber.Ctx) error {
	if err := h.authService.Deactivate(middleware.Tx(c), middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "account deactivated"})
}

// HandleDelete permanently removes the caller's account.
func (h *AuthHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.authService.Delete(middleware.Tx(c), middleware.UserID(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "account deleted"})
}
