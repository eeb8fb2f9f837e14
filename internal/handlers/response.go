package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"surfcamp/internal/apperrors"
)

// Envelope is the shared response shape for every endpoint.
type Envelope struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Metadata carries pagination info for list responses.
type Metadata struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func respondList(c *fiber.Ctx, data any, meta *Metadata) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Metadata:  meta,
		Data:      data,
	})
}

// validateStruct runs the validator and folds field failures into a single
// validation error raised at the boundary, before any service runs.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidation("invalid request")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return apperrors.NewValidation("validation failed: " + strings.Join(msgs, "; "))
}

// NewErrorHandler maps the error taxonomy onto the response envelope. Domain
// errors keep their message; upstream and unexpected errors are logged with
// full detail server-side and reduced to a generic message for the caller.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"

		switch {
		case apperrors.IsValidation(err):
			status = fiber.StatusBadRequest
			message = err.Error()
		case apperrors.IsAuthorization(err):
			status = fiber.StatusUnauthorized
			message = err.Error()
		case apperrors.IsNotFound(err):
			status = fiber.StatusNotFound
			message = err.Error()
		case apperrors.IsConflict(err):
			status = fiber.StatusConflict
			message = err.Error()
		case apperrors.IsUpstream(err):
			log.Error("upstream failure", zap.String("path", c.Path()), zap.Error(err))
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				message = fiberErr.Message
			} else {
				log.Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))
			}
		}

		return c.Status(status).JSON(Envelope{
			Success:   false,
			Timestamp: time.Now().UTC(),
			Data:      fiber.Map{"message": message},
		})
	}
}
