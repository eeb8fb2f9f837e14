package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/middleware"
	"surfcamp/internal/services"
	"surfcamp/pkg/storage"
)

const photoFieldName = "national_id_photo"

// allowedPhotoTypes is the per-route MIME whitelist for the national-ID
// photo upload.
var allowedPhotoTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// BookingHandler handles HTTP requests for bookings. Create and update are
// multipart: form fields plus the national-ID photo, which is streamed to
// object storage here so the service only ever sees the opaque key.
type BookingHandler struct {
	bookingService *services.BookingService
	files          storage.FileStorage
	maxUploadBytes int64
	validate       *validator.Validate
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *services.BookingService, files storage.FileStorage, maxUploadBytes int64) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		files:          files,
		maxUploadBytes: maxUploadBytes,
		validate:       validator.New(),
	}
}

type bookingRequest struct {
	Name              string `form:"name" validate:"required,min=1,max=100"`
	Email             string `form:"email" validate:"required,email"`
	Phone             string `form:"phone" validate:"required,min=5,max=32"`
	CountryID         string `form:"country_id" validate:"required,uuid"`
	SurfingExperience int    `form:"surfing_experience" validate:"gte=0,lte=10"`
	Date              string `form:"date" validate:"required,datetime=2006-01-02"`
	SurfboardID       string `form:"surfboard_id" validate:"required,uuid"`
}

type bookingListRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
	Search   string `query:"search" validate:"omitempty,max=100"`
	SortBy   string `query:"sort_by" validate:"omitempty,oneof=name email phone date surfing_experience created_at updated_at"`
	SortDir  string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// HandleCreate creates a booking from the multipart form. The photo is
// required here.
func (h *BookingHandler) HandleCreate(c *fiber.Ctx) error {
	in, err := h.parseBookingForm(c, true)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Create(c.Context(), middleware.Tx(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, booking)
}

// HandleList returns a page of bookings.
func (h *BookingHandler) HandleList(c *fiber.Ctx) error {
	var req bookingListRequest
	if err := c.QueryParser(&req); err != nil {
		return apperrors.NewValidation("invalid query parameters")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	q := toListQuery(req.Page, req.PageSize, req.Search, req.SortBy, req.SortDir)
	bookings, total, err := h.bookingService.List(middleware.Tx(c), q)
	if err != nil {
		return err
	}
	return respondList(c, bookings, &Metadata{Page: q.Page, PageSize: q.PageSize, Total: total})
}

// HandleGet returns one booking.
func (h *BookingHandler) HandleGet(c *fiber.Ctx) error {
	booking, err := h.bookingService.Get(middleware.Tx(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, booking)
}

// HandleUpdate replaces a booking's fields. The photo is optional; when
// present it replaces the stored one and the old object gets cleaned up by
// the service.
func (h *BookingHandler) HandleUpdate(c *fiber.Ctx) error {
	in, err := h.parseBookingForm(c, false)
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Update(c.Context(), middleware.Tx(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, booking)
}

// HandleDestroy soft-deletes a booking.
func (h *BookingHandler) HandleDestroy(c *fiber.Ctx) error {
	if err := h.bookingService.Destroy(middleware.Tx(c), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "booking cancelled"})
}

// parseBookingForm validates the multipart fields and, when a photo is
// attached, streams it to object storage. It returns the service input with
// the new file key, or an empty key when no photo was sent and none was
// required.
func (h *BookingHandler) parseBookingForm(c *fiber.Ctx, photoRequired bool) (services.BookingInput, error) {
	var req bookingRequest
	if err := c.BodyParser(&req); err != nil {
		return services.BookingInput{}, apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return services.BookingInput{}, err
	}

	// The datetime rule already guarantees this parses.
	date, _ := time.Parse("2006-01-02", req.Date)

	fileKey, err := h.uploadPhoto(c, photoRequired)
	if err != nil {
		return services.BookingInput{}, err
	}

	return services.BookingInput{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		CountryID:         req.CountryID,
		SurfingExperience: req.SurfingExperience,
		Date:              date,
		SurfboardID:       req.SurfboardID,
		FileKey:           fileKey,
	}, nil
}

func (h *BookingHandler) uploadPhoto(c *fiber.Ctx, required bool) (string, error) {
	fileHeader, err := c.FormFile(photoFieldName)
	if err != nil {
		if required {
			return "", apperrors.NewValidation(fmt.Sprintf("multipart file field '%s' is required", photoFieldName))
		}
		return "", nil
	}

	if fileHeader.Size > h.maxUploadBytes {
		return "", apperrors.NewValidation(fmt.Sprintf("file exceeds the %d byte upload limit", h.maxUploadBytes))
	}
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if !allowedPhotoTypes[contentType] {
		return "", apperrors.NewValidation(fmt.Sprintf("content type %q is not allowed for '%s'", contentType, photoFieldName))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.NewUpstream("open uploaded file", err)
	}
	defer file.Close()

	key := "bookings/national-id/" + uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if err := h.files.Upload(c.Context(), key, file, fileHeader.Size, contentType); err != nil {
		return "", apperrors.NewUpstream("upload file", err)
	}
	return key, nil
}
