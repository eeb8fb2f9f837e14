package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"surfcamp/internal/apperrors"
	"surfcamp/internal/middleware"
	"surfcamp/internal/models"
	"surfcamp/internal/repositories"
	"surfcamp/internal/services"
)

// SettingHandler handles HTTP requests for the reference settings consumed
// by the booking form: countries and surfboards.
type SettingHandler struct {
	settingService *services.SettingService
	validate       *validator.Validate
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
		validate:       validator.New(),
	}
}

type countryListRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
	Search   string `query:"search" validate:"omitempty,max=100"`
	SortBy   string `query:"sort_by" validate:"omitempty,oneof=name code dial_code created_at updated_at"`
	SortDir  string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

type surfboardListRequest struct {
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
	Search   string `query:"search" validate:"omitempty,max=100"`
	SortBy   string `query:"sort_by" validate:"omitempty,oneof=name created_at updated_at"`
	SortDir  string `query:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

func toListQuery(page, pageSize int, search, sortBy, sortDir string) repositories.ListQuery {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = repositories.DefaultPageSize
	}
	return repositories.ListQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		SortBy:   sortBy,
		SortDir:  sortDir,
	}
}

// HandleListCountries returns a page of countries.
func (h *SettingHandler) HandleListCountries(c *fiber.Ctx) error {
	var req countryListRequest
	if err := c.QueryParser(&req); err != nil {
		return apperrors.NewValidation("invalid query parameters")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	q := toListQuery(req.Page, req.PageSize, req.Search, req.SortBy, req.SortDir)
	countries, total, err := h.settingService.ListCountries(c.Context(), middleware.Tx(c), q)
	if err != nil {
		return err
	}
	return respondList(c, countries, &Metadata{Page: q.Page, PageSize: q.PageSize, Total: total})
}

// HandleGetCountry returns one country.
func (h *SettingHandler) HandleGetCountry(c *fiber.Ctx) error {
	country, err := h.settingService.GetCountry(middleware.Tx(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, country)
}

type countryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Code     string `json:"code" validate:"required,min=2,max=8"`
	DialCode string `json:"dial_code" validate:"required,min=1,max=8"`
	Unicode  string `json:"unicode" validate:"omitempty,max=32"`
	Emoji    string `json:"emoji" validate:"omitempty,max=16"`
}

// HandleCreateCountry persists a new country.
func (h *SettingHandler) HandleCreateCountry(c *fiber.Ctx) error {
	var req countryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	country := &models.Country{
		Name:     req.Name,
		Code:     req.Code,
		DialCode: req.DialCode,
		Unicode:  req.Unicode,
		Emoji:    req.Emoji,
	}
	if err := h.settingService.CreateCountry(c.Context(), middleware.Tx(c), country); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, country)
}

// HandleUpdateCountry replaces a country's fields.
func (h *SettingHandler) HandleUpdateCountry(c *fiber.Ctx) error {
	var req countryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	country := &models.Country{
		Name:     req.Name,
		Code:     req.Code,
		DialCode: req.DialCode,
		Unicode:  req.Unicode,
		Emoji:    req.Emoji,
	}
	country.ID = c.Params("id")
	if err := h.settingService.UpdateCountry(c.Context(), middleware.Tx(c), country); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, country)
}

// HandleDeleteCountry soft-deletes a country.
func (h *SettingHandler) HandleDeleteCountry(c *fiber.Ctx) error {
	if err := h.settingService.DeleteCountry(c.Context(), middleware.Tx(c), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "country deleted"})
}

// HandleListSurfboards returns a page of surfboards.
func (h *SettingHandler) HandleListSurfboards(c *fiber.Ctx) error {
	var req surfboardListRequest
	if err := c.QueryParser(&req); err != nil {
		return apperrors.NewValidation("invalid query parameters")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	q := toListQuery(req.Page, req.PageSize, req.Search, req.SortBy, req.SortDir)
	surfboards, total, err := h.settingService.ListSurfboards(c.Context(), middleware.Tx(c), q)
	if err != nil {
		return err
	}
	return respondList(c, surfboards, &Metadata{Page: q.Page, PageSize: q.PageSize, Total: total})
}

// HandleGetSurfboard returns one surfboard.
func (h *SettingHandler) HandleGetSurfboard(c *fiber.Ctx) error {
	surfboard, err := h.settingService.GetSurfboard(middleware.Tx(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, surfboard)
}

type surfboardRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// HandleCreateSurfboard persists a new surfboard.
func (h *SettingHandler) HandleCreateSurfboard(c *fiber.Ctx) error {
	var req surfboardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	surfboard := &models.Surfboard{Name: req.Name}
	if err := h.settingService.CreateSurfboard(c.Context(), middleware.Tx(c), surfboard); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, surfboard)
}

// HandleUpdateSurfboard renames a surfboard.
func (h *SettingHandler) HandleUpdateSurfboard(c *fiber.Ctx) error {
	var req surfboardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	surfboard := &models.Surfboard{Name: req.Name}
	surfboard.ID = c.Params("id")
	if err := h.settingService.UpdateSurfboard(c.Context(), middleware.Tx(c), surfboard); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, surfboard)
}

// HandleDeleteSurfboard soft-deletes a surfboard.
func (h *SettingHandler) HandleDeleteSurfboard(c *fiber.Ctx) error {
	if err := h.settingService.DeleteSurfboard(c.Context(), middleware.Tx(c), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "surfboard deleted"})
}
