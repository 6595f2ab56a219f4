package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/utils"
	"gorm.io/gorm"
)

// LanguagesHandler handles catalog language routes
type LanguagesHandler struct {
	DB *gorm.DB
}

// Create handles POST /languages
// @Summary Create a language (admin only)
// @Tags Languages
// @Accept json
// @Produce json
// @Param body body handlers.LanguageResponse true "Code and name"
// @Success 201 {object} handlers.LanguageResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /languages [post]
func (h *LanguagesHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "languages.validation.input")
	}

	lang, err := services.CreateLanguage(h.DB, body.Code, body.Name)
	if err != nil {
		return utils.KindErrorResponse(c, err, "languages.create")
	}
	return c.Status(fiber.StatusCreated).JSON(toLanguageResponse(lang))
}

// List handles GET /languages/all
// @Summary List all languages
// @Tags Languages
// @Produce json
// @Success 200 {array} handlers.LanguageResponse
// @Router /languages/all [get]
func (h *LanguagesHandler) List(c *fiber.Ctx) error {
	langs, err := services.ListLanguages(h.DB)
	if err != nil {
		return utils.KindErrorResponse(c, err, "languages.list")
	}

	out := make([]*LanguageResponse, len(langs))
	for i := range langs {
		out[i] = toLanguageResponse(&langs[i])
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Get handles GET /languages/:code
// @Summary Get a language by code
// @Tags Languages
// @Produce json
// @Param code path string true "Language code"
// @Success 200 {object} handlers.LanguageResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /languages/{code} [get]
func (h *LanguagesHandler) Get(c *fiber.Ctx) error {
	lang, err := services.GetLanguageByCode(h.DB, c.Params("code"))
	if err != nil {
		return utils.KindErrorResponse(c, err, "languages.get")
	}
	return c.Status(fiber.StatusOK).JSON(toLanguageResponse(lang))
}

// UpdateName handles PATCH /languages/:code
// @Summary Rename a language (admin only)
// @Tags Languages
// @Accept json
// @Produce json
// @Param code path string true "Language code"
// @Param body body object true "New name"
// @Success 200 {object} handlers.LanguageResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /languages/{code} [patch]
func (h *LanguagesHandler) UpdateName(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "languages.validation.input")
	}

	lang, err := services.UpdateLanguageName(h.DB, c.Params("code"), body.Name)
	if err != nil {
		return utils.KindErrorResponse(c, err, "languages.update")
	}
	return c.Status(fiber.StatusOK).JSON(toLanguageResponse(lang))
}

// Delete handles DELETE /languages/:code
// @Summary Delete a language (admin only); dependent words and dictlists keep a null language
// @Tags Languages
// @Param code path string true "Language code"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /languages/{code} [delete]
func (h *LanguagesHandler) Delete(c *fiber.Ctx) error {
	if err := services.DeleteLanguage(h.DB, c.Params("code")); err != nil {
		return utils.KindErrorResponse(c, err, "languages.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
