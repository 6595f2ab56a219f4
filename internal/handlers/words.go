package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/middleware"
	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/types"
	"github.com/lexivault/lexivault/internal/utils"
	"gorm.io/gorm"
)

// WordsHandler handles vocabulary entry routes
type WordsHandler struct {
	DB *gorm.DB
}

func parseID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, types.InvalidArgument("invalid id")
	}
	return id, nil
}

// Create handles POST /words
// @Summary Create a vocabulary entry
// @Tags Words
// @Accept json
// @Produce json
// @Param body body object true "Word fields"
// @Success 201 {object} handlers.WordResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /words [post]
func (h *WordsHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var body struct {
		LangCode    string   `json:"lang_code"`
		NewWord     string   `json:"new_word"`
		Translation *string  `json:"translation"`
		Note        *string  `json:"note"`
		Contexts    []string `json:"contexts"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "words.validation.input")
	}

	word, err := services.CreateWord(h.DB, user.ID, services.CreateWordInput{
		LangCode:    body.LangCode,
		NewWord:     body.NewWord,
		Translation: body.Translation,
		Note:        body.Note,
		Contexts:    body.Contexts,
	})
	if err != nil {
		// An unknown language code is a validation failure on this route;
		// the missing resource is not the one being addressed.
		if types.KindOf(err) == types.KindNotFound {
			return utils.ErrorResponse(c, "unknown lang_code", fiber.StatusBadRequest, "words.validation.input")
		}
		return utils.KindErrorResponse(c, err, "words.create")
	}
	return c.Status(fiber.StatusCreated).JSON(toWordResponse(word))
}

// List handles GET /words?lang_code=&dictlist_id=
// @Summary List the authenticated user's words
// @Tags Words
// @Produce json
// @Param lang_code query string false "Language filter"
// @Param dictlist_id query int false "Dictlist membership filter"
// @Success 200 {array} handlers.WordResponse
// @Router /words [get]
func (h *WordsHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var filter services.WordFilter
	if lang := c.Query("lang_code"); lang != "" {
		filter.LangCode = &lang
	}
	if raw := c.Query("dictlist_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, "invalid dictlist_id filter", fiber.StatusBadRequest, "words.validation.input")
		}
		filter.DictListID = &id
	}

	words, err := services.ListWords(h.DB, user.ID, filter)
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.list")
	}
	return c.Status(fiber.StatusOK).JSON(toWordResponses(words))
}

// Get handles GET /words/:id
// @Summary Get one of the authenticated user's words
// @Tags Words
// @Produce json
// @Param id path int true "Word ID"
// @Success 200 {object} handlers.WordResponse
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /words/{id} [get]
func (h *WordsHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.get")
	}

	word, err := services.GetOwnedWord(h.DB, id, user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.get")
	}
	return c.Status(fiber.StatusOK).JSON(toWordResponse(word))
}

// Update handles PATCH /words/:id
// @Summary Partially update one of the authenticated user's words
// @Tags Words
// @Accept json
// @Produce json
// @Param id path int true "Word ID"
// @Param body body object true "Fields to update"
// @Success 200 {object} handlers.WordResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /words/{id} [patch]
func (h *WordsHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.update")
	}

	word, err := services.GetOwnedWord(h.DB, id, user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.update")
	}

	var patch services.WordPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "words.validation.input")
	}

	updated, err := services.UpdateWord(h.DB, word, patch)
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.update")
	}
	return c.Status(fiber.StatusOK).JSON(toWordResponse(updated))
}

// Delete handles DELETE /words/:id
// @Summary Delete one of the authenticated user's words
// @Tags Words
// @Param id path int true "Word ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /words/{id} [delete]
func (h *WordsHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.delete")
	}

	word, err := services.GetOwnedWord(h.DB, id, user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "words.delete")
	}

	if err := services.DeleteWord(h.DB, word); err != nil {
		return utils.KindErrorResponse(c, err, "words.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
