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

// DictListsHandler handles dictlist routes
type DictListsHandler struct {
	DB *gorm.DB
}

// Create handles POST /dictlists
// @Summary Create a dictlist
// @Tags DictLists
// @Accept json
// @Produce json
// @Param body body object true "Dictlist fields"
// @Success 201 {object} handlers.DictListResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /dictlists [post]
func (h *DictListsHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var body struct {
		Name          string  `json:"name"`
		LangCode      *string `json:"lang_code"`
		MaxWordsLimit *int    `json:"max_words_limit"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "dictlists.validation.input")
	}

	list, err := services.CreateDictList(h.DB, user.ID, services.CreateDictListInput{
		Name:          body.Name,
		LangCode:      body.LangCode,
		MaxWordsLimit: body.MaxWordsLimit,
	})
	if err != nil {
		if types.KindOf(err) == types.KindNotFound {
			return utils.ErrorResponse(c, "unknown lang_code", fiber.StatusBadRequest, "dictlists.validation.input")
		}
		return utils.KindErrorResponse(c, err, "dictlists.create")
	}
	return c.Status(fiber.StatusCreated).JSON(toDictListResponse(list))
}

// List handles GET /dictlists?lang_code=&word_id=
// @Summary List the authenticated user's dictlists
// @Tags DictLists
// @Produce json
// @Param lang_code query string false "Language filter"
// @Param word_id query int false "Member word filter"
// @Success 200 {array} handlers.DictListResponse
// @Router /dictlists [get]
func (h *DictListsHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var filter services.DictListFilter
	if lang := c.Query("lang_code"); lang != "" {
		filter.LangCode = &lang
	}
	if raw := c.Query("word_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(c, "invalid word_id filter", fiber.StatusBadRequest, "dictlists.validation.input")
		}
		filter.WordID = &id
	}

	lists, err := services.ListDictLists(h.DB, user.ID, filter)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.list")
	}
	return c.Status(fiber.StatusOK).JSON(toDictListResponses(lists))
}

// Get handles GET /dictlists/:id
// @Summary Get one of the authenticated user's dictlists with its words
// @Tags DictLists
// @Produce json
// @Param id path int true "DictList ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /dictlists/{id} [get]
func (h *DictListsHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.get")
	}

	list, err := services.GetOwnedDictList(h.DB, id, user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.get")
	}

	resp := toDictListResponse(list)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":              resp.ID,
		"user_id":         resp.UserID,
		"name":            resp.Name,
		"language":        resp.Language,
		"max_words_limit": resp.MaxWordsLimit,
		"word_count":      resp.WordCount,
		"created_at":      resp.CreatedAt,
		"words":           toWordResponses(list.Words),
	})
}

// Update handles PATCH /dictlists/:id
// @Summary Partially update one of the authenticated user's dictlists
// @Tags DictLists
// @Accept json
// @Produce json
// @Param id path int true "DictList ID"
// @Param body body object true "Fields to update"
// @Success 200 {object} handlers.DictListResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /dictlists/{id} [patch]
func (h *DictListsHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.update")
	}

	list, err := services.GetOwnedDictList(h.DB, id, user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.update")
	}

	var patch services.DictListPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "dictlists.validation.input")
	}

	updated, err := services.UpdateDictList(h.DB, list, patch)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.update")
	}
	return c.Status(fiber.StatusOK).JSON(toDictListResponse(updated))
}

// AssignWords handles POST /dictlists/:id/words
// @Summary Add words to a dictlist; already-present ids are ignored
// @Tags DictLists
// @Accept json
// @Produce json
// @Param id path int true "DictList ID"
// @Param body body object true "word_ids (single id or array)"
// @Success 200 {object} handlers.DictListResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /dictlists/{id}/words [post]
func (h *DictListsHandler) AssignWords(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.assign")
	}

	var body struct {
		WordIDs types.FlexIDList `json:"word_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "dictlists.validation.input")
	}

	if err := services.AssignWords(h.DB, id, user.ID, body.WordIDs.Uint64s()); err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.assign")
	}

	list, err := services.GetDictList(h.DB, id)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.assign")
	}
	return c.Status(fiber.StatusOK).JSON(toDictListResponse(list))
}

// UnassignWords handles DELETE /dictlists/:id/words
// @Summary Remove words from a dictlist; non-member ids are ignored
// @Tags DictLists
// @Accept json
// @Produce json
// @Param id path int true "DictList ID"
// @Param body body object true "word_ids (single id or array)"
// @Success 200 {object} handlers.DictListResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /dictlists/{id}/words [delete]
func (h *DictListsHandler) UnassignWords(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.unassign")
	}

	var body struct {
		WordIDs types.FlexIDList `json:"word_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "dictlists.validation.input")
	}

	if err := services.UnassignWords(h.DB, id, user.ID, body.WordIDs.Uint64s()); err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.unassign")
	}

	list, err := services.GetDictList(h.DB, id)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.unassign")
	}
	return c.Status(fiber.StatusOK).JSON(toDictListResponse(list))
}

// Delete handles DELETE /dictlists/:id
// @Summary Delete one of the authenticated user's dictlists; member words survive
// @Tags DictLists
// @Param id path int true "DictList ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /dictlists/{id} [delete]
func (h *DictListsHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.delete")
	}

	list, err := services.GetOwnedDictList(h.DB, id, user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.delete")
	}

	if err := services.DeleteDictList(h.DB, list); err != nil {
		return utils.KindErrorResponse(c, err, "dictlists.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
