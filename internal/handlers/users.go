package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/config"
	"github.com/lexivault/lexivault/internal/middleware"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/utils"
	"gorm.io/gorm"
)

// UsersHandler handles account routes
type UsersHandler struct {
	DB     *gorm.DB
	Creds  *services.Credentials
	Mailer services.Notifier
	Cfg    *config.Config
}

func (h *UsersHandler) verifyLink(action, token string) string {
	return fmt.Sprintf("%s/auth/%s?token=%s", h.Cfg.BaseURL, action, token)
}

// Register handles POST /users
// @Summary Register a new account
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "Username, email, password"
// @Success 201 {object} handlers.UserResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.CreateUser(h.DB, h.Creds, body.Username, body.Email, body.Password)
	if err != nil {
		return utils.KindErrorResponse(c, err, "users.register")
	}

	// The account is committed; mail delivery must not undo it.
	if token, err := h.Creds.IssueVerifyToken(map[string]interface{}{"sub": user.Email}); err == nil {
		services.NotifyAsync(h.Mailer, user.Email, h.verifyLink("email_verify", token))
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// Me handles GET /users/me
// @Summary Get the authenticated account
// @Tags Users
// @Produce json
// @Success 200 {object} handlers.UserResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/me [get]
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.Status(fiber.StatusOK).JSON(toUserResponse(user))
}

// List handles GET /users?role=
// @Summary List accounts, optionally filtered by role (admin only)
// @Tags Users
// @Produce json
// @Param role query int false "Role filter (1-4)"
// @Success 200 {array} handlers.UserResponse
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var role *models.Role
	if raw := c.Query("role"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < int(models.RoleUnauthorized) || n > int(models.RoleAdmin) {
			return utils.ErrorResponse(c, "invalid role filter", fiber.StatusBadRequest, "users.validation.input")
		}
		r := models.Role(n)
		role = &r
	}

	users, err := services.ListUsers(h.DB, role)
	if err != nil {
		return utils.KindErrorResponse(c, err, "users.list")
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// UpdateUsername handles PATCH /users/me/username
// @Summary Change the authenticated account's username
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "New username"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users/me/username [patch]
func (h *UsersHandler) UpdateUsername(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var body struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	if err := services.UpdateUsername(h.DB, user, body.Username); err != nil {
		return utils.KindErrorResponse(c, err, "users.username")
	}
	return c.Status(fiber.StatusOK).JSON(toUserResponse(user))
}

// RequestEmailChange handles PATCH /users/me/email. The address is not
// changed here: a signed claim carrying the pending address is mailed to it,
// and the change commits when the claim is redeemed.
// @Summary Request an email change for the authenticated account
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "New email"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me/email [patch]
func (h *UsersHandler) RequestEmailChange(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}
	if err := services.ValidateEmail(body.Email); err != nil {
		return utils.KindErrorResponse(c, err, "users.email")
	}

	token, err := h.Creds.IssueVerifyToken(map[string]interface{}{
		"user_id":   user.ID,
		"new_email": body.Email,
	})
	if err != nil {
		return utils.KindErrorResponse(c, err, "users.email")
	}

	services.NotifyAsync(h.Mailer, body.Email, h.verifyLink("email_change_verify", token))

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"ok":      true,
		"message": "verification mail sent",
	})
}

// UpdatePassword handles PATCH /users/me/password
// @Summary Change the authenticated account's password
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "Old and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me/password [patch]
func (h *UsersHandler) UpdatePassword(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	if !h.Creds.VerifyPassword(body.OldPassword, user.Password) {
		return utils.ErrorResponse(c, "incorrect password", fiber.StatusBadRequest, "users.password")
	}

	if err := services.UpdatePassword(h.DB, h.Creds, user, body.NewPassword); err != nil {
		return utils.KindErrorResponse(c, err, "users.password")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "password updated"})
}

// Delete handles DELETE /users/me
// @Summary Delete the authenticated account and everything it owns
// @Tags Users
// @Success 204
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /users/me [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := services.DeleteUser(h.DB, user.ID); err != nil {
		return utils.KindErrorResponse(c, err, "users.delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
