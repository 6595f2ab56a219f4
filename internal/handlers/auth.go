package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/lexivault/lexivault/internal/models"
	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles login and verification-token redemption routes
type AuthHandler struct {
	DB    *gorm.DB
	Creds *services.Credentials
}

// TokenResponse is the login success payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login
// @Summary Log in with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "Credentials"
// @Success 200 {object} handlers.TokenResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.GetUserByUsername(h.DB, body.Username)
	if err != nil {
		return utils.KindErrorResponse(c, err, "auth.login")
	}

	if !h.Creds.VerifyPassword(body.Password, user.Password) {
		return utils.ErrorResponse(c, "incorrect username or password", fiber.StatusBadRequest, "auth.login")
	}

	token, err := h.Creds.IssueAccessToken(user.ID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "auth.login")
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// EmailVerify handles GET /auth/email_verify?token=
// @Summary Redeem an email verification token
// @Tags Auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/email_verify [get]
func (h *AuthHandler) EmailVerify(c *fiber.Ctx) error {
	claims, err := h.Creds.Decode(c.Query("token"))
	if err != nil {
		return utils.KindErrorResponse(c, err, "auth.verify")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return utils.ErrorResponse(c, "could not validate credentials", fiber.StatusUnauthorized, "auth.verify")
	}

	user, err := services.GetUserByEmail(h.DB, email)
	if err != nil {
		return utils.KindErrorResponse(c, err, "auth.verify")
	}

	if err := services.PromoteRole(h.DB, user, models.RoleAuthorized); err != nil {
		return utils.KindErrorResponse(c, err, "auth.verify")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "message": "email verified"})
}

// EmailChangeVerify handles GET /auth/email_change_verify?token=
// @Summary Redeem an email change token
// @Tags Auth
// @Produce json
// @Param token query string true "Email change token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/email_change_verify [get]
func (h *AuthHandler) EmailChangeVerify(c *fiber.Ctx) error {
	claims, err := h.Creds.Decode(c.Query("token"))
	if err != nil {
		return utils.KindErrorResponse(c, err, "auth.email_change")
	}

	userID, _ := claims["user_id"].(string)
	newEmail, _ := claims["new_email"].(string)
	if userID == "" || newEmail == "" {
		return utils.ErrorResponse(c, "could not validate credentials", fiber.StatusUnauthorized, "auth.email_change")
	}

	user, err := services.GetUserByID(h.DB, userID)
	if err != nil {
		return utils.KindErrorResponse(c, err, "auth.email_change")
	}

	if err := services.UpdateEmail(h.DB, user, newEmail); err != nil {
		return utils.KindErrorResponse(c, err, "auth.email_change")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":      true,
		"message": fmt.Sprintf("email changed to %s", newEmail),
	})
}
