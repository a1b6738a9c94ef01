package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/parishworks/reportsdb/internal/auth"
	"github.com/parishworks/reportsdb/internal/middleware"
	"github.com/parishworks/reportsdb/internal/store"
	"github.com/parishworks/reportsdb/internal/utils"
)

// AuthHandler handles registration and login routes.
type AuthHandler struct {
	Store         *store.Store
	SessionSecret []byte
	SessionTTL    time.Duration
}

type registerRequest struct {
	Handle      string `json:"handle"`
	Secret      string `json:"secret"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	OrgName     string `json:"orgName"`
}

type loginRequest struct {
	Handle string `json:"handle"`
	Secret string `json:"secret"`
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Description Create a new account owning report documents
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Registration fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	accountID, err := h.Store.Register(c.Context(), body.Handle, body.Secret, store.RegisterInput{
		Email:       body.Email,
		DisplayName: body.DisplayName,
		OrgName:     body.OrgName,
	})
	if err != nil {
		return storeError(c, err, "register")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":        true,
		"accountId": accountID,
	})
}

// Login handles POST /api/auth/login
// @Summary Authenticate
// @Description Verify a handle/secret pair and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	account, err := h.Store.Authenticate(c.Context(), body.Handle, body.Secret)
	if err != nil {
		return storeError(c, err, "login")
	}

	token, err := auth.GenerateToken(account.AccountID, h.SessionSecret, h.SessionTTL)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ok":      true,
		"token":   token,
		"account": account,
	})
}
