package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/parishworks/reportsdb/internal/store"
	"github.com/parishworks/reportsdb/internal/utils"
)

// TemplateHandler handles the read-only template routes.
type TemplateHandler struct {
	Store *store.Store
}

// List handles GET /api/templates
// @Summary List starter templates
// @Tags Templates
// @Produce json
// @Success 200 {array} store.TemplateSummary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /templates [get]
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	summaries, err := h.Store.ListTemplates(c.Context())
	if err != nil {
		return storeError(c, err, "listTemplates")
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// Get handles GET /api/templates/:id
// @Summary Load a starter template payload
// @Tags Templates
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid template id", fiber.StatusBadRequest, "data.validation.input")
	}

	payload, err := h.Store.LoadTemplate(c.Context(), id)
	if err != nil {
		return storeError(c, err, "loadTemplate")
	}
	return c.Status(fiber.StatusOK).JSON(payload)
}
