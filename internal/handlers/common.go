package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/parishworks/reportsdb/internal/store"
	"github.com/parishworks/reportsdb/internal/utils"
)

// storeError maps the store's error taxonomy onto the JSON error envelope.
// The caller names the operation for the envelope's type tag.
func storeError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, store.ErrValidation):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
	case errors.Is(err, store.ErrConflict):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusConflict, "data.conflict")
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, store.ErrUnauthorized):
		return utils.ErrorResponse(c, "Invalid handle or secret", fiber.StatusUnauthorized, "data.authorization.user")
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, op)
	}
}
