package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/parishworks/reportsdb/internal/middleware"
	"github.com/parishworks/reportsdb/internal/report"
	"github.com/parishworks/reportsdb/internal/store"
	"github.com/parishworks/reportsdb/internal/utils"
)

// ReportHandler handles report document routes.
type ReportHandler struct {
	Store *store.Store
}

type saveReportRequest struct {
	OrgName string         `json:"orgName"`
	Payload report.Payload `json:"payload"`
}

// List handles GET /api/reports
// @Summary List report documents
// @Description List the session account's live documents, most recently updated first
// @Tags Reports
// @Produce json
// @Success 200 {array} store.DocumentSummary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	summaries, err := h.Store.ListDocuments(c.Context(), middleware.AccountID(c))
	if err != nil {
		return storeError(c, err, "listReports")
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// Save handles POST /api/reports/:name
// @Summary Save a report document
// @Description Insert or overwrite the named document for the session account
// @Tags Reports
// @Accept json
// @Produce json
// @Param name path string true "Report name"
// @Param body body saveReportRequest true "Report content"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reports/{name} [post]
func (h *ReportHandler) Save(c *fiber.Ctx) error {
	// The segment arrives percent-encoded, so names with reserved
	// characters (slashes, spaces) stay addressable.
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return utils.ErrorResponse(c, "Invalid report name", fiber.StatusBadRequest, "data.validation.input")
	}

	var body saveReportRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}
	if name == "" || body.Payload == nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	completion := report.Completion(body.Payload)
	id, err := h.Store.SaveDocument(c.Context(), middleware.AccountID(c), name, body.OrgName, body.Payload, completion)
	if err != nil {
		return storeError(c, err, "saveReport")
	}

	return utils.MutationSuccessResponse(c, id)
}

// Get handles GET /api/reports/:id
// @Summary Load a report document
// @Description Load one of the session account's documents with its payload
// @Tags Reports
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} store.FullDocument
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid document id", fiber.StatusBadRequest, "data.validation.input")
	}

	doc, err := h.Store.LoadDocument(c.Context(), id, middleware.AccountID(c))
	if err != nil {
		return storeError(c, err, "loadReport")
	}
	return c.Status(fiber.StatusOK).JSON(doc)
}

// Delete handles DELETE /api/reports/:id
// @Summary Archive a report document
// @Description Soft-delete a document; it disappears from listings
// @Tags Reports
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid document id", fiber.StatusBadRequest, "data.validation.input")
	}

	if err := h.Store.DeleteDocument(c.Context(), id, middleware.AccountID(c)); err != nil {
		return storeError(c, err, "deleteReport")
	}
	return utils.MutationSuccessResponse(c, id)
}

// Export handles GET /api/reports/:id/export
// @Summary Export a report as plain text
// @Description Deterministic plain-text rendition with a suggested filename
// @Tags Reports
// @Produce plain
// @Param id path int true "Document ID"
// @Success 200 {string} string
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /reports/{id}/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	id, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid document id", fiber.StatusBadRequest, "data.validation.input")
	}

	doc, err := h.Store.LoadDocument(c.Context(), id, middleware.AccountID(c))
	if err != nil {
		return storeError(c, err, "exportReport")
	}

	text := report.Render(doc.OrgName, doc.PeriodLabel, doc.Payload)
	filename := report.Filename(doc.OrgName, time.Now())

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).SendString(text)
}

func parseDocumentID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
