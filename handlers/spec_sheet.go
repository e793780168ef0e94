package handlers

import (
	"errors"
	"log"
	"net/http"

	"datasheet_studio_go/services"

	"github.com/labstack/echo/v4"
)

// ExportSpecsHandler downloads the spec table as an xlsx workbook
func (h *Editor) ExportSpecsHandler(c echo.Context) error {
	buf, err := services.ExportSpecsWorkbook(h.Store.Document().Specs)
	if err != nil {
		log.Printf("[ERROR] Failed to build spec workbook: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to build spec sheet")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.SpecSheetFileName)
	return c.Blob(http.StatusOK, services.SpecSheetContentType, buf.Bytes())
}

// ImportSpecsHandler replaces the spec table with the sections of an uploaded workbook
func (h *Editor) ImportSpecsHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "spec sheet file required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	sections, err := services.ImportSpecsWorkbook(file)
	if err != nil {
		if errors.Is(err, services.ErrEmptySpecSheet) {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		log.Printf("[WARNING] Spec sheet import rejected: %v", err)
		return errorJSON(c, http.StatusBadRequest, "file is not a readable xlsx workbook")
	}

	h.Store.ReplaceSpecs(sections)
	log.Printf("[INFO] Imported %d spec sections from %s", len(sections), fileHeader.Filename)
	return h.document(c)
}
