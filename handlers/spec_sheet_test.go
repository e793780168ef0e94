package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"datasheet_studio_go/models"
	"datasheet_studio_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSpecSheetRoundTrip(t *testing.T) {
	editor := setupEditor(t)

	_, c, rec := setupEcho(http.MethodGet, "/api/specs/xlsx", nil)
	assert.NoError(t, editor.ExportSpecsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.SpecSheetContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), services.SpecSheetFileName)
	workbook := rec.Body.Bytes()

	editor.Store.ReplaceSpecs([]models.SpecSection{{ID: "only", Title: "Only", Rows: []models.SpecRow{}}})

	body, contentType := multipartBody(t, services.SpecSheetFileName, workbook)
	_, c, rec = setupEcho(http.MethodPost, "/api/specs/xlsx", body)
	c.Request().Header.Set(echo.HeaderContentType, contentType)

	assert.NoError(t, editor.ImportSpecsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultSpecs(), editor.Store.Document().Specs)
}

func TestImportSpecsHandlerRejectsGarbage(t *testing.T) {
	editor := setupEditor(t)

	body, contentType := multipartBody(t, "specs.xlsx", bytes.Repeat([]byte("x"), 64))
	_, c, rec := setupEcho(http.MethodPost, "/api/specs/xlsx", body)
	c.Request().Header.Set(echo.HeaderContentType, contentType)

	assert.NoError(t, editor.ImportSpecsHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.DefaultSpecs(), editor.Store.Document().Specs)

	_, c, rec = setupEcho(http.MethodPost, "/api/specs/xlsx", nil)
	assert.NoError(t, editor.ImportSpecsHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
