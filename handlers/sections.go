package handlers

import (
	"net/http"

	"datasheet_studio_go/models"

	"github.com/labstack/echo/v4"
)

type titleRequest struct {
	Title string `json:"title"`
}

type rowFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// AddSectionHandler appends an empty spec section
func (h *Editor) AddSectionHandler(c echo.Context) error {
	id := h.Store.AddSection()
	c.Response().Header().Set("X-Section-ID", id)
	return c.JSON(http.StatusCreated, h.Store.Document())
}

// RemoveSectionHandler deletes a spec section and its rows
func (h *Editor) RemoveSectionHandler(c echo.Context) error {
	if !h.Store.RemoveSection(c.Param("id")) {
		return notFound(c, "section")
	}
	return h.document(c)
}

// UpdateSectionTitleHandler renames a spec section
func (h *Editor) UpdateSectionTitleHandler(c echo.Context) error {
	var req titleRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !h.Store.UpdateSectionTitle(c.Param("id"), req.Title) {
		return notFound(c, "section")
	}
	return h.document(c)
}

// AddRowHandler appends an empty row to a section
func (h *Editor) AddRowHandler(c echo.Context) error {
	if !h.Store.AddRow(c.Param("id")) {
		return notFound(c, "section")
	}
	return c.JSON(http.StatusCreated, h.Store.Document())
}

// UpdateRowHandler sets the label or value of one row
func (h *Editor) UpdateRowHandler(c echo.Context) error {
	index, ok := paramIndex(c, "index")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "row index must be a number")
	}
	var req rowFieldRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Field != models.RowFieldLabel && req.Field != models.RowFieldValue {
		return errorJSON(c, http.StatusBadRequest, "field must be label or value")
	}
	if !h.Store.UpdateRow(c.Param("id"), index, req.Field, req.Value) {
		return notFound(c, "row")
	}
	return h.document(c)
}

// RemoveRowHandler deletes one row from a section
func (h *Editor) RemoveRowHandler(c echo.Context) error {
	index, ok := paramIndex(c, "index")
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "row index must be a number")
	}
	if !h.Store.RemoveRow(c.Param("id"), index) {
		return notFound(c, "row")
	}
	return h.document(c)
}
