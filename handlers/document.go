package handlers

import (
	"net/http"

	"datasheet_studio_go/models"
	"datasheet_studio_go/services"
	"datasheet_studio_go/templates/pages"

	"github.com/labstack/echo/v4"
)

type themeRequest struct {
	Theme models.ThemeType `json:"theme"`
}

type colorRequest struct {
	Color models.BrandColor `json:"color"`
}

type textRequest struct {
	Value string `json:"value"`
}

// GetDocumentHandler returns the whole editor document
func (h *Editor) GetDocumentHandler(c echo.Context) error {
	return h.document(c)
}

// GetPagesHandler returns the gallery pagination of the current document
func (h *Editor) GetPagesHandler(c echo.Context) error {
	doc := h.Store.Document()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"maxPageHeight": services.MaxPageHeight,
		"pages":         services.LayoutGallery(doc.GalleryImages, services.MaxPageHeight),
	})
}

// UpdateThemeHandler switches the page theme
func (h *Editor) UpdateThemeHandler(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil || !models.IsValidTheme(req.Theme) {
		return errorJSON(c, http.StatusBadRequest, "theme must be one of sharp, angle, minimal")
	}
	h.Store.SetTheme(req.Theme)
	return h.document(c)
}

// UpdateColorHandler switches the brand color
func (h *Editor) UpdateColorHandler(c echo.Context) error {
	var req colorRequest
	if err := c.Bind(&req); err != nil || !models.IsValidColor(req.Color) {
		return errorJSON(c, http.StatusBadRequest, "color must be one of forest, yellow, steel")
	}
	h.Store.SetColor(req.Color)
	return h.document(c)
}

// UpdatePageOneTextHandler sets one cover page text field
func (h *Editor) UpdatePageOneTextHandler(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !h.Store.UpdatePageOneText(c.Param("field"), req.Value) {
		return notFound(c, "text field")
	}
	return h.document(c)
}

// UpdatePageTwoTextHandler sets one spec page text field
func (h *Editor) UpdatePageTwoTextHandler(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if !h.Store.UpdatePageTwoText(c.Param("field"), req.Value) {
		return notFound(c, "text field")
	}
	return h.document(c)
}

// ResetDocumentHandler discards all edits. The caller must confirm with ?confirm=true.
func (h *Editor) ResetDocumentHandler(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return errorJSON(c, http.StatusBadRequest, "reset discards all changes; repeat with confirm=true")
	}
	if err := h.Store.Reset(c.Request().Context()); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to clear saved document")
	}
	return h.document(c)
}

// PreviewHandler renders the document as the print document sent to the PDF service
func (h *Editor) PreviewHandler(c echo.Context) error {
	return render(c, pages.Preview(h.Store.Document()))
}
