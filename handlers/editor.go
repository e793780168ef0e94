package handlers

import (
	"net/http"
	"strconv"

	"datasheet_studio_go/services"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Editor holds the single editor document and the services the API drives
type Editor struct {
	Store    *services.DocumentStore
	Gestures *services.GestureRegistry
	Exporter *services.DatasheetExporter // nil disables in-process export
	Archive  *services.ExportArchive     // nil disables the export archive
}

func NewEditor(store *services.DocumentStore, exporter *services.DatasheetExporter, archive *services.ExportArchive) *Editor {
	return &Editor{
		Store:    store,
		Gestures: services.NewGestureRegistry(store),
		Exporter: exporter,
		Archive:  archive,
	}
}

func render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"error": message})
}

func notFound(c echo.Context, what string) error {
	return errorJSON(c, http.StatusNotFound, what+" not found")
}

// document answers with the current document
func (h *Editor) document(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Document())
}

func paramIndex(c echo.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}
	return n, true
}
