package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"datasheet_studio_go/services"

	"github.com/labstack/echo/v4"
)

// MaxHTMLBodySize bounds the posted document; embedded images make it large
const MaxHTMLBodySize = 50 * 1024 * 1024 // 50MB

// GeneratePDFHandler renders posted container markup into an A4 PDF
func GeneratePDFHandler(svc *services.PDFService) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxHTMLBodySize+1))
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "failed to read request body")
		}
		if len(body) > MaxHTMLBodySize {
			return errorJSON(c, http.StatusRequestEntityTooLarge, "HTML content exceeds 50MB")
		}

		rendered, err := svc.Generate(c.Request().Context(), string(body))
		if err != nil {
			if errors.Is(err, services.ErrHTMLRequired) {
				return errorJSON(c, http.StatusBadRequest, err.Error())
			}
			log.Printf("[ERROR] PDF generation failed: %v", err)
			return errorJSON(c, http.StatusInternalServerError, err.Error())
		}

		log.Printf("[INFO] PDF generated: %d pages, %d bytes", rendered.PageCount, len(rendered.Data))
		return sendPDF(c, rendered.Data, rendered.PageCount)
	}
}

func sendPDF(c echo.Context, pdf []byte, pageCount int) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.DatasheetFileName)
	c.Response().Header().Set("X-Page-Count", strconv.Itoa(pageCount))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// HealthHandler reports that the PDF service is up
func HealthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
