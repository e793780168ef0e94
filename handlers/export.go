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

const defaultExportListLimit = 20

// ExportDocumentHandler renders the current document to PDF in-process
func (h *Editor) ExportDocumentHandler(c echo.Context) error {
	if h.Exporter == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "export is not configured")
	}

	result, err := h.Exporter.Export(c.Request().Context(), h.Store.Document())
	if err != nil {
		if errors.Is(err, services.ErrExportInProgress) {
			return errorJSON(c, http.StatusConflict, err.Error())
		}
		log.Printf("[ERROR] Datasheet export failed: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to export PDF. Please try again.")
	}

	if result.Record != nil {
		c.Response().Header().Set("X-Export-ID", result.Record.ID)
	}
	return sendPDF(c, result.PDF, result.PageCount)
}

// ExportStatusHandler reports whether an export is running
func (h *Editor) ExportStatusHandler(c echo.Context) error {
	exporting := h.Exporter != nil && h.Exporter.IsExporting()
	return c.JSON(http.StatusOK, map[string]bool{"exporting": exporting})
}

// ListExportsHandler lists archived exports, newest first
func (h *Editor) ListExportsHandler(c echo.Context) error {
	if h.Archive == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "export archive is not configured")
	}

	limit := defaultExportListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return errorJSON(c, http.StatusBadRequest, "limit must be a positive number")
		}
		limit = n
	}

	records, err := h.Archive.List(c.Request().Context(), limit)
	if err != nil {
		log.Printf("[ERROR] Failed to list exports: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to list exports")
	}
	return c.JSON(http.StatusOK, records)
}

// DownloadExportHandler redirects to a signed URL for remote storage, or streams the file
func (h *Editor) DownloadExportHandler(c echo.Context) error {
	if h.Archive == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "export archive is not configured")
	}
	ctx := c.Request().Context()

	record, err := h.Archive.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrExportNotFound) {
			return notFound(c, "export")
		}
		return errorJSON(c, http.StatusInternalServerError, "failed to load export")
	}

	url, err := h.Archive.SignedURL(ctx, record)
	if err != nil {
		log.Printf("[ERROR] Failed to sign export %s: %v", record.ID, err)
		return errorJSON(c, http.StatusInternalServerError, "failed to generate download link")
	}
	if url != "" {
		return c.Redirect(http.StatusFound, url)
	}

	reader, contentType, err := h.Archive.Open(ctx, record)
	if err != nil {
		log.Printf("[ERROR] Failed to open export %s: %v", record.ID, err)
		return notFound(c, "export file")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+record.FileName)
	c.Response().Header().Set("X-Page-Count", strconv.Itoa(record.PageCount))
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response().Writer, reader)
	return err
}
