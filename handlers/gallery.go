package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type galleryCountRequest struct {
	Count int `json:"count"`
}

type reorderRequest struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// SetGalleryCountHandler grows or truncates the gallery. Counts outside 0..10 are clamped.
func (h *Editor) SetGalleryCountHandler(c echo.Context) error {
	var req galleryCountRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	h.Store.SetGalleryCount(req.Count)
	return h.document(c)
}

// ReorderGalleryHandler moves the source image in front of the target image
func (h *Editor) ReorderGalleryHandler(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil || req.SourceID == "" || req.TargetID == "" {
		return errorJSON(c, http.StatusBadRequest, "sourceId and targetId are required")
	}
	if req.SourceID != req.TargetID && !h.Store.ReorderGallery(req.SourceID, req.TargetID) {
		return notFound(c, "gallery image")
	}
	return h.document(c)
}
