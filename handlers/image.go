package handlers

import (
	"errors"
	"log"
	"net/http"

	"datasheet_studio_go/services"

	"github.com/labstack/echo/v4"
)

// UpdateSlotHandler applies a partial geometry/image patch to one slot
func (h *Editor) UpdateSlotHandler(c echo.Context) error {
	id := c.Param("id")
	var patch services.SlotPatch
	if err := c.Bind(&patch); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if patch.Image != nil && !patch.ClearImage && !services.IsImageDataURI(*patch.Image) {
		return errorJSON(c, http.StatusBadRequest, "image must be a PNG, JPEG, GIF or WebP data URI")
	}
	if _, ok := h.Store.Slot(id); !ok {
		return notFound(c, "image slot")
	}
	h.Store.UpdateSlot(id, patch)

	slot, _ := h.Store.Slot(id)
	return c.JSON(http.StatusOK, slot)
}

// UploadSlotImageHandler replaces a slot image with the uploaded file
func (h *Editor) UploadSlotImageHandler(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.Store.Slot(id); !ok {
		return notFound(c, "image slot")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, services.ErrImageUploadRequired.Error())
	}

	upload, err := services.ImageFromUpload(fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImageTooLarge):
			return errorJSON(c, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, services.ErrUnsupportedImage), errors.Is(err, services.ErrImageUploadRequired):
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		log.Printf("[ERROR] Image upload for slot %s failed: %v", id, err)
		return errorJSON(c, http.StatusBadRequest, "could not read image")
	}

	if !h.Store.UpdateSlot(id, services.SlotPatch{Image: &upload.DataURI}) {
		return notFound(c, "image slot")
	}
	log.Printf("[INFO] Slot %s image replaced (%s, %dx%d)", id, upload.MimeType, upload.Width, upload.Height)

	slot, _ := h.Store.Slot(id)
	return c.JSON(http.StatusOK, slot)
}

// ClearSlotImageHandler removes the image from a slot, keeping its geometry
func (h *Editor) ClearSlotImageHandler(c echo.Context) error {
	id := c.Param("id")
	if !h.Store.UpdateSlot(id, services.SlotPatch{ClearImage: true}) {
		return notFound(c, "image slot")
	}
	slot, _ := h.Store.Slot(id)
	return c.JSON(http.StatusOK, slot)
}
