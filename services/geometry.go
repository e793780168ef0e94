package services

import (
	"math"

	"datasheet_studio_go/models"
)

const (
	// PanSensitivity converts pointer pixels into object-position percent
	PanSensitivity = 0.2
	// ZoomStep is the scale change per wheel delta unit
	ZoomStep = 0.001
	// ResizeReferenceWidth is the usable page width in pixels that a 100% slot spans
	ResizeReferenceWidth = 700.0
)

// Clamp limits v to [min, max]. NaN collapses to min.
func Clamp(v, min, max float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	return math.Min(math.Max(v, min), max)
}

// Pan moves the crop focus opposite to the pointer drag
func Pan(slot models.ImageSlot, dx, dy, sensitivity float64) models.ImageSlot {
	slot.PosX = Clamp(slot.PosX-dx*sensitivity, models.MinPos, models.MaxPos)
	slot.PosY = Clamp(slot.PosY-dy*sensitivity, models.MinPos, models.MaxPos)
	return slot
}

// Zoom applies a wheel delta. Negative deltaY (scrolling up) zooms in.
func Zoom(slot models.ImageSlot, wheelDeltaY float64) models.ImageSlot {
	slot.Scale = Clamp(slot.Scale+(-wheelDeltaY*ZoomStep), models.MinScale, models.MaxScale)
	return slot
}

// ResizeWidth grows the percentage width by a pixel delta measured against referenceWidth
func ResizeWidth(slot models.ImageSlot, dxPixels, referenceWidth, min, max float64) models.ImageSlot {
	if referenceWidth <= 0 {
		slot.Width = Clamp(slot.Width, min, max)
		return slot
	}
	slot.Width = Clamp(slot.Width+(dxPixels/referenceWidth)*100, min, max)
	return slot
}

// ResizeHeight grows the pixel height by dyPixels
func ResizeHeight(slot models.ImageSlot, dyPixels, min, max float64) models.ImageSlot {
	slot.Height = Clamp(slot.Height+dyPixels, min, max)
	return slot
}

// NormalizeSlot clamps every numeric field of the slot into its domain
func NormalizeSlot(slot models.ImageSlot, bounds models.SlotBounds) models.ImageSlot {
	slot.Width = Clamp(slot.Width, bounds.MinWidth, bounds.MaxWidth)
	slot.Height = Clamp(slot.Height, bounds.MinHeight, bounds.MaxHeight)
	slot.PosX = Clamp(slot.PosX, models.MinPos, models.MaxPos)
	slot.PosY = Clamp(slot.PosY, models.MinPos, models.MaxPos)
	slot.Scale = Clamp(slot.Scale, models.MinScale, models.MaxScale)
	return slot
}

// GeometryPatch carries the geometry fields a gesture changed; nil fields are untouched
type GeometryPatch struct {
	PosX   *float64 `json:"posX,omitempty"`
	PosY   *float64 `json:"posY,omitempty"`
	Scale  *float64 `json:"scale,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p GeometryPatch) IsEmpty() bool {
	return p.PosX == nil && p.PosY == nil && p.Scale == nil && p.Width == nil && p.Height == nil
}

// ApplyTo merges the patch into slot and clamps the result into bounds
func (p GeometryPatch) ApplyTo(slot models.ImageSlot, bounds models.SlotBounds) models.ImageSlot {
	if p.PosX != nil {
		slot.PosX = *p.PosX
	}
	if p.PosY != nil {
		slot.PosY = *p.PosY
	}
	if p.Scale != nil {
		slot.Scale = *p.Scale
	}
	if p.Width != nil {
		slot.Width = *p.Width
	}
	if p.Height != nil {
		slot.Height = *p.Height
	}
	return NormalizeSlot(slot, bounds)
}

func floatPtr(v float64) *float64 {
	return &v
}
