package services

import (
	"math"
	"testing"

	"datasheet_studio_go/models"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(250, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
	assert.Equal(t, 1.0, Clamp(math.NaN(), 1, 3))
	assert.Equal(t, 3.0, Clamp(math.Inf(1), 1, 3))
}

func TestPanStaysInBounds(t *testing.T) {
	slot := models.NewGallerySlot("img-0")
	deltas := []float64{-1e9, -5000, -250, -1, 0, 1, 250, 5000, 1e9}

	for _, dx := range deltas {
		for _, dy := range deltas {
			got := Pan(slot, dx, dy, PanSensitivity)
			assert.GreaterOrEqual(t, got.PosX, 0.0)
			assert.LessOrEqual(t, got.PosX, 100.0)
			assert.GreaterOrEqual(t, got.PosY, 0.0)
			assert.LessOrEqual(t, got.PosY, 100.0)
		}
	}
}

func TestPanMovesOppositeToDrag(t *testing.T) {
	slot := models.NewGallerySlot("img-0")

	got := Pan(slot, 50, -25, PanSensitivity)
	assert.InDelta(t, 40.0, got.PosX, 1e-9)
	assert.InDelta(t, 55.0, got.PosY, 1e-9)

	// Other fields are untouched
	assert.Equal(t, slot.Width, got.Width)
	assert.Equal(t, slot.Scale, got.Scale)
}

func TestZoomBoundsAndMonotonicity(t *testing.T) {
	deltas := []float64{-1e6, -2000, -100, -1, 0, 1, 100, 2000, 1e6}
	scales := []float64{1, 1.5, 2, 2.999, 3}

	for _, scale := range scales {
		slot := models.NewGallerySlot("img-0")
		slot.Scale = scale
		for _, d := range deltas {
			got := Zoom(slot, d)
			assert.GreaterOrEqual(t, got.Scale, 1.0)
			assert.LessOrEqual(t, got.Scale, 3.0)
			if d < 0 {
				assert.GreaterOrEqual(t, got.Scale, scale, "scrolling up must not decrease scale")
			}
			if d > 0 {
				assert.LessOrEqual(t, got.Scale, scale, "scrolling down must not increase scale")
			}
		}
	}
}

func TestZoomStep(t *testing.T) {
	slot := models.NewGallerySlot("img-0")
	got := Zoom(slot, -100)
	assert.InDelta(t, 1.1, got.Scale, 1e-9)
}

func TestResizeWidth(t *testing.T) {
	slot := models.NewGallerySlot("img-0")

	got := ResizeWidth(slot, 70, ResizeReferenceWidth, 20, 100)
	assert.InDelta(t, 60.0, got.Width, 1e-9)

	got = ResizeWidth(slot, -10000, ResizeReferenceWidth, 20, 100)
	assert.Equal(t, 20.0, got.Width)

	got = ResizeWidth(slot, 10000, ResizeReferenceWidth, 20, 100)
	assert.Equal(t, 100.0, got.Width)

	got = ResizeWidth(slot, 70, 0, 20, 100)
	assert.Equal(t, 50.0, got.Width)
}

func TestResizeHeight(t *testing.T) {
	slot := models.NewGallerySlot("img-0")

	assert.Equal(t, 340.0, ResizeHeight(slot, 40, 150, 800).Height)
	assert.Equal(t, 150.0, ResizeHeight(slot, -1000, 150, 800).Height)
	assert.Equal(t, 800.0, ResizeHeight(slot, 1000, 150, 800).Height)
}

func TestGeometryIsPerSlot(t *testing.T) {
	a := models.NewGallerySlot("a")
	b := models.NewGallerySlot("b")

	_ = Pan(a, 100, 100, PanSensitivity)
	_ = Zoom(a, -500)

	assert.Equal(t, models.NewGallerySlot("b"), b)
	assert.Equal(t, models.NewGallerySlot("a"), a)
}

func TestGeometryPatchApplyClamps(t *testing.T) {
	slot := models.DefaultHeroImage()
	patch := GeometryPatch{Width: floatPtr(10), Height: floatPtr(900), Scale: floatPtr(7)}

	got := patch.ApplyTo(slot, models.HeroBounds)
	assert.Equal(t, 50.0, got.Width)
	assert.Equal(t, 600.0, got.Height)
	assert.Equal(t, 3.0, got.Scale)
	assert.Equal(t, 50.0, got.PosX)

	assert.True(t, GeometryPatch{}.IsEmpty())
	assert.False(t, patch.IsEmpty())
}
