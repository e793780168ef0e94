package services

import (
	"testing"

	"datasheet_studio_go/models"

	"github.com/stretchr/testify/assert"
)

func newTestController(t *testing.T) (*GestureController, *DocumentStore) {
	store, _ := newTestStore(t)
	return NewGestureController(store, NewWindowEvents()), store
}

func TestPanGestureIsAnchorRelative(t *testing.T) {
	g, store := newTestController(t)

	assert.True(t, g.PointerDown("img-0", TargetSurface, 100, 100))
	state := g.State()
	assert.Equal(t, GesturePanning, state.Kind)
	assert.Equal(t, "img-0", state.SlotID)
	assert.Equal(t, Anchor{PointerX: 100, PointerY: 100, PosX: 50, PosY: 50, Width: 50, Height: 300}, *state.Anchor)
	assert.Equal(t, 1, g.Window().Listeners())

	// Many small moves end where a single move to the same point would
	for x := 101.0; x <= 150; x++ {
		g.PointerMove(x, 100-(x-100)/2)
	}
	slot, _ := store.Slot("img-0")
	assert.InDelta(t, 40.0, slot.PosX, 1e-9)
	assert.InDelta(t, 55.0, slot.PosY, 1e-9)

	// Moving back to the anchor restores the starting position
	g.PointerMove(100, 100)
	slot, _ = store.Slot("img-0")
	assert.Equal(t, 50.0, slot.PosX)
	assert.Equal(t, 50.0, slot.PosY)

	g.PointerUp()
	assert.Equal(t, GestureIdle, g.State().Kind)
	assert.Nil(t, g.State().Anchor)
	assert.Equal(t, 0, g.Window().Listeners())
}

func TestPanGestureClamps(t *testing.T) {
	g, store := newTestController(t)

	g.PointerDown("img-2", TargetSurface, 0, 0)
	g.PointerMove(-100000, 100000)
	g.PointerUp()

	slot, _ := store.Slot("img-2")
	assert.Equal(t, 100.0, slot.PosX)
	assert.Equal(t, 0.0, slot.PosY)
}

func TestResizeGesture(t *testing.T) {
	g, store := newTestController(t)

	assert.True(t, g.PointerDown("img-1", TargetResizeHandle, 10, 10))
	assert.Equal(t, GestureResizing, g.State().Kind)

	g.PointerMove(80, 60)
	slot, _ := store.Slot("img-1")
	assert.InDelta(t, 60.0, slot.Width, 1e-9)
	assert.Equal(t, 350.0, slot.Height)

	g.PointerMove(-5000, -5000)
	slot, _ = store.Slot("img-1")
	assert.Equal(t, models.GalleryBounds.MinWidth, slot.Width)
	assert.Equal(t, models.GalleryBounds.MinHeight, slot.Height)

	// Pan fields are untouched by a resize
	assert.Equal(t, 50.0, slot.PosX)
	g.PointerUp()
}

func TestResizeHeroUsesHeroBounds(t *testing.T) {
	g, store := newTestController(t)

	g.PointerDown(models.HeroSlotID, TargetResizeHandle, 0, 0)
	g.PointerMove(-5000, 5000)
	g.PointerUp()

	hero := store.Document().HeroImage
	assert.Equal(t, models.HeroBounds.MinWidth, hero.Width)
	assert.Equal(t, models.HeroBounds.MaxHeight, hero.Height)
}

func TestSingleActiveGesture(t *testing.T) {
	g, store := newTestController(t)

	assert.True(t, g.PointerDown("img-0", TargetSurface, 0, 0))
	assert.False(t, g.PointerDown("img-1", TargetResizeHandle, 0, 0))
	assert.False(t, g.PointerDown("img-0", TargetSurface, 0, 0))
	assert.Equal(t, "img-0", g.State().SlotID)
	assert.Equal(t, 1, g.Window().Listeners())

	g.PointerMove(10, 0)
	other, _ := store.Slot("img-1")
	assert.Equal(t, models.NewGallerySlot("img-1"), other)

	g.PointerUp()
	assert.True(t, g.PointerDown("img-1", TargetResizeHandle, 0, 0))
	g.PointerUp()
}

func TestPointerDownIgnoredTargets(t *testing.T) {
	g, _ := newTestController(t)

	assert.False(t, g.PointerDown("img-0", TargetUploadControl, 0, 0))
	assert.False(t, g.PointerDown("img-0", TargetReorderHandle, 0, 0))
	assert.False(t, g.PointerDown("img-0", "unknown", 0, 0))
	assert.False(t, g.PointerDown("missing", TargetSurface, 0, 0))
	assert.Equal(t, GestureIdle, g.State().Kind)
	assert.Equal(t, 0, g.Window().Listeners())
}

func TestMoveAndUpWhileIdle(t *testing.T) {
	g, store := newTestController(t)
	before := store.Document()

	g.PointerMove(500, 500)
	g.PointerUp()
	assert.Equal(t, before, store.Document())
	assert.Equal(t, GestureIdle, g.State().Kind)
}

func TestGestureOnDeletedSlotIsHarmless(t *testing.T) {
	g, store := newTestController(t)

	g.PointerDown("img-3", TargetSurface, 0, 0)
	store.SetGalleryCount(2)
	g.PointerMove(40, 40)
	g.PointerUp()

	assert.Len(t, store.Document().GalleryImages, 2)
	assert.Equal(t, GestureIdle, g.State().Kind)
}

func TestWheelZoomsIndependently(t *testing.T) {
	g, store := newTestController(t)

	assert.True(t, g.Wheel("img-0", -500))
	slot, _ := store.Slot("img-0")
	assert.InDelta(t, 1.5, slot.Scale, 1e-9)

	// Wheel works mid-gesture and leaves the gesture alone
	g.PointerDown("img-1", TargetSurface, 0, 0)
	assert.True(t, g.Wheel("img-1", -100000))
	slot, _ = store.Slot("img-1")
	assert.Equal(t, 3.0, slot.Scale)
	assert.Equal(t, GesturePanning, g.State().Kind)
	g.PointerUp()

	assert.True(t, g.Wheel("img-1", 100000))
	slot, _ = store.Slot("img-1")
	assert.Equal(t, 1.0, slot.Scale)

	assert.False(t, g.Wheel("missing", -100))
}

func TestWindowEventsRelease(t *testing.T) {
	w := NewWindowEvents()
	moves := 0
	ups := 0

	release := w.Listen(func(x, y float64) { moves++ }, func() { ups++ })
	w.DispatchMove(1, 1)
	w.DispatchUp()
	release()
	release()
	w.DispatchMove(1, 1)
	w.DispatchUp()

	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, ups)
	assert.Equal(t, 0, w.Listeners())
}

func TestGestureRegistry(t *testing.T) {
	store, _ := newTestStore(t)
	r := NewGestureRegistry(store)

	a, ok := r.Controller("gallery-0")
	assert.True(t, ok)
	again, _ := r.Controller("gallery-0")
	assert.Same(t, a, again)
	b, ok := r.Controller(PageOneContext)
	assert.True(t, ok)
	assert.NotSame(t, a, b)

	// Gestures on different pages do not block each other
	assert.True(t, a.PointerDown("img-0", TargetSurface, 0, 0))
	assert.True(t, b.PointerDown(models.HeroSlotID, TargetSurface, 0, 0))
	a.PointerUp()
	b.PointerUp()
}

func TestGestureRegistryRejectsUnknownPages(t *testing.T) {
	store, _ := newTestStore(t)
	r := NewGestureRegistry(store)

	for _, page := range []string{"", "cover", "gallery-", "gallery-10", "gallery--1", "gallery-01", "gallery-x", "page-two"} {
		c, ok := r.Controller(page)
		assert.False(t, ok, page)
		assert.Nil(t, c, page)
	}
	assert.Empty(t, r.controllers)

	for _, page := range []string{"page-one", "gallery-0", "gallery-9"} {
		assert.True(t, IsGesturePage(page), page)
	}
}
