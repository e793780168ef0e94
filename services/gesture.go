package services

import (
	"strconv"
	"strings"
	"sync"

	"datasheet_studio_go/models"
)

// GestureKind is the state of a gesture controller
type GestureKind string

const (
	GestureIdle     GestureKind = "idle"
	GesturePanning  GestureKind = "panning"
	GestureResizing GestureKind = "resizing"
)

// PointerTarget is the element a pointer-down landed on
type PointerTarget string

const (
	TargetSurface       PointerTarget = "surface"        // pannable image area
	TargetResizeHandle  PointerTarget = "resize-handle"  // bottom-right corner handle
	TargetUploadControl PointerTarget = "upload-control" // file input over the image
	TargetReorderHandle PointerTarget = "reorder-handle" // drag-to-reorder grip
)

// Anchor is the pointer position and slot geometry captured when a gesture starts
type Anchor struct {
	PointerX float64 `json:"pointerX"`
	PointerY float64 `json:"pointerY"`
	PosX     float64 `json:"posX"`
	PosY     float64 `json:"posY"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// GestureState is a snapshot of the controller state
type GestureState struct {
	Kind   GestureKind `json:"kind"`
	SlotID string      `json:"slotId,omitempty"`
	Anchor *Anchor     `json:"anchor,omitempty"`
}

// GeometryTarget receives geometry patches and resolves slots for anchoring.
// DocumentStore implements it.
type GeometryTarget interface {
	Slot(id string) (models.ImageSlot, bool)
	ApplyGeometry(id string, patch GeometryPatch) bool
}

// WindowEvents is the page-level pointer stream. A gesture subscribes to it for its
// whole lifetime so pointer-up is seen wherever it happens.
type WindowEvents struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]windowSub
}

type windowSub struct {
	move func(x, y float64)
	up   func()
}

func NewWindowEvents() *WindowEvents {
	return &WindowEvents{subs: make(map[int]windowSub)}
}

// Listen registers a move/up listener pair and returns its release func.
// Release is safe to call more than once.
func (w *WindowEvents) Listen(move func(x, y float64), up func()) (release func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = windowSub{move: move, up: up}
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

// Listeners returns the number of active subscriptions
func (w *WindowEvents) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// DispatchMove delivers a pointer move to every listener
func (w *WindowEvents) DispatchMove(x, y float64) {
	for _, sub := range w.snapshot() {
		sub.move(x, y)
	}
}

// DispatchUp delivers a pointer release to every listener
func (w *WindowEvents) DispatchUp() {
	for _, sub := range w.snapshot() {
		sub.up()
	}
}

func (w *WindowEvents) snapshot() []windowSub {
	w.mu.Lock()
	defer w.mu.Unlock()
	subs := make([]windowSub, 0, len(w.subs))
	for _, sub := range w.subs {
		subs = append(subs, sub)
	}
	return subs
}

// GestureController turns pointer input into geometry patches, one gesture at a time
type GestureController struct {
	mu      sync.Mutex
	target  GeometryTarget
	window  *WindowEvents
	state   GestureState
	release func()
}

func NewGestureController(target GeometryTarget, window *WindowEvents) *GestureController {
	if window == nil {
		window = NewWindowEvents()
	}
	return &GestureController{
		target: target,
		window: window,
		state:  GestureState{Kind: GestureIdle},
	}
}

// Window returns the page-level event stream the controller listens on
func (g *GestureController) Window() *WindowEvents {
	return g.window
}

// State returns a copy of the current state
func (g *GestureController) State() GestureState {
	g.mu.Lock()
	defer g.mu.Unlock()
	state := g.state
	if state.Anchor != nil {
		anchor := *state.Anchor
		state.Anchor = &anchor
	}
	return state
}

// PointerDown starts a pan or resize on slotID. It only succeeds from idle.
func (g *GestureController) PointerDown(slotID string, target PointerTarget, x, y float64) bool {
	var kind GestureKind
	switch target {
	case TargetSurface:
		kind = GesturePanning
	case TargetResizeHandle:
		kind = GestureResizing
	default:
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Kind != GestureIdle {
		return false
	}
	slot, ok := g.target.Slot(slotID)
	if !ok {
		return false
	}

	g.state = GestureState{
		Kind:   kind,
		SlotID: slotID,
		Anchor: &Anchor{
			PointerX: x,
			PointerY: y,
			PosX:     slot.PosX,
			PosY:     slot.PosY,
			Width:    slot.Width,
			Height:   slot.Height,
		},
	}
	g.release = g.window.Listen(g.onMove, g.onUp)
	return true
}

// PointerMove feeds a move into the page-level stream
func (g *GestureController) PointerMove(x, y float64) {
	g.window.DispatchMove(x, y)
}

// PointerUp feeds a release into the page-level stream
func (g *GestureController) PointerUp() {
	g.window.DispatchUp()
}

// Wheel zooms slotID immediately, independent of any active gesture.
// It returns true when the event was consumed and must not reach scroll containers.
func (g *GestureController) Wheel(slotID string, deltaY float64) bool {
	slot, ok := g.target.Slot(slotID)
	if !ok {
		return false
	}
	zoomed := Zoom(slot, deltaY)
	g.target.ApplyGeometry(slotID, GeometryPatch{Scale: floatPtr(zoomed.Scale)})
	return true
}

func (g *GestureController) onMove(x, y float64) {
	g.mu.Lock()
	state := g.state
	g.mu.Unlock()

	if state.Kind == GestureIdle || state.Anchor == nil {
		return
	}
	anchor := *state.Anchor
	dx := x - anchor.PointerX
	dy := y - anchor.PointerY

	// Deltas are measured from the anchor, never from the previous move
	base := models.ImageSlot{PosX: anchor.PosX, PosY: anchor.PosY, Width: anchor.Width, Height: anchor.Height}

	var patch GeometryPatch
	switch state.Kind {
	case GesturePanning:
		panned := Pan(base, dx, dy, PanSensitivity)
		patch = GeometryPatch{PosX: floatPtr(panned.PosX), PosY: floatPtr(panned.PosY)}
	case GestureResizing:
		bounds := models.BoundsFor(state.SlotID)
		resized := ResizeWidth(base, dx, ResizeReferenceWidth, bounds.MinWidth, bounds.MaxWidth)
		resized = ResizeHeight(resized, dy, bounds.MinHeight, bounds.MaxHeight)
		patch = GeometryPatch{Width: floatPtr(resized.Width), Height: floatPtr(resized.Height)}
	}

	g.target.ApplyGeometry(state.SlotID, patch)
}

func (g *GestureController) onUp() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.release != nil {
		g.release()
		g.release = nil
	}
	g.state = GestureState{Kind: GestureIdle}
}

// GestureRegistry hands out one controller per page context
type GestureRegistry struct {
	mu          sync.Mutex
	target      GeometryTarget
	controllers map[string]*GestureController
}

func NewGestureRegistry(target GeometryTarget) *GestureRegistry {
	return &GestureRegistry{
		target:      target,
		controllers: make(map[string]*GestureController),
	}
}

// Page contexts that own a gesture controller: the cover page and one per gallery page
const (
	PageOneContext       = "page-one"
	GalleryContextPrefix = "gallery-"
)

// IsGesturePage reports whether page names a page that can hold image slots.
// Gallery pages are "gallery-<index>" with index below MaxGallerySlots.
func IsGesturePage(page string) bool {
	if page == PageOneContext {
		return true
	}
	suffix, ok := strings.CutPrefix(page, GalleryContextPrefix)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(suffix)
	return err == nil && n >= 0 && n < MaxGallerySlots && strconv.Itoa(n) == suffix
}

// Controller returns the controller for page, creating it on first use.
// Unknown pages get no controller.
func (r *GestureRegistry) Controller(page string) (*GestureController, bool) {
	if !IsGesturePage(page) {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[page]; ok {
		return c, true
	}
	c := NewGestureController(r.target, NewWindowEvents())
	r.controllers[page] = c
	return c, true
}
