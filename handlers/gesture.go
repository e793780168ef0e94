package handlers

import (
	"net/http"

	"datasheet_studio_go/services"

	"github.com/labstack/echo/v4"
)

// pointerEvent is a pointer or wheel event forwarded from the editor page
type pointerEvent struct {
	SlotID string                 `json:"slotId"`
	Target services.PointerTarget `json:"target"`
	X      float64                `json:"x"`
	Y      float64                `json:"y"`
	DeltaY float64                `json:"deltaY"`
}

type gestureResponse struct {
	Started bool                  `json:"started"`
	State   services.GestureState `json:"state"`
}

func (h *Editor) controller(c echo.Context) (*services.GestureController, bool) {
	return h.Gestures.Controller(c.Param("page"))
}

func bindPointer(c echo.Context) (pointerEvent, error) {
	var ev pointerEvent
	err := c.Bind(&ev)
	return ev, err
}

// PointerDownHandler starts a pan or resize gesture on a slot
func (h *Editor) PointerDownHandler(c echo.Context) error {
	ev, err := bindPointer(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid pointer event")
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return notFound(c, "page")
	}
	started := ctrl.PointerDown(ev.SlotID, ev.Target, ev.X, ev.Y)
	return c.JSON(http.StatusOK, gestureResponse{Started: started, State: ctrl.State()})
}

// PointerMoveHandler feeds a window-level pointer move to the active gesture
func (h *Editor) PointerMoveHandler(c echo.Context) error {
	ev, err := bindPointer(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid pointer event")
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return notFound(c, "page")
	}
	ctrl.PointerMove(ev.X, ev.Y)
	return c.JSON(http.StatusOK, gestureResponse{State: ctrl.State()})
}

// PointerUpHandler ends the active gesture wherever the pointer was released
func (h *Editor) PointerUpHandler(c echo.Context) error {
	ctrl, ok := h.controller(c)
	if !ok {
		return notFound(c, "page")
	}
	ctrl.PointerUp()
	return c.JSON(http.StatusOK, gestureResponse{State: ctrl.State()})
}

// WheelHandler zooms a slot image
func (h *Editor) WheelHandler(c echo.Context) error {
	ev, err := bindPointer(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid wheel event")
	}
	ctrl, ok := h.controller(c)
	if !ok {
		return notFound(c, "page")
	}
	if !ctrl.Wheel(ev.SlotID, ev.DeltaY) {
		return notFound(c, "image slot")
	}
	slot, _ := h.Store.Slot(ev.SlotID)
	return c.JSON(http.StatusOK, slot)
}
