package platform

// MouseCursor is the pointer icon shown over a window.
type MouseCursor int

const (
	CursorDefault MouseCursor = iota
	CursorCrosshair
	CursorHand
	CursorArrow
	CursorMove
	CursorText
	CursorWait
	CursorHelp
	CursorProgress
	CursorNotAllowed
	CursorContextMenu
	CursorCell
	CursorVerticalText
	CursorAlias
	CursorCopy
	CursorNoDrop
	CursorGrab
	CursorGrabbing
	CursorAllScroll
	CursorZoomIn
	CursorZoomOut
	CursorEResize
	CursorNResize
	CursorNeResize
	CursorNwResize
	CursorSResize
	CursorSeResize
	CursorSwResize
	CursorWResize
	CursorEwResize
	CursorNsResize
	CursorNeswResize
	CursorNwseResize
	CursorColResize
	CursorRowResize
)

var cursorNames = [...]string{
	CursorDefault:      "default",
	CursorCrosshair:    "crosshair",
	CursorHand:         "hand",
	CursorArrow:        "arrow",
	CursorMove:         "move",
	CursorText:         "text",
	CursorWait:         "wait",
	CursorHelp:         "help",
	CursorProgress:     "progress",
	CursorNotAllowed:   "not-allowed",
	CursorContextMenu:  "context-menu",
	CursorCell:         "cell",
	CursorVerticalText: "vertical-text",
	CursorAlias:        "alias",
	CursorCopy:         "copy",
	CursorNoDrop:       "no-drop",
	CursorGrab:         "grab",
	CursorGrabbing:     "grabbing",
	CursorAllScroll:    "all-scroll",
	CursorZoomIn:       "zoom-in",
	CursorZoomOut:      "zoom-out",
	CursorEResize:      "e-resize",
	CursorNResize:      "n-resize",
	CursorNeResize:     "ne-resize",
	CursorNwResize:     "nw-resize",
	CursorSResize:      "s-resize",
	CursorSeResize:     "se-resize",
	CursorSwResize:     "sw-resize",
	CursorWResize:      "w-resize",
	CursorEwResize:     "ew-resize",
	CursorNsResize:     "ns-resize",
	CursorNeswResize:   "nesw-resize",
	CursorNwseResize:   "nwse-resize",
	CursorColResize:    "col-resize",
	CursorRowResize:    "row-resize",
}

func (c MouseCursor) String() string {
	if c >= 0 && int(c) < len(cursorNames) {
		return cursorNames[c]
	}
	return "default"
}

// ParseMouseCursor is the inverse of MouseCursor.String.
func ParseMouseCursor(name string) (MouseCursor, bool) {
	for i, n := range cursorNames {
		if n == name {
			return MouseCursor(i), true
		}
	}
	return CursorDefault, false
}
