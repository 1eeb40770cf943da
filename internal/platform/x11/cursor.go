//go:build linux

package x11

import (
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/1broseidon/winloop/internal/platform"
)

// cursorGlyphs maps cursors onto the core X cursor font. Cursors the font
// has no glyph for fall back to the left pointer.
var cursorGlyphs = map[platform.MouseCursor]uint16{
	platform.CursorDefault:      xcursor.LeftPtr,
	platform.CursorCrosshair:    xcursor.Crosshair,
	platform.CursorHand:         xcursor.Hand2,
	platform.CursorArrow:        xcursor.Arrow,
	platform.CursorMove:         xcursor.Fleur,
	platform.CursorText:         xcursor.XTerm,
	platform.CursorVerticalText: xcursor.XTerm,
	platform.CursorWait:         xcursor.Watch,
	platform.CursorProgress:     xcursor.Watch,
	platform.CursorHelp:         xcursor.QuestionArrow,
	platform.CursorNotAllowed:   xcursor.Circle,
	platform.CursorNoDrop:       xcursor.Circle,
	platform.CursorContextMenu:  xcursor.LeftPtr,
	platform.CursorCell:         xcursor.Plus,
	platform.CursorAlias:        xcursor.LeftPtr,
	platform.CursorCopy:         xcursor.LeftPtr,
	platform.CursorGrab:         xcursor.Hand1,
	platform.CursorGrabbing:     xcursor.Hand1,
	platform.CursorAllScroll:    xcursor.Fleur,
	platform.CursorZoomIn:       xcursor.LeftPtr,
	platform.CursorZoomOut:      xcursor.LeftPtr,
	platform.CursorEResize:      xcursor.RightSide,
	platform.CursorNResize:      xcursor.TopSide,
	platform.CursorNeResize:     xcursor.TopRightCorner,
	platform.CursorNwResize:     xcursor.TopLeftCorner,
	platform.CursorSResize:      xcursor.BottomSide,
	platform.CursorSeResize:     xcursor.BottomRightCorner,
	platform.CursorSwResize:     xcursor.BottomLeftCorner,
	platform.CursorWResize:      xcursor.LeftSide,
	platform.CursorEwResize:     xcursor.SBHDoubleArrow,
	platform.CursorNsResize:     xcursor.SBVDoubleArrow,
	platform.CursorNeswResize:   xcursor.Sizing,
	platform.CursorNwseResize:   xcursor.Sizing,
	platform.CursorColResize:    xcursor.SBHDoubleArrow,
	platform.CursorRowResize:    xcursor.SBVDoubleArrow,
}

func cursorGlyph(c platform.MouseCursor) uint16 {
	if g, ok := cursorGlyphs[c]; ok {
		return g
	}
	return xcursor.LeftPtr
}
