// Package theme supplies frame metrics and chrome painting for decorated
// windows.
package theme

import (
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
	"golang.org/x/image/font"
)

// WindowType is the chrome family a window is drawn with.
type WindowType int

const (
	Normal WindowType = iota
	ToolWindow
	Notification
	Other
)

func (t WindowType) String() string {
	switch t {
	case Normal:
		return "normal"
	case ToolWindow:
		return "tool"
	case Notification:
		return "notification"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// WindowState selects the colour set used to paint a frame.
type WindowState int

const (
	Active WindowState = iota
	Inactive
	Highlighted
	Moving
)

func (s WindowState) String() string {
	switch s {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Highlighted:
		return "highlighted"
	case Moving:
		return "moving"
	default:
		return "unknown"
	}
}

// FrameParams carries everything a paint routine needs about one window.
// Rects are in screen coordinates; painting happens relative to the frame
// origin, which the caller has already translated to.
type FrameParams struct {
	State          WindowState
	WindowRect     geom.Rect
	Title          string
	Icon           *bitmap.Bitmap
	Palette        *Palette
	LeftmostButton geom.Rect // frame-relative
	MenuRowCount   int
	Modified       bool
}

// Theme computes frame geometry and paints window chrome.
//
// Rects returned by the sub-rect methods are relative to the frame
// rectangle returned by FrameRectForWindow.
type Theme interface {
	FrameRectForWindow(t WindowType, windowRect geom.Rect, pal *Palette, menuRowCount int) geom.Rect
	TitlebarRect(t WindowType, windowRect geom.Rect, pal *Palette) geom.Rect
	TitlebarIconRect(t WindowType, windowRect geom.Rect, pal *Palette) geom.Rect
	TitlebarTextRect(t WindowType, windowRect geom.Rect, pal *Palette) geom.Rect
	MenubarRect(t WindowType, windowRect geom.Rect, pal *Palette, menuRowCount int) geom.Rect
	LayoutButtons(t WindowType, windowRect geom.Rect, pal *Palette, buttonCount int) []geom.Rect

	FrameUsesAlpha(state WindowState, pal *Palette) bool
	FrameAlphaHitThreshold(state WindowState) float64

	PaintNormalFrame(p *bitmap.Painter, params FrameParams)
	PaintToolWindowFrame(p *bitmap.Painter, params FrameParams)
	PaintNotificationFrame(p *bitmap.Painter, params FrameParams)
	PaintButton(p *bitmap.Painter, r geom.Rect, pal *Palette, pressed, hovered bool)

	Font() font.Face
}
