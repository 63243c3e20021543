// Package input models pointer events and the double-click bookkeeping the
// window manager keeps across popup menus.
package input

import (
	"time"

	"github.com/1broseidon/winframe/internal/geom"
)

// EventType distinguishes pointer events.
type EventType int

const (
	MouseMove EventType = iota
	MouseDown
	MouseUp
	MouseDoubleClick
	MouseWheel
)

func (t EventType) String() string {
	switch t {
	case MouseMove:
		return "move"
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	case MouseDoubleClick:
		return "double-click"
	case MouseWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Button identifies a single mouse button. Buttons are also bits of a
// held-buttons mask.
type Button uint8

const (
	ButtonNone   Button = 0
	ButtonLeft   Button = 1 << 0
	ButtonRight  Button = 1 << 1
	ButtonMiddle Button = 1 << 2
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "mask"
	}
}

// MouseEvent is a pointer event. Position is relative to whatever the
// receiver considers its origin; Translated moves it.
type MouseEvent struct {
	Type     EventType
	Position geom.Point
	Button   Button // button that changed state
	Buttons  Button // buttons held after the event
	Time     time.Time
}

// Translated returns e with its position moved by delta.
func (e MouseEvent) Translated(delta geom.Point) MouseEvent {
	e.Position = e.Position.Add(delta)
	return e
}

// X and Y are shorthands for the position coordinates.
func (e MouseEvent) X() int { return e.Position.X }
func (e MouseEvent) Y() int { return e.Position.Y }
