package desktop

import (
	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
)

// WindowAt returns the topmost window under p and whether p hit its frame
// rather than its content.
func (m *Manager) WindowAt(p geom.Point) (*Window, bool) {
	for i := len(m.windows) - 1; i >= 0; i-- {
		w := m.windows[i]
		if w.minimized {
			continue
		}
		if w.rect.Contains(p) {
			return w, false
		}
		if _, ok := w.frame.HitTest(p); ok {
			return w, true
		}
	}
	return nil, false
}

// ProcessMouseEvent dispatches a pointer event given in screen
// coordinates.
func (m *Manager) ProcessMouseEvent(e input.MouseEvent) {
	if m.drag != nil {
		m.continueDrag(e)
		return
	}

	// The window menu holds the pointer grab: it swallows the release of
	// the press that opened it, and any later press dismisses it.
	if m.windowMenu != nil {
		switch e.Type {
		case input.MouseUp:
			if m.windowMenuGrabbed {
				m.windowMenuGrabbed = false
				return
			}
		case input.MouseDown:
			m.closeWindowMenu()
			return
		case input.MouseMove:
			return
		}
	}

	w, onFrame := m.WindowAt(e.Position)
	if !onFrame && m.candidate != frame.ResizeNone {
		m.setCandidate(nil, frame.ResizeNone)
	}
	if e.Type == input.MouseDown && m.currentMenu != nil && !m.onMenubar(w, onFrame, e.Position) {
		m.CloseEveryone()
	}
	if w == nil {
		return
	}
	if onFrame {
		origin := w.frame.Rect().Location()
		w.frame.HandleMouseEvent(e.Translated(geom.Point{X: -origin.X, Y: -origin.Y}))
		return
	}
	if e.Type == input.MouseDown {
		m.MoveToFrontAndMakeActive(w)
	}
}

func (m *Manager) onMenubar(w *Window, onFrame bool, p geom.Point) bool {
	if w == nil || !onFrame {
		return false
	}
	mb := w.frame.MenubarRect().TranslatedBy(w.frame.Rect().Location())
	return mb.Contains(p)
}

func (m *Manager) continueDrag(e input.MouseEvent) {
	d := m.drag
	switch e.Type {
	case input.MouseMove:
		delta := e.Position.Sub(d.origin)
		switch d.kind {
		case dragMove:
			if d.window.maximized {
				return
			}
			d.window.setRect(d.start.Translated(delta.X, delta.Y))
		case dragResize:
			d.window.setRect(resized(d.start, d.direction, delta, minimumWindowSize))
		}
	case input.MouseUp:
		if e.Button != input.ButtonLeft {
			return
		}
		m.drag = nil
		if d.kind == dragMove {
			d.window.frame.Invalidate()
		}
		m.comp.InvalidateCursor()
	case input.MouseDown:
	}
}

// resized applies a pointer delta to r along direction d, keeping at least
// minSize and pinning the edges opposite to the dragged ones.
func resized(r geom.Rect, d frame.ResizeDirection, delta geom.Point, minSize geom.Size) geom.Rect {
	left, top, right, bottom := r.Left(), r.Top(), r.Right(), r.Bottom()
	switch d {
	case frame.ResizeLeft, frame.ResizeUpLeft, frame.ResizeDownLeft:
		left = min(left+delta.X, right-minSize.Width)
	case frame.ResizeRight, frame.ResizeUpRight, frame.ResizeDownRight:
		right = max(right+delta.X, left+minSize.Width)
	}
	switch d {
	case frame.ResizeUp, frame.ResizeUpLeft, frame.ResizeUpRight:
		top = min(top+delta.Y, bottom-minSize.Height)
	case frame.ResizeDown, frame.ResizeDownLeft, frame.ResizeDownRight:
		bottom = max(bottom+delta.Y, top+minSize.Height)
	}
	return geom.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}
