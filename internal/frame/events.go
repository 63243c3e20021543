package frame

import (
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
)

var hotAreas = [3][3]ResizeDirection{
	{ResizeUpLeft, ResizeUp, ResizeUpRight},
	{ResizeLeft, ResizeNone, ResizeRight},
	{ResizeDownLeft, ResizeDown, ResizeDownRight},
}

// ResizeZone maps p onto the 3x3 grid of thirds over outer. The corner
// cells resize diagonally and the center cell does not resize. The first
// and last pixel of each axis always fall in an outer cell.
func ResizeZone(outer geom.Rect, p geom.Point) ResizeDirection {
	row := third(p.Y-outer.Y, outer.Height)
	col := third(p.X-outer.X, outer.Width)
	return hotAreas[row][col]
}

// third returns 0, 1 or 2 for an offset in the near, middle or far third
// of an axis of the given length.
func third(v, length int) int {
	switch {
	case v*3 < length:
		return 0
	case (length-1-v)*3 < length:
		return 2
	default:
		return 1
	}
}

// HandleMouseEvent routes a pointer event whose position is relative to
// Rect. Stages are tried in order: title bar, menu bar, border.
func (f *Frame) HandleMouseEvent(e input.MouseEvent) {
	if f.closed || f.window.IsFullscreen() {
		return
	}
	t := f.window.Type()
	switch t {
	case Normal, ToolWindow, Notification:
	case PopupMenu, Tooltip, Taskbar, Desktop, AppletArea:
		return
	default:
		return
	}

	if (t == Normal || t == ToolWindow) && e.Type == input.MouseDown {
		f.ctx.WM.MoveToFrontAndMakeActive(f.window)
	}
	if f.window.BlockingModalWindow() != nil {
		return
	}

	// Events in the two pixels between the title bar and the content belong
	// to the title bar, not the border.
	titlebar := f.TitlebarRect()
	titlebar.Height += 2
	if titlebar.Contains(e.Position) {
		f.handleTitlebarMouseEvent(e)
		return
	}
	if f.MenubarRect().Contains(e.Position) {
		f.handleMenubarMouseEvent(e)
		return
	}
	f.handleBorderMouseEvent(e)
}

// handleTitlebarIconMouseEvent pops up the window menu. The menu takes the
// pointer grab, so the second click of a double click never reaches us as
// one; the window manager remembers the press and is asked about the
// release instead.
func (f *Frame) handleTitlebarIconMouseEvent(e input.MouseEvent) bool {
	wm := f.ctx.WM
	switch {
	case e.Type == input.MouseDown && (e.Button == input.ButtonLeft || e.Button == input.ButtonRight):
		wm.StartMenuDoubleClick(f.window, e)
		at := f.TitlebarRect().BottomLeft().Add(f.Rect().Location())
		f.window.PopupWindowMenu(at, DefaultClose)
		return true
	case e.Type == input.MouseUp && e.Button == input.ButtonLeft:
		if wm.IsMenuDoubleClick(f.window, e) {
			f.window.WindowMenuActivateDefault()
		}
		return true
	}
	return false
}

func (f *Frame) handleTitlebarMouseEvent(e input.MouseEvent) {
	if f.TitlebarIconRect().Contains(e.Position) {
		if f.handleTitlebarIconMouseEvent(e) {
			return
		}
	}

	for _, b := range f.buttons {
		if b.rect.Contains(e.Position) {
			b.OnMouseEvent(e.Translated(geom.Point{X: -b.rect.X, Y: -b.rect.Y}))
			return
		}
	}

	if e.Type != input.MouseDown {
		return
	}
	t := f.window.Type()
	if (t == Normal || t == ToolWindow) && e.Button == input.ButtonRight {
		def := DefaultMaximize
		if f.window.IsMaximized() {
			def = DefaultRestore
		}
		f.window.PopupWindowMenu(e.Position.Add(f.Rect().Location()), def)
		return
	}
	if f.window.IsMovable() && e.Button == input.ButtonLeft {
		f.ctx.WM.StartWindowMove(f.window, e.Translated(f.Rect().Location()))
	}
}

func (f *Frame) handleBorderMouseEvent(e input.MouseEvent) {
	if !f.window.IsResizable() {
		return
	}
	if e.Type == input.MouseMove && e.Buttons == input.ButtonNone {
		outer := geom.Rect{Width: f.Rect().Width, Height: f.Rect().Height}
		f.ctx.WM.SetResizeCandidate(f.window, ResizeZone(outer, e.Position))
		f.ctx.Compositor.InvalidateCursor()
		return
	}
	if e.Type == input.MouseDown && e.Button == input.ButtonLeft {
		f.ctx.WM.StartWindowResize(f.window, e.Translated(f.Rect().Location()))
	}
}

func (f *Frame) handleMenubarMouseEvent(e input.MouseEvent) {
	mb := f.window.Menubar()
	mm := f.ctx.Menus
	if mb == nil || mm == nil {
		return
	}
	menubar := f.MenubarRect()
	pos := e.Position.Sub(menubar.Location())

	var hovered Menu
	for _, m := range mb.Menus() {
		if m.RectInMenubar().Contains(pos) {
			hovered = m
			f.handleMenuMouseEvent(m, e)
			break
		}
	}
	if hovered == nil && e.Type == input.MouseDown {
		mm.CloseEveryone()
	}
	if hovered != mm.HoveredMenu() {
		mm.SetHoveredMenu(hovered)
		f.InvalidateRect(menubar)
	}
}

func (f *Frame) handleMenuMouseEvent(m Menu, e input.MouseEvent) {
	mm := f.ctx.Menus
	// Once any menu of this window is open, hovering another item opens it.
	hoverWithMenuOpen := e.Type == input.MouseMove && f.ctx.WM.WindowWithActiveMenu() == f.window
	leftDown := e.Type == input.MouseDown && e.Button == input.ButtonLeft
	current := mm.CurrentMenu()
	isCurrent := current != nil && current == m

	if !isCurrent && (hoverWithMenuOpen || leftDown) {
		f.openMenubarMenu(m)
		return
	}
	if isCurrent && leftDown {
		f.InvalidateRect(f.MenubarRect())
		mm.CloseEveryone()
	}
}

func (f *Frame) openMenubarMenu(m Menu) {
	menubar := f.MenubarRect()
	mm := f.ctx.Menus
	mm.CloseEveryone()
	m.MoveTo(m.RectInMenubar().BottomLeft().Add(f.Rect().Location()).Add(menubar.Location()))
	mm.OpenMenu(m)
	f.ctx.WM.SetWindowWithActiveMenu(f.window)
	f.InvalidateRect(menubar)
}
