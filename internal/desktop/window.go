package desktop

import (
	"image/color"

	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/screen"
)

// WindowOptions describes a window to create.
type WindowOptions struct {
	Title         string
	Type          frame.WindowType
	Rect          geom.Rect
	Icon          *bitmap.Bitmap
	Frameless     bool
	Fixed         bool // neither resizable nor maximizable
	Unminimizable bool
	Immovable     bool
	Modified      bool
	Menus         []string
	Background    color.RGBA
}

// Window is a client window: a content rect filled with one colour, plus
// its frame.
type Window struct {
	id      int
	manager *Manager
	frame   *frame.Frame

	title      string
	typ        frame.WindowType
	rect       geom.Rect
	icon       *bitmap.Bitmap
	background color.RGBA

	frameless   bool
	fullscreen  bool
	maximized   bool
	minimized   bool
	tiled       frame.TileType
	restoreRect geom.Rect

	resizable   bool
	minimizable bool
	movable     bool
	modified    bool

	menubar     *Menubar
	showMenubar bool
	modal       *Window
}

var _ frame.Window = (*Window)(nil)

func (w *Window) ID() int                 { return w.id }
func (w *Window) Frame() *frame.Frame     { return w.frame }
func (w *Window) Rect() geom.Rect         { return w.rect }
func (w *Window) Type() frame.WindowType  { return w.typ }
func (w *Window) Title() string           { return w.title }
func (w *Window) Icon() *bitmap.Bitmap    { return w.icon }
func (w *Window) IsFrameless() bool       { return w.frameless }
func (w *Window) IsFullscreen() bool      { return w.fullscreen }
func (w *Window) IsMaximized() bool       { return w.maximized }
func (w *Window) IsMinimized() bool       { return w.minimized }
func (w *Window) Tiled() frame.TileType   { return w.tiled }
func (w *Window) IsResizable() bool       { return w.resizable }
func (w *Window) IsMinimizable() bool     { return w.minimizable }
func (w *Window) IsMovable() bool         { return w.movable }
func (w *Window) IsModified() bool        { return w.modified }
func (w *Window) IsOpaque() bool          { return w.background.A == 0xff }
func (w *Window) ShouldShowMenubar() bool { return w.menubar != nil && w.showMenubar }
func (w *Window) Background() color.RGBA  { return w.background }

// Menubar returns nil when the window has no menus.
func (w *Window) Menubar() frame.Menubar {
	if w.menubar == nil {
		return nil
	}
	return w.menubar
}

// BlockingModalWindow returns the modal child, if any.
func (w *Window) BlockingModalWindow() frame.Window {
	if w.modal == nil || w.modal.manager == nil {
		return nil
	}
	return w.modal
}

// SetModal makes child block input to w. A nil child unblocks it.
func (w *Window) SetModal(child *Window) {
	w.modal = child
}

// SetMenubarVisible shows or hides the menu bar and relayouts the frame.
func (w *Window) SetMenubarVisible(visible bool) {
	if w.showMenubar == visible {
		return
	}
	old := w.rect
	w.showMenubar = visible
	w.frame.WindowRectChanged(old, w.rect)
}

// SetTitle changes the title and repaints the title bar.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.frame.InvalidateTitlebar()
}

// SetModified swaps the close button icon.
func (w *Window) SetModified(modified bool) {
	if w.modified == modified {
		return
	}
	w.modified = modified
	w.frame.SetButtonIcons()
	w.frame.Invalidate()
}

// SetFullscreen hides the frame and fills the closest screen.
func (w *Window) SetFullscreen(fullscreen bool) {
	if w.fullscreen == fullscreen {
		return
	}
	w.fullscreen = fullscreen
	if fullscreen {
		w.restoreRect = w.rect
		if scr := w.manager.screens.ClosestToRect(w.rect); scr != nil {
			w.setRect(scr.Rect)
		}
		return
	}
	w.setRect(w.restoreRect)
}

func (w *Window) HandleWindowMenuAction(action frame.WindowMenuAction) {
	m := w.manager
	switch action {
	case frame.ActionClose:
		m.Remove(w)
	case frame.ActionMaximizeOrRestore:
		m.SetMaximized(w, !w.maximized)
	case frame.ActionMinimizeOrUnminimize:
		m.SetMinimized(w, !w.minimized)
	}
}

func (w *Window) SetVerticallyMaximized() {
	m := w.manager
	if w.maximized || !w.resizable {
		return
	}
	scr := m.screens.ClosestToRect(w.rect)
	if scr == nil {
		return
	}
	insets := w.frameInsets()
	usable := scr.Usable()
	r := w.rect
	r.Y = usable.Y + insets.top
	r.Height = max(1, usable.Height-insets.top-insets.bottom)
	w.setRect(r)
}

func (w *Window) PopupWindowMenu(at geom.Point, def frame.WindowMenuDefaultAction) {
	w.manager.popupWindowMenu(w, at, def)
}

func (w *Window) WindowMenuActivateDefault() {
	m := w.manager
	menu := m.windowMenu
	if menu == nil {
		menu = m.recentWindowMenu
	}
	def := frame.DefaultNone
	if menu != nil && menu.Window == w {
		def = menu.Default
	}
	m.closeWindowMenu()
	m.recentWindowMenu = nil
	switch def {
	case frame.DefaultClose:
		w.HandleWindowMenuAction(frame.ActionClose)
	case frame.DefaultMinimize:
		m.SetMinimized(w, true)
	case frame.DefaultMaximize:
		m.SetMaximized(w, true)
	case frame.DefaultRestore:
		m.SetMaximized(w, false)
	case frame.DefaultNone:
	}
}

type insets struct {
	left, top, right, bottom int
}

func (w *Window) frameInsets() insets {
	fr := w.frame.Rect()
	return insets{
		left:   w.rect.X - fr.X,
		top:    w.rect.Y - fr.Y,
		right:  fr.Right() - w.rect.Right(),
		bottom: fr.Bottom() - w.rect.Bottom(),
	}
}

// contentFor is the window rect whose frame exactly fills outer.
func (w *Window) contentFor(outer geom.Rect) geom.Rect {
	in := w.frameInsets()
	return geom.Rect{
		X:      outer.X + in.left,
		Y:      outer.Y + in.top,
		Width:  max(1, outer.Width-in.left-in.right),
		Height: max(1, outer.Height-in.top-in.bottom),
	}
}

func (w *Window) setRect(r geom.Rect) {
	if r == w.rect {
		return
	}
	old := w.rect
	w.rect = r
	w.frame.WindowRectChanged(old, r)
}

// Paint draws the content and then the frame.
func (w *Window) Paint(scr *screen.Screen, p *bitmap.Painter, rect geom.Rect) {
	if content := w.rect.Intersected(rect); !content.IsEmpty() {
		p.FillRect(content, w.background)
	}
	if !w.fullscreen {
		w.frame.Paint(scr, p, rect)
	}
}

func (w *Window) RenderRect() geom.Rect {
	if w.fullscreen {
		return w.rect
	}
	return w.frame.RenderRect()
}

func (w *Window) OpaqueRects() geom.RectSet {
	if w.fullscreen {
		if w.IsOpaque() {
			return geom.NewRectSet(w.rect)
		}
		return geom.RectSet{}
	}
	return w.frame.OpaqueRenderRects()
}
