// Package desktop is a small in-memory window manager: a stack of windows
// with frames, focus, move and resize gestures, and menus. It drives the
// frame package the way a real compositor would.
package desktop

import (
	"errors"
	"image/color"
	"slices"
	"time"

	"github.com/1broseidon/winframe/internal/assets"
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/compositor"
	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/1broseidon/winframe/internal/theme"
)

// ErrNoScreens is returned when a manager is built without screens.
var ErrNoScreens = errors.New("no screens configured")

// CursorSink shows the cursor for a resize direction. ResizeNone restores
// the default arrow.
type CursorSink interface {
	SetResizeCursor(d frame.ResizeDirection) error
}

// Config holds everything a Manager needs.
type Config struct {
	Theme      theme.Theme
	Palette    *theme.Palette
	Assets     *assets.Set
	Screens    *screen.Registry
	Compositor *compositor.Compositor
	Scheduler  frame.Scheduler
	Cursor     CursorSink

	FlashPeriod         time.Duration
	DoubleClickInterval time.Duration
	// Clock overrides event timestamps for double click detection.
	Clock func() time.Time
}

// WindowMenu is the open window menu.
type WindowMenu struct {
	Window  *Window
	At      geom.Point
	Default frame.WindowMenuDefaultAction
}

type dragKind int

const (
	dragMove dragKind = iota
	dragResize
)

type drag struct {
	kind      dragKind
	window    *Window
	origin    geom.Point
	start     geom.Rect
	direction frame.ResizeDirection
}

// minimumWindowSize bounds interactive resizing.
var minimumWindowSize = geom.Size{Width: 50, Height: 20}

// Manager owns the window stack, bottom to top. It is used from the control
// thread only.
type Manager struct {
	ctx     *frame.Context
	screens *screen.Registry
	comp    *compositor.Compositor
	cursor  CursorSink

	windows []*Window
	nextID  int

	active    *Window
	highlight *Window
	withMenu  *Window
	candidate frame.ResizeDirection
	candOwner *Window
	drag      *drag

	clicks     *input.DoubleClickTracker
	windowMenu *WindowMenu
	// windowMenuGrabbed is set until the window menu has seen the release
	// of the press that opened it.
	windowMenuGrabbed bool
	// recentWindowMenu outlives the menu itself so that the release ending
	// a double click can still run the menu's default action.
	recentWindowMenu *WindowMenu

	currentMenu *Menu
	hoveredMenu *Menu
}

var (
	_ frame.WindowManager = (*Manager)(nil)
	_ frame.MenuManager   = (*Manager)(nil)
	_ compositor.Layer    = (*Window)(nil)
)

// NewManager builds a manager and wires the compositor's cursor hook.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Screens == nil || cfg.Screens.Len() == 0 {
		return nil, ErrNoScreens
	}
	if cfg.Theme == nil {
		cfg.Theme = theme.NewClassic(0)
	}
	if cfg.Palette == nil {
		cfg.Palette = theme.DefaultPalette()
	}
	comp := cfg.Compositor
	if comp == nil {
		comp = compositor.New(cfg.Screens, color.RGBA{R: 0x3a, G: 0x6e, B: 0xa5, A: 0xff})
	}
	m := &Manager{
		screens: cfg.Screens,
		comp:    comp,
		cursor:  cfg.Cursor,
		clicks:  input.NewDoubleClickTracker(cfg.DoubleClickInterval, cfg.Clock),
	}
	m.ctx = &frame.Context{
		Theme:       cfg.Theme,
		Palette:     cfg.Palette,
		Assets:      cfg.Assets,
		WM:          m,
		Menus:       m,
		Compositor:  comp,
		Screens:     cfg.Screens,
		Scratch:     bitmap.NewPool(),
		Scheduler:   cfg.Scheduler,
		FlashPeriod: cfg.FlashPeriod,
	}
	comp.SetCursorHook(m.updateCursor)
	return m, nil
}

// Compositor returns the compositor painting this desktop.
func (m *Manager) Compositor() *compositor.Compositor { return m.comp }

// Palette is the palette shared by every frame.
func (m *Manager) Palette() *theme.Palette { return m.ctx.Palette }

// Windows lists the stack bottom to top.
func (m *Manager) Windows() []*Window { return m.windows }

// Add creates a window, puts it on top and activates it when it can take
// focus.
func (m *Manager) Add(opts WindowOptions) *Window {
	m.nextID++
	w := &Window{
		id:          m.nextID,
		manager:     m,
		title:       opts.Title,
		typ:         opts.Type,
		rect:        opts.Rect,
		icon:        opts.Icon,
		background:  opts.Background,
		frameless:   opts.Frameless,
		resizable:   !opts.Fixed,
		minimizable: !opts.Unminimizable,
		movable:     !opts.Immovable,
		modified:    opts.Modified,
	}
	if w.background == (color.RGBA{}) {
		w.background = m.ctx.Palette.Window
	}
	if len(opts.Menus) > 0 {
		w.menubar = NewMenubar(m.ctx.Theme.Font(), m.ctx.Palette.MenubarHeight, opts.Menus...)
		w.showMenubar = true
	}
	w.frame = frame.New(m.ctx, w)
	w.frame.WindowWasConstructed()
	m.windows = append(m.windows, w)
	m.comp.InvalidateOcclusions()
	m.comp.InvalidateScreen(w.RenderRect())
	if w.typ == frame.Normal || w.typ == frame.ToolWindow {
		m.MoveToFrontAndMakeActive(w)
	}
	logging.Logger().Debug("desktop: window added", "id", w.id, "title", w.title, "type", w.typ.String())
	return w
}

// Remove closes w and its frame.
func (m *Manager) Remove(w *Window) {
	i := slices.Index(m.windows, w)
	if i < 0 {
		return
	}
	m.comp.InvalidateScreen(w.RenderRect())
	m.windows = slices.Delete(m.windows, i, i+1)
	w.frame.Close()
	w.manager = nil
	if m.windowMenu != nil && m.windowMenu.Window == w {
		m.closeWindowMenu()
	}
	if m.recentWindowMenu != nil && m.recentWindowMenu.Window == w {
		m.recentWindowMenu = nil
		m.clicks.Reset()
	}
	if m.withMenu == w {
		m.CloseEveryone()
	}
	if m.drag != nil && m.drag.window == w {
		m.drag = nil
	}
	if m.highlight == w {
		m.highlight = nil
	}
	if m.candOwner == w {
		m.setCandidate(nil, frame.ResizeNone)
	}
	if m.active == w {
		m.active = nil
		if next := m.topmostFocusable(); next != nil {
			m.activate(next)
		}
	}
	m.comp.InvalidateOcclusions()
}

func (m *Manager) topmostFocusable() *Window {
	for i := len(m.windows) - 1; i >= 0; i-- {
		w := m.windows[i]
		if !w.minimized && (w.typ == frame.Normal || w.typ == frame.ToolWindow) {
			return w
		}
	}
	return nil
}

// Layers returns the visible windows for the compositor, bottom to top.
func (m *Manager) Layers() []compositor.Layer {
	layers := make([]compositor.Layer, 0, len(m.windows))
	for _, w := range m.windows {
		if !w.minimized {
			layers = append(layers, w)
		}
	}
	return layers
}

// Compose redraws the damaged part of every screen.
func (m *Manager) Compose() error {
	return m.comp.Compose(m.Layers())
}

// ThemeChanged reloads the decoration assets for pal and drops every
// cached frame rendering.
func (m *Manager) ThemeChanged(pal *theme.Palette) error {
	if pal != nil {
		m.ctx.Palette = pal
	}
	if m.ctx.Assets != nil {
		if err := m.ctx.Assets.Reload(m.ctx.Palette); err != nil {
			return err
		}
	}
	for _, w := range m.windows {
		old := w.rect
		w.frame.ThemeChanged()
		w.frame.WindowRectChanged(old, w.rect)
	}
	return nil
}

func (m *Manager) activate(w *Window) {
	if m.active == w {
		return
	}
	prev := m.active
	m.active = w
	if prev != nil {
		prev.frame.SetDirty(true)
		prev.frame.Invalidate()
	}
	if w != nil {
		w.frame.SetDirty(true)
		w.frame.Invalidate()
	}
}

// SetHighlightWindow highlights w, or clears the highlight when w is nil.
func (m *Manager) SetHighlightWindow(w *Window) {
	if m.highlight == w {
		return
	}
	prev := m.highlight
	m.highlight = w
	// The shadow style follows the highlight, so every frame re-renders
	// its shadow.
	for _, win := range m.windows {
		if win == prev || win == w || m.active == win {
			win.frame.SetDirty(true)
			win.frame.Invalidate()
		}
	}
}

// SetMaximized maximizes w onto the usable area of its closest screen or
// restores its previous rect.
func (m *Manager) SetMaximized(w *Window, maximized bool) {
	if w.maximized == maximized || (maximized && !w.resizable) {
		return
	}
	if maximized {
		if w.tiled == frame.TileNone {
			w.restoreRect = w.rect
		}
		scr := m.screens.ClosestToRect(w.frame.Rect())
		w.maximized = true
		w.tiled = frame.TileNone
		w.setRect(w.contentFor(scr.Usable()))
	} else {
		w.maximized = false
		w.setRect(w.restoreRect)
	}
	w.frame.DidSetMaximized(maximized)
}

// SetTiled snaps w to one half of its closest screen. TileNone restores it.
func (m *Manager) SetTiled(w *Window, tile frame.TileType) {
	if w.tiled == tile || !w.resizable {
		return
	}
	if tile == frame.TileNone {
		w.tiled = frame.TileNone
		w.setRect(w.restoreRect)
		return
	}
	if w.tiled == frame.TileNone && !w.maximized {
		w.restoreRect = w.rect
	}
	if w.maximized {
		w.maximized = false
		w.frame.DidSetMaximized(false)
	}
	u := m.screens.ClosestToRect(w.frame.Rect()).Usable()
	var outer geom.Rect
	switch tile {
	case frame.TileLeft:
		outer = geom.Rect{X: u.X, Y: u.Y, Width: u.Width / 2, Height: u.Height}
	case frame.TileRight:
		outer = geom.Rect{X: u.X + u.Width/2, Y: u.Y, Width: u.Width - u.Width/2, Height: u.Height}
	case frame.TileTop:
		outer = geom.Rect{X: u.X, Y: u.Y, Width: u.Width, Height: u.Height / 2}
	case frame.TileBottom:
		outer = geom.Rect{X: u.X, Y: u.Y + u.Height/2, Width: u.Width, Height: u.Height - u.Height/2}
	}
	w.tiled = tile
	w.setRect(w.contentFor(outer))
}

// SetMinimized hides or shows w.
func (m *Manager) SetMinimized(w *Window, minimized bool) {
	if w.minimized == minimized || (minimized && !w.minimizable) {
		return
	}
	w.minimized = minimized
	m.comp.InvalidateScreen(w.RenderRect())
	m.comp.InvalidateOcclusions()
	if minimized && m.active == w {
		m.active = nil
		w.frame.Invalidate()
		if next := m.topmostFocusable(); next != nil {
			m.activate(next)
		}
	}
	if !minimized {
		m.MoveToFrontAndMakeActive(w)
	}
}

// Move places w's content at p.
func (m *Manager) Move(w *Window, p geom.Point) {
	w.setRect(geom.NewRect(p, w.rect.Size()))
}

// Flash starts the title bar attention animation on w.
func (m *Manager) Flash(w *Window) {
	w.frame.StartFlashAnimation()
}

// WindowMenu returns the open window menu, or nil.
func (m *Manager) WindowMenu() *WindowMenu { return m.windowMenu }

func (m *Manager) popupWindowMenu(w *Window, at geom.Point, def frame.WindowMenuDefaultAction) {
	m.CloseEveryone()
	m.windowMenu = &WindowMenu{Window: w, At: at, Default: def}
	m.recentWindowMenu = m.windowMenu
	m.windowMenuGrabbed = true
}

func (m *Manager) closeWindowMenu() {
	m.windowMenu = nil
	m.windowMenuGrabbed = false
}

// ResizeCandidate is the edge the pointer currently hovers.
func (m *Manager) ResizeCandidate() frame.ResizeDirection { return m.candidate }

func (m *Manager) setCandidate(w *Window, d frame.ResizeDirection) {
	m.candOwner = w
	if m.candidate == d {
		return
	}
	m.candidate = d
	m.comp.InvalidateCursor()
}

func (m *Manager) updateCursor() {
	if m.cursor == nil {
		return
	}
	d := m.candidate
	if m.drag != nil && m.drag.kind == dragResize {
		d = m.drag.direction
	}
	if err := m.cursor.SetResizeCursor(d); err != nil {
		logging.Logger().Warn("desktop: set cursor failed", "direction", d.String(), "error", err)
	}
}

func asWindow(w frame.Window) *Window {
	win, _ := w.(*Window)
	return win
}

// frame.WindowManager

func (m *Manager) ActiveWindow() frame.Window {
	if m.active == nil {
		return nil
	}
	return m.active
}

func (m *Manager) HighlightWindow() frame.Window {
	if m.highlight == nil {
		return nil
	}
	return m.highlight
}

func (m *Manager) MoveWindow() frame.Window {
	if m.drag == nil || m.drag.kind != dragMove {
		return nil
	}
	return m.drag.window
}

func (m *Manager) IsActiveWindowOrAccessory(w frame.Window) bool {
	win := asWindow(w)
	if win == nil || m.active == nil {
		return false
	}
	return win == m.active || (m.active.modal == win)
}

func (m *Manager) MoveToFrontAndMakeActive(w frame.Window) {
	win := asWindow(w)
	if win == nil {
		return
	}
	if i := slices.Index(m.windows, win); i >= 0 && i != len(m.windows)-1 {
		m.windows = append(slices.Delete(m.windows, i, i+1), win)
		m.comp.InvalidateOcclusions()
		m.comp.InvalidateScreen(win.RenderRect())
	}
	if win.typ == frame.Normal || win.typ == frame.ToolWindow {
		m.activate(win)
	}
}

func (m *Manager) StartWindowMove(w frame.Window, e input.MouseEvent) {
	win := asWindow(w)
	if win == nil {
		return
	}
	m.drag = &drag{kind: dragMove, window: win, origin: e.Position, start: win.rect}
	win.frame.Invalidate()
	logging.Logger().Debug("desktop: move started", "id", win.id)
}

func (m *Manager) StartWindowResize(w frame.Window, e input.MouseEvent) {
	win := asWindow(w)
	if win == nil {
		return
	}
	d := m.candidate
	if d == frame.ResizeNone || m.candOwner != win {
		d = frame.ResizeZone(win.frame.Rect(), e.Position)
	}
	if d == frame.ResizeNone {
		return
	}
	m.drag = &drag{kind: dragResize, window: win, origin: e.Position, start: win.rect, direction: d}
	m.comp.InvalidateCursor()
	logging.Logger().Debug("desktop: resize started", "id", win.id, "direction", d.String())
}

func (m *Manager) SetResizeCandidate(w frame.Window, d frame.ResizeDirection) {
	m.setCandidate(asWindow(w), d)
}

func (m *Manager) StartMenuDoubleClick(w frame.Window, e input.MouseEvent) {
	m.clicks.Start(asWindow(w), e)
}

func (m *Manager) IsMenuDoubleClick(w frame.Window, e input.MouseEvent) bool {
	return m.clicks.IsDoubleClick(asWindow(w), e)
}

func (m *Manager) WindowWithActiveMenu() frame.Window {
	if m.withMenu == nil {
		return nil
	}
	return m.withMenu
}

func (m *Manager) SetWindowWithActiveMenu(w frame.Window) {
	m.withMenu = asWindow(w)
}

func (m *Manager) NotifyOpacityChanged(w frame.Window) {
	if win := asWindow(w); win != nil {
		logging.Logger().Debug("desktop: opacity changed", "id", win.id, "opacity", win.frame.Opacity())
	}
}

func (m *Manager) NotifyRectChanged(w frame.Window, oldRect, newRect geom.Rect) {
	if win := asWindow(w); win != nil {
		logging.Logger().Debug("desktop: rect changed", "id", win.id, "old", oldRect.String(), "new", newRect.String())
	}
}

// frame.MenuManager

func (m *Manager) CurrentMenu() frame.Menu {
	if m.currentMenu == nil {
		return nil
	}
	return m.currentMenu
}

func (m *Manager) HoveredMenu() frame.Menu {
	if m.hoveredMenu == nil {
		return nil
	}
	return m.hoveredMenu
}

func (m *Manager) SetHoveredMenu(menu frame.Menu) {
	m.hoveredMenu, _ = menu.(*Menu)
}

func (m *Manager) OpenMenu(menu frame.Menu) {
	item, ok := menu.(*Menu)
	if !ok {
		return
	}
	item.open = true
	m.currentMenu = item
}

func (m *Manager) CloseEveryone() {
	if m.currentMenu != nil {
		m.currentMenu.open = false
		m.currentMenu = nil
	}
	if m.withMenu != nil {
		if m.withMenu.manager != nil {
			m.withMenu.frame.InvalidateRect(m.withMenu.frame.MenubarRect())
		}
		m.withMenu = nil
	}
	m.closeWindowMenu()
}
