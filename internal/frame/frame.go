// Package frame draws, caches and routes input for the decoration around a
// window: title bar, border, title buttons, menu bar and drop shadow.
//
// A Frame is driven from the compositor's control thread only.
package frame

import (
	"github.com/1broseidon/winframe/internal/assets"
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/1broseidon/winframe/internal/theme"
)

// flashSteps is the number of titlebar repaints in one flash animation.
const flashSteps = 8

var defaultScratch = bitmap.NewPool()

// HitTestResult describes a pointer position that landed on a frame.
type HitTestResult struct {
	Window                 Window
	ScreenPosition         geom.Point
	WindowRelativePosition geom.Point // relative to the unconstrained render rect
	IsFrameHit             bool
}

// Frame is the decoration of one window.
type Frame struct {
	ctx    *Context
	window Window

	buttons        []*Button
	closeButton    *Button
	maximizeButton *Button
	minimizeButton *Button

	caches   map[int]*renderCache
	opacity  float64
	hasAlpha bool

	flashCounter int
	flashTask    eventloop.Task

	lastRenderRect geom.Rect
	closed         bool
}

// New creates the frame for w. The frame retains ctx.Assets until Close.
// Call WindowWasConstructed once w is fully initialised.
func New(ctx *Context, w Window) *Frame {
	if ctx.Assets != nil {
		ctx.Assets.Retain()
	}
	return &Frame{
		ctx:     ctx,
		window:  w,
		caches:  make(map[int]*renderCache),
		opacity: 1,
	}
}

// WindowWasConstructed creates the title buttons allowed by the window's
// capabilities.
func (f *Frame) WindowWasConstructed() {
	f.closeButton = f.addButton(func(*Button) {
		f.window.HandleWindowMenuAction(ActionClose)
	})
	if f.window.IsResizable() {
		f.maximizeButton = f.addButton(func(*Button) {
			f.window.HandleWindowMenuAction(ActionMaximizeOrRestore)
		})
		f.maximizeButton.onMiddleClick = func(*Button) {
			f.window.SetVerticallyMaximized()
		}
	}
	if f.window.IsMinimizable() {
		f.minimizeButton = f.addButton(func(*Button) {
			f.window.HandleWindowMenuAction(ActionMinimizeOrUnminimize)
		})
	}

	f.SetButtonIcons()
	f.LayoutButtons()
	f.hasAlpha = f.ctx.Theme.FrameUsesAlpha(f.windowStateForTheme(), f.ctx.Palette)
	f.lastRenderRect = f.RenderRect()
}

func (f *Frame) addButton(onClick func(*Button)) *Button {
	b := &Button{frame: f, onClick: onClick}
	f.buttons = append(f.buttons, b)
	return b
}

// Close tears the frame down. The flash task is cancelled before any
// other state is released.
func (f *Frame) Close() {
	if f.closed {
		return
	}
	f.stopFlash()
	f.closed = true
	f.caches = nil
	if f.ctx.Assets != nil {
		f.ctx.Assets.Release()
	}
}

// Window returns the decorated window.
func (f *Frame) Window() Window { return f.window }

// Buttons lists the title buttons, outermost first.
func (f *Frame) Buttons() []*Button { return f.buttons }

// Opacity is the factor applied when the bands are composited.
func (f *Frame) Opacity() float64 { return f.opacity }

// HasAlphaChannel reports whether the theme paints translucent chrome for
// this frame.
func (f *Frame) HasAlphaChannel() bool { return f.hasAlpha }

// IsOpaque reports whether the frame fully covers what is below it.
func (f *Frame) IsOpaque() bool {
	return f.opacity >= 1 && !f.hasAlpha
}

// SetButtonIcons picks the icons matching the window's modified and
// maximized state.
func (f *Frame) SetButtonIcons() {
	f.SetDirty(false)
	if f.window.IsFrameless() || f.closeButton == nil || f.ctx.Assets == nil {
		return
	}
	a := f.ctx.Assets
	if f.window.IsModified() {
		f.closeButton.SetIcon(a.Icon(assets.IconCloseModified))
	} else {
		f.closeButton.SetIcon(a.Icon(assets.IconClose))
	}
	if f.minimizeButton != nil {
		f.minimizeButton.SetIcon(a.Icon(assets.IconMinimize))
	}
	if f.maximizeButton != nil {
		f.maximizeButton.SetIcon(f.maximizeIcon(f.window.IsMaximized()))
	}
}

func (f *Frame) maximizeIcon(maximized bool) *bitmap.MultiScale {
	if maximized {
		return f.ctx.Assets.Icon(assets.IconRestore)
	}
	return f.ctx.Assets.Icon(assets.IconMaximize)
}

// DidSetMaximized swaps the maximize button between maximize and restore.
func (f *Frame) DidSetMaximized(maximized bool) {
	if f.maximizeButton == nil || f.ctx.Assets == nil {
		return
	}
	f.maximizeButton.SetIcon(f.maximizeIcon(maximized))
	f.SetDirty(false)
}

// LayoutButtons asks the theme where each title button goes.
func (f *Frame) LayoutButtons() {
	rects := f.ctx.Theme.LayoutButtons(f.themeType(), f.window.Rect(), f.ctx.Palette, len(f.buttons))
	for i, b := range f.buttons {
		if i < len(rects) {
			b.rect = rects[i]
		} else {
			b.rect = geom.Rect{}
		}
	}
}

func (f *Frame) leftmostButtonRect() geom.Rect {
	if len(f.buttons) == 0 {
		return geom.Rect{}
	}
	return f.buttons[len(f.buttons)-1].rect
}

func (f *Frame) windowStateForTheme() theme.WindowState {
	if f.IsFlashing() {
		if f.flashCounter&1 == 1 {
			return theme.Active
		}
		return theme.Inactive
	}
	wm := f.ctx.WM
	if hw := wm.HighlightWindow(); hw != nil && hw == f.window {
		return theme.Highlighted
	}
	if mw := wm.MoveWindow(); mw != nil && mw == f.window {
		return theme.Moving
	}
	if wm.IsActiveWindowOrAccessory(f.window) {
		return theme.Active
	}
	return theme.Inactive
}

// ThemeChanged drops every cached rendering and re-reads the theme.
func (f *Frame) ThemeChanged() {
	clear(f.caches)
	f.LayoutButtons()
	f.SetButtonIcons()
	f.hasAlpha = f.ctx.Theme.FrameUsesAlpha(f.windowStateForTheme(), f.ctx.Palette)
}

// SetOpacity changes the frame opacity and reports the damage.
func (f *Frame) SetOpacity(opacity float64) {
	opacity = min(max(opacity, 0), 1)
	if f.opacity == opacity {
		return
	}
	wasOpaque := f.IsOpaque()
	f.opacity = opacity
	if wasOpaque != f.IsOpaque() {
		f.ctx.Compositor.InvalidateOcclusions()
	}
	f.ctx.Compositor.InvalidateScreen(f.RenderRect())
	f.ctx.WM.NotifyOpacityChanged(f.window)
}

// SetDirty marks every cached scale for re-rendering. reRenderShadow also
// repaints the shadow, for example after the shadow style changed.
func (f *Frame) SetDirty(reRenderShadow bool) {
	for _, c := range f.caches {
		c.setDirty(reRenderShadow)
	}
}

// Invalidate marks the chrome for repaint and damages the whole render
// rect.
func (f *Frame) Invalidate() {
	f.SetDirty(false)
	if r := f.RenderRect(); !r.IsEmpty() {
		f.ctx.Compositor.InvalidateScreen(r)
	}
}

// InvalidateRect marks the chrome for repaint and damages rel, given
// relative to the frame rect.
func (f *Frame) InvalidateRect(rel geom.Rect) {
	f.SetDirty(false)
	r := rel.TranslatedBy(f.Rect().Location()).Intersected(f.RenderRect())
	if !r.IsEmpty() {
		f.ctx.Compositor.InvalidateScreen(r)
	}
}

// InvalidateTitlebar repaints just the title bar.
func (f *Frame) InvalidateTitlebar() {
	f.InvalidateRect(f.TitlebarRect())
}

// WindowRectChanged relayouts the frame after the window moved or was
// resized and damages both the area it left and the area it now covers.
func (f *Frame) WindowRectChanged(oldRect, newRect geom.Rect) {
	f.LayoutButtons()
	f.SetDirty(true)

	previous := f.lastRenderRect
	if previous.IsEmpty() {
		previous = f.inflatedForShadow(f.frameRectFor(oldRect))
	}
	current := f.RenderRect()
	for _, r := range previous.Shatter(current) {
		f.ctx.Compositor.InvalidateScreen(r)
	}
	if !current.IsEmpty() {
		f.ctx.Compositor.InvalidateScreen(current)
	}
	f.lastRenderRect = current

	f.ctx.Compositor.InvalidateOcclusions()
	f.ctx.WM.NotifyRectChanged(f.window, oldRect, newRect)
}

func (f *Frame) scratch() *bitmap.Pool {
	if f.ctx.Scratch != nil {
		return f.ctx.Scratch
	}
	return defaultScratch
}

func (f *Frame) renderToCache(scr *screen.Screen) *renderCache {
	if f.closed {
		return nil
	}
	scale := scr.ScaleFactor()
	c, ok := f.caches[scale]
	if !ok {
		c = newRenderCache()
		f.caches[scale] = c
	}
	if err := c.render(f, scale); err != nil {
		logging.Logger().Warn("frame: render failed",
			"window", f.window.Title(),
			"scale", scale,
			"error", err)
	}
	return c
}

// Paint composites the part of the frame inside rect onto p, which draws
// in screen coordinates. scr selects the cached scale.
func (f *Frame) Paint(scr *screen.Screen, p *bitmap.Painter, rect geom.Rect) {
	c := f.renderToCache(scr)
	if c == nil {
		return
	}
	f.lastRenderRect = f.RenderRect()
	c.paint(f, p, rect)
}

// HitTest reports whether position, in screen coordinates, hits the
// visible part of the frame. Content area and fully transparent shadow
// pixels are misses.
func (f *Frame) HitTest(position geom.Point) (HitTestResult, bool) {
	if f.window.IsFrameless() || f.window.IsFullscreen() {
		return HitTestResult{}, false
	}
	// A maximized or tiled frame must not be hit on a neighbouring screen.
	if !f.constrainedToScreen(f.Rect()).Contains(position) {
		return HitTestResult{}, false
	}
	if f.window.Rect().Contains(position) {
		return HitTestResult{}, false
	}
	scr := f.screenAt(position)
	if scr == nil {
		return HitTestResult{}, false
	}
	c := f.renderToCache(scr)
	if c == nil {
		return HitTestResult{}, false
	}
	rel := position.Sub(f.UnconstrainedRenderRect().Location())
	return c.hitTest(f, position, rel)
}

// screenAt is the screen under p. Without a screen layout the frame is
// hit tested at scale 1.
func (f *Frame) screenAt(p geom.Point) *screen.Screen {
	if f.ctx.Screens == nil {
		return &screen.Screen{Scale: 1}
	}
	return f.ctx.Screens.FindByLocation(p)
}

// renderChrome paints title bar, border, menu bar and buttons at the
// frame origin.
func (f *Frame) renderChrome(scale int, p *bitmap.Painter) {
	if f.window.IsFrameless() {
		return
	}
	params := theme.FrameParams{
		State:          f.windowStateForTheme(),
		WindowRect:     f.window.Rect(),
		Title:          f.window.Title(),
		Icon:           f.window.Icon(),
		Palette:        f.ctx.Palette,
		LeftmostButton: f.leftmostButtonRect(),
		MenuRowCount:   f.menuRowCount(),
		Modified:       f.window.IsModified(),
	}
	switch f.window.Type() {
	case Notification:
		f.ctx.Theme.PaintNotificationFrame(p, params)
	case Normal:
		f.ctx.Theme.PaintNormalFrame(p, params)
		if f.menuRowCount() > 0 {
			f.paintMenubar(p)
		}
	case ToolWindow:
		f.ctx.Theme.PaintToolWindowFrame(p, params)
	case PopupMenu, Tooltip, Taskbar, Desktop, AppletArea:
		return
	default:
		return
	}
	for _, b := range f.buttons {
		b.paint(scale, p)
	}
}

func (f *Frame) paintMenubar(p *bitmap.Painter) {
	mb := f.window.Menubar()
	if mb == nil {
		return
	}
	pal := f.ctx.Palette
	r := f.MenubarRect()
	p.FillRect(r, pal.Window)

	p.Save()
	defer p.Restore()
	p.AddClipRect(r)
	p.Translate(r.X, r.Y)

	var hovered Menu
	if f.ctx.Menus != nil {
		hovered = f.ctx.Menus.HoveredMenu()
	}
	for _, m := range mb.Menus() {
		text := m.RectInMenubar()
		pressed := m.IsOpen()
		if pressed {
			text = text.Translated(1, 1)
		}
		hover := !pressed && hovered != nil && hovered == m
		if pressed || hover {
			f.ctx.Theme.PaintButton(p, m.RectInMenubar(), pal, pressed, hover)
		}
		p.DrawText(text, m.Name(), f.ctx.Theme.Font(), pal.WindowText, bitmap.AlignCenter)
	}
}
