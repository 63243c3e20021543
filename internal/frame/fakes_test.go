package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/1broseidon/winframe/internal/assets"
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/1broseidon/winframe/internal/theme"
)

type popup struct {
	at  geom.Point
	def WindowMenuDefaultAction
}

type fakeWindow struct {
	rect        geom.Rect
	typ         WindowType
	title       string
	frameless   bool
	fullscreen  bool
	maximized   bool
	tiled       TileType
	resizable   bool
	minimizable bool
	movable     bool
	modified    bool
	opaque      bool
	menubar     Menubar
	modal       Window

	actions          []WindowMenuAction
	popups           []popup
	activatedDefault int
	verticalMax      int
}

func newFakeWindow(r geom.Rect) *fakeWindow {
	return &fakeWindow{
		rect:        r,
		typ:         Normal,
		title:       "test",
		resizable:   true,
		minimizable: true,
		movable:     true,
		opaque:      true,
	}
}

func (w *fakeWindow) Rect() geom.Rect             { return w.rect }
func (w *fakeWindow) Type() WindowType            { return w.typ }
func (w *fakeWindow) Title() string               { return w.title }
func (w *fakeWindow) Icon() *bitmap.Bitmap        { return nil }
func (w *fakeWindow) IsFrameless() bool           { return w.frameless }
func (w *fakeWindow) IsFullscreen() bool          { return w.fullscreen }
func (w *fakeWindow) IsMaximized() bool           { return w.maximized }
func (w *fakeWindow) Tiled() TileType             { return w.tiled }
func (w *fakeWindow) IsResizable() bool           { return w.resizable }
func (w *fakeWindow) IsMinimizable() bool         { return w.minimizable }
func (w *fakeWindow) IsMovable() bool             { return w.movable }
func (w *fakeWindow) IsModified() bool            { return w.modified }
func (w *fakeWindow) IsOpaque() bool              { return w.opaque }
func (w *fakeWindow) Menubar() Menubar            { return w.menubar }
func (w *fakeWindow) ShouldShowMenubar() bool     { return w.menubar != nil }
func (w *fakeWindow) BlockingModalWindow() Window { return w.modal }
func (w *fakeWindow) SetVerticallyMaximized()     { w.verticalMax++ }
func (w *fakeWindow) WindowMenuActivateDefault()  { w.activatedDefault++ }

func (w *fakeWindow) HandleWindowMenuAction(a WindowMenuAction) {
	w.actions = append(w.actions, a)
}

func (w *fakeWindow) PopupWindowMenu(at geom.Point, def WindowMenuDefaultAction) {
	w.popups = append(w.popups, popup{at: at, def: def})
}

type fakeWM struct {
	active    Window
	highlight Window
	moving    Window
	withMenu  Window

	clicks *input.DoubleClickTracker

	raised       []Window
	moves        []input.MouseEvent
	resizes      []input.MouseEvent
	candidate    ResizeDirection
	rectChanges  int
	opacityCalls int
}

func newFakeWM() *fakeWM {
	return &fakeWM{clicks: input.NewDoubleClickTracker(0, nil)}
}

func (m *fakeWM) ActiveWindow() Window         { return m.active }
func (m *fakeWM) HighlightWindow() Window      { return m.highlight }
func (m *fakeWM) MoveWindow() Window           { return m.moving }
func (m *fakeWM) WindowWithActiveMenu() Window { return m.withMenu }

func (m *fakeWM) IsActiveWindowOrAccessory(w Window) bool {
	return m.active != nil && m.active == w
}

func (m *fakeWM) MoveToFrontAndMakeActive(w Window) {
	m.raised = append(m.raised, w)
	m.active = w
}

func (m *fakeWM) StartWindowMove(_ Window, e input.MouseEvent)   { m.moves = append(m.moves, e) }
func (m *fakeWM) StartWindowResize(_ Window, e input.MouseEvent) { m.resizes = append(m.resizes, e) }
func (m *fakeWM) SetResizeCandidate(_ Window, d ResizeDirection) { m.candidate = d }
func (m *fakeWM) SetWindowWithActiveMenu(w Window)               { m.withMenu = w }
func (m *fakeWM) NotifyOpacityChanged(Window)                    { m.opacityCalls++ }
func (m *fakeWM) NotifyRectChanged(Window, geom.Rect, geom.Rect) { m.rectChanges++ }

func (m *fakeWM) StartMenuDoubleClick(w Window, e input.MouseEvent) {
	m.clicks.Start(w, e)
}

func (m *fakeWM) IsMenuDoubleClick(w Window, e input.MouseEvent) bool {
	return m.clicks.IsDoubleClick(w, e)
}

type fakeCompositor struct {
	damage     []geom.Rect
	occlusions int
	cursor     int
}

func (c *fakeCompositor) InvalidateScreen(r geom.Rect) { c.damage = append(c.damage, r) }
func (c *fakeCompositor) InvalidateOcclusions()        { c.occlusions++ }
func (c *fakeCompositor) InvalidateCursor()            { c.cursor++ }

type fakeTask struct {
	interval time.Duration
	fn       func()
	active   bool
}

func (t *fakeTask) Stop()        { t.active = false }
func (t *fakeTask) Active() bool { return t.active }

type fakeScheduler struct {
	tasks []*fakeTask
}

func (s *fakeScheduler) Every(d time.Duration, fn func()) eventloop.Task {
	t := &fakeTask{interval: d, fn: fn, active: true}
	s.tasks = append(s.tasks, t)
	return t
}

type fakeMenu struct {
	name string
	rect geom.Rect
	open bool
	at   geom.Point
}

func (m *fakeMenu) Name() string             { return m.name }
func (m *fakeMenu) RectInMenubar() geom.Rect { return m.rect }
func (m *fakeMenu) IsOpen() bool             { return m.open }
func (m *fakeMenu) MoveTo(p geom.Point)      { m.at = p }

type fakeMenubar struct {
	menus []Menu
}

func (b *fakeMenubar) Menus() []Menu { return b.menus }

type fakeMenus struct {
	current Menu
	hovered Menu
	closed  int
}

func (m *fakeMenus) CurrentMenu() Menu     { return m.current }
func (m *fakeMenus) HoveredMenu() Menu     { return m.hovered }
func (m *fakeMenus) SetHoveredMenu(h Menu) { m.hovered = h }
func (m *fakeMenus) OpenMenu(menu Menu) {
	m.current = menu
	menu.(*fakeMenu).open = true
}

func (m *fakeMenus) CloseEveryone() {
	if m.current != nil {
		m.current.(*fakeMenu).open = false
	}
	m.current = nil
	m.closed++
}

// shadowAlpha is the alpha of every pixel of the test shadow.
const shadowAlpha = 100

func encodePNG(t *testing.T, img image.Image) *fstest.MapFile {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &fstest.MapFile{Data: buf.Bytes()}
}

func uniform(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// testAssets loads a base-4 shadow and plain icons.
func testAssets(t *testing.T, pal *theme.Palette) *assets.Set {
	t.Helper()
	return testAssetsWithShadow(t, pal, uniform(32, 8, color.NRGBA{A: shadowAlpha}))
}

func testAssetsWithShadow(t *testing.T, pal *theme.Palette, shadowImg image.Image) *assets.Set {
	t.Helper()
	fsys := fstest.MapFS{
		"shadow.png": encodePNG(t, shadowImg),
	}
	for _, name := range []string{"window-minimize.png", "window-maximize.png", "window-restore.png", "window-close.png", "window-close-modified.png"} {
		fsys["icons/"+name] = encodePNG(t, uniform(16, 16, color.NRGBA{A: 0xff}))
	}
	pal.TitleButtonIconsPath = "icons/"
	pal.ActiveWindowShadowPath = "shadow.png"
	pal.InactiveWindowShadowPath = "shadow.png"
	pal.MenuShadowPath = "shadow.png"
	set := assets.NewSet(fsys)
	if err := set.Reload(pal); err != nil {
		t.Fatalf("reload assets: %v", err)
	}
	return set
}

type harness struct {
	frame   *Frame
	window  *fakeWindow
	wm      *fakeWM
	comp    *fakeCompositor
	menus   *fakeMenus
	sched   *fakeScheduler
	ctx     *Context
	screens *screen.Registry
}

type harnessOption func(*harness)

func withShadow(t *testing.T) harnessOption {
	return func(h *harness) {
		h.ctx.Assets = testAssets(t, h.ctx.Palette)
	}
}

func withShadowImage(t *testing.T, img image.Image) harnessOption {
	return func(h *harness) {
		h.ctx.Assets = testAssetsWithShadow(t, h.ctx.Palette, img)
	}
}

func withScreens(screens ...screen.Screen) harnessOption {
	return func(h *harness) {
		h.screens = screen.NewRegistry(screens...)
		h.ctx.Screens = h.screens
	}
}

func newHarness(t *testing.T, w *fakeWindow, opts ...harnessOption) *harness {
	t.Helper()
	h := &harness{
		window:  w,
		wm:      newFakeWM(),
		comp:    &fakeCompositor{},
		menus:   &fakeMenus{},
		sched:   &fakeScheduler{},
		screens: screen.NewRegistry(screen.Screen{Name: "main", Rect: geom.Rect{Width: 1920, Height: 1080}, Scale: 1}),
	}
	h.ctx = &Context{
		Theme:      theme.NewClassic(0),
		Palette:    theme.DefaultPalette(),
		WM:         h.wm,
		Menus:      h.menus,
		Compositor: h.comp,
		Screens:    h.screens,
		Scratch:    bitmap.NewPool(),
		Scheduler:  h.sched,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.frame = New(h.ctx, w)
	h.frame.WindowWasConstructed()
	return h
}

// paintOnto renders the frame into a fresh transparent framebuffer covering
// the main screen.
func (h *harness) paintOnto(t *testing.T) *bitmap.Bitmap {
	t.Helper()
	scr := h.screens.Main()
	fb, err := bitmap.New(scr.Rect.Size(), scr.ScaleFactor())
	if err != nil {
		t.Fatalf("allocate framebuffer: %v", err)
	}
	p := bitmap.NewPainter(fb)
	p.Translate(-scr.Rect.X, -scr.Rect.Y)
	h.frame.Paint(scr, p, scr.Rect)
	return fb
}
