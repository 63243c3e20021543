package desktop

import (
	"image/color"
	"testing"
	"time"

	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
	"github.com/1broseidon/winframe/internal/screen"
)

type recordingCursor struct {
	directions []frame.ResizeDirection
}

func (c *recordingCursor) SetResizeCursor(d frame.ResizeDirection) error {
	c.directions = append(c.directions, d)
	return nil
}

func newDesktop(t *testing.T) (*Manager, *recordingCursor) {
	t.Helper()
	cursor := &recordingCursor{}
	m, err := NewManager(Config{
		Screens: screen.NewRegistry(screen.Screen{Name: "main", Rect: geom.Rect{Width: 800, Height: 600}, Scale: 1}),
		Cursor:  cursor,
		Clock:   func() time.Time { return time.Unix(0, 0) },
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m, cursor
}

func addWindow(m *Manager, title string) *Window {
	return m.Add(WindowOptions{
		Title:      title,
		Type:       frame.Normal,
		Rect:       geom.Rect{X: 100, Y: 100, Width: 200, Height: 150},
		Background: color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	})
}

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

func send(m *Manager, typ input.EventType, p geom.Point, b input.Button) {
	e := input.MouseEvent{Type: typ, Position: p, Button: b}
	if typ == input.MouseDown {
		e.Buttons = b
	}
	m.ProcessMouseEvent(e)
}

func click(m *Manager, p geom.Point) {
	send(m, input.MouseDown, p, input.ButtonLeft)
	send(m, input.MouseUp, p, input.ButtonLeft)
}

func screenCenter(w *Window, rel geom.Rect) geom.Point {
	return rel.TranslatedBy(w.Frame().Rect().Location()).Center()
}

func TestNewManagerNeedsScreens(t *testing.T) {
	if _, err := NewManager(Config{Screens: screen.NewRegistry()}); err != ErrNoScreens {
		t.Fatalf("err = %v, want ErrNoScreens", err)
	}
}

func TestAddActivatesAndStacks(t *testing.T) {
	m, _ := newDesktop(t)
	a := addWindow(m, "a")
	b := addWindow(m, "b")
	if m.ActiveWindow() != frame.Window(b) {
		t.Fatalf("newest window should be active")
	}
	if ws := m.Windows(); ws[len(ws)-1] != b {
		t.Fatalf("newest window should be on top")
	}
	m.MoveToFrontAndMakeActive(a)
	if ws := m.Windows(); ws[len(ws)-1] != a || m.ActiveWindow() != frame.Window(a) {
		t.Fatalf("raise did not reorder the stack")
	}
	if m.HighlightWindow() != nil || m.MoveWindow() != nil || m.WindowWithActiveMenu() != nil {
		t.Fatalf("empty queries must return a nil interface")
	}
}

func TestSingleClickOnIconOpensWindowMenu(t *testing.T) {
	m, _ := newDesktop(t)
	w := addWindow(m, "doc")
	icon := screenCenter(w, w.Frame().TitlebarIconRect())
	click(m, icon)

	menu := m.WindowMenu()
	if menu == nil || menu.Window != w || menu.Default != frame.DefaultClose {
		t.Fatalf("window menu = %+v", menu)
	}
	if len(m.Windows()) != 1 {
		t.Fatalf("single click must not close the window")
	}
}

func TestDoubleClickOnIconClosesWindow(t *testing.T) {
	m, _ := newDesktop(t)
	other := addWindow(m, "other")
	w := addWindow(m, "doc")
	icon := screenCenter(w, w.Frame().TitlebarIconRect())

	click(m, icon)
	click(m, icon)

	if len(m.Windows()) != 1 || m.Windows()[0] != other {
		t.Fatalf("double click should close the window, stack = %v", len(m.Windows()))
	}
	if m.ActiveWindow() != frame.Window(other) {
		t.Fatalf("focus should fall back to the remaining window")
	}
	if m.WindowMenu() != nil {
		t.Fatalf("window menu left open")
	}
}

func TestRemoveDropsPendingIconClick(t *testing.T) {
	m, _ := newDesktop(t)
	addWindow(m, "other")
	w := addWindow(m, "doc")
	send(m, input.MouseDown, screenCenter(w, w.Frame().TitlebarIconRect()), input.ButtonLeft)
	if !m.clicks.Pending() {
		t.Fatalf("icon press should leave a pending click")
	}
	m.Remove(w)
	if m.clicks.Pending() {
		t.Fatalf("pending click survived removing its window")
	}
}

func TestTitlebarDragMovesWindow(t *testing.T) {
	m, _ := newDesktop(t)
	w := addWindow(m, "doc")
	start := pt(200, 85)
	send(m, input.MouseDown, start, input.ButtonLeft)
	if m.MoveWindow() != frame.Window(w) {
		t.Fatalf("move did not start")
	}
	send(m, input.MouseMove, pt(250, 135), input.ButtonNone)
	send(m, input.MouseUp, pt(250, 135), input.ButtonLeft)

	if want := (geom.Rect{X: 150, Y: 150, Width: 200, Height: 150}); w.Rect() != want {
		t.Fatalf("rect = %v, want %v", w.Rect(), want)
	}
	if m.MoveWindow() != nil {
		t.Fatalf("move did not end")
	}
}

func TestBorderDragResizesWindow(t *testing.T) {
	m, cursor := newDesktop(t)
	w := addWindow(m, "doc")
	fr := w.Frame().Rect()
	corner := pt(fr.Right()-2, fr.Bottom()-2)

	send(m, input.MouseMove, corner, input.ButtonNone)
	if m.ResizeCandidate() != frame.ResizeDownRight {
		t.Fatalf("candidate = %v", m.ResizeCandidate())
	}
	if len(cursor.directions) == 0 || cursor.directions[0] != frame.ResizeDownRight {
		t.Fatalf("cursor updates = %v", cursor.directions)
	}

	send(m, input.MouseDown, corner, input.ButtonLeft)
	send(m, input.MouseMove, corner.Add(pt(20, 20)), input.ButtonNone)
	send(m, input.MouseUp, corner.Add(pt(20, 20)), input.ButtonLeft)
	if want := (geom.Rect{X: 100, Y: 100, Width: 220, Height: 170}); w.Rect() != want {
		t.Fatalf("rect = %v, want %v", w.Rect(), want)
	}

	send(m, input.MouseMove, pt(150, 150), input.ButtonNone)
	if m.ResizeCandidate() != frame.ResizeNone {
		t.Fatalf("candidate should reset over content")
	}
}

func TestResizedKeepsMinimumSize(t *testing.T) {
	r := geom.Rect{X: 100, Y: 100, Width: 200, Height: 150}
	got := resized(r, frame.ResizeUpLeft, pt(500, 500), minimumWindowSize)
	want := geom.Rect{X: 250, Y: 230, Width: 50, Height: 20}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := resized(r, frame.ResizeRight, pt(10, 99), minimumWindowSize); got != (geom.Rect{X: 100, Y: 100, Width: 210, Height: 150}) {
		t.Fatalf("right resize moved other edges: %v", got)
	}
}

func TestMaximizeButtonTogglesMaximized(t *testing.T) {
	m, _ := newDesktop(t)
	w := addWindow(m, "doc")
	original := w.Rect()

	click(m, screenCenter(w, w.Frame().Buttons()[1].Rect()))
	if !w.IsMaximized() {
		t.Fatalf("window not maximized")
	}
	if want := (geom.Rect{X: 4, Y: 23, Width: 792, Height: 573}); w.Rect() != want {
		t.Fatalf("maximized rect = %v, want %v", w.Rect(), want)
	}
	if w.Frame().Rect() != (geom.Rect{Width: 800, Height: 600}) {
		t.Fatalf("maximized frame = %v", w.Frame().Rect())
	}

	click(m, screenCenter(w, w.Frame().Buttons()[1].Rect()))
	if w.IsMaximized() || w.Rect() != original {
		t.Fatalf("restore gave %v, want %v", w.Rect(), original)
	}
}

func TestTilingUsesScreenHalves(t *testing.T) {
	m, _ := newDesktop(t)
	w := addWindow(m, "doc")
	original := w.Rect()
	m.SetTiled(w, frame.TileLeft)
	if w.Frame().Rect() != (geom.Rect{Width: 400, Height: 600}) {
		t.Fatalf("left tile frame = %v", w.Frame().Rect())
	}
	m.SetTiled(w, frame.TileRight)
	if w.Frame().Rect() != (geom.Rect{X: 400, Width: 400, Height: 600}) {
		t.Fatalf("right tile frame = %v", w.Frame().Rect())
	}
	m.SetTiled(w, frame.TileNone)
	if w.Rect() != original {
		t.Fatalf("untile gave %v, want %v", w.Rect(), original)
	}
}

func TestMinimizeHidesAndRefocuses(t *testing.T) {
	m, _ := newDesktop(t)
	a := addWindow(m, "a")
	b := addWindow(m, "b")
	m.SetMinimized(b, true)
	if len(m.Layers()) != 1 {
		t.Fatalf("minimized window still composited")
	}
	if m.ActiveWindow() != frame.Window(a) {
		t.Fatalf("focus should move to the window below")
	}
	m.SetMinimized(b, false)
	if m.ActiveWindow() != frame.Window(b) {
		t.Fatalf("unminimize should activate")
	}
}

func TestMenubarOpensAndClosesFromDesktopEvents(t *testing.T) {
	m, _ := newDesktop(t)
	w := m.Add(WindowOptions{
		Title: "editor",
		Type:  frame.Normal,
		Rect:  geom.Rect{X: 100, Y: 100, Width: 300, Height: 200},
		Menus: []string{"File", "Edit"},
	})
	file := w.menubar.Item("File")
	mb := w.Frame().MenubarRect().TranslatedBy(w.Frame().Rect().Location())
	at := file.RectInMenubar().TranslatedBy(mb.Location()).Center()

	send(m, input.MouseDown, at, input.ButtonLeft)
	if !file.IsOpen() || m.CurrentMenu() != frame.Menu(file) {
		t.Fatalf("File did not open")
	}
	if want := file.RectInMenubar().BottomLeft().Add(mb.Location()); file.PopupLocation() != want {
		t.Fatalf("popup at %v, want %v", file.PopupLocation(), want)
	}

	send(m, input.MouseDown, pt(200, 250), input.ButtonLeft)
	if file.IsOpen() || m.CurrentMenu() != nil {
		t.Fatalf("press on content should close the menu")
	}
}

func TestComposePaintsWindowsOverBackground(t *testing.T) {
	m, _ := newDesktop(t)
	w := addWindow(m, "doc")
	if err := m.Compose(); err != nil {
		t.Fatalf("compose: %v", err)
	}
	fb := m.Compositor().Framebuffer(0)
	if got := fb.PixelAt(pt(150, 150)); got != w.Background() {
		t.Fatalf("content pixel = %v", got)
	}
	if got := fb.PixelAt(pt(700, 500)); got != (color.RGBA{R: 0x3a, G: 0x6e, B: 0xa5, A: 0xff}) {
		t.Fatalf("desktop pixel = %v", got)
	}
	if got := fb.PixelAt(pt(w.Frame().Rect().X, 150)); got.A != 0xff || got == w.Background() {
		t.Fatalf("border pixel = %v", got)
	}

	m.Move(w, pt(400, 300))
	if err := m.Compose(); err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := fb.PixelAt(pt(150, 150)); got != (color.RGBA{R: 0x3a, G: 0x6e, B: 0xa5, A: 0xff}) {
		t.Fatalf("old position not repainted: %v", got)
	}
}

func TestHighlightChangesThemeState(t *testing.T) {
	m, _ := newDesktop(t)
	a := addWindow(m, "a")
	addWindow(m, "b")
	m.SetHighlightWindow(a)
	if m.HighlightWindow() != frame.Window(a) {
		t.Fatalf("highlight not set")
	}
	m.Remove(a)
	if m.HighlightWindow() != nil {
		t.Fatalf("highlight should clear when the window goes away")
	}
}
