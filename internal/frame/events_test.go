package frame

import (
	"testing"

	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
)

func press(x, y int, b input.Button) input.MouseEvent {
	return input.MouseEvent{Type: input.MouseDown, Position: geom.Point{X: x, Y: y}, Button: b, Buttons: b}
}

func release(x, y int, b input.Button) input.MouseEvent {
	return input.MouseEvent{Type: input.MouseUp, Position: geom.Point{X: x, Y: y}, Button: b}
}

func hover(x, y int) input.MouseEvent {
	return input.MouseEvent{Type: input.MouseMove, Position: geom.Point{X: x, Y: y}}
}

func normalHarness(t *testing.T) *harness {
	return newHarness(t, newFakeWindow(geom.Rect{X: 100, Y: 100, Width: 200, Height: 150}))
}

func TestResizeZoneGrid(t *testing.T) {
	outer := geom.Rect{Width: 90, Height: 90}
	want := [3][3]ResizeDirection{
		{ResizeUpLeft, ResizeUp, ResizeUpRight},
		{ResizeLeft, ResizeNone, ResizeRight},
		{ResizeDownLeft, ResizeDown, ResizeDownRight},
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			p := geom.Point{X: 15 + 30*col, Y: 15 + 30*row}
			if got := ResizeZone(outer, p); got != want[row][col] {
				t.Fatalf("cell (%d,%d) at %v: got %v, want %v", row, col, p, got, want[row][col])
			}
		}
	}
	corners := map[geom.Point]ResizeDirection{
		{X: 0, Y: 0}:   ResizeUpLeft,
		{X: 89, Y: 0}:  ResizeUpRight,
		{X: 0, Y: 89}:  ResizeDownLeft,
		{X: 89, Y: 89}: ResizeDownRight,
	}
	for p, d := range corners {
		if got := ResizeZone(outer, p); got != d {
			t.Fatalf("corner %v: got %v, want %v", p, got, d)
		}
	}
}

func TestResizeZoneTinyRect(t *testing.T) {
	if got := ResizeZone(geom.Rect{Width: 2, Height: 2}, geom.Point{X: 1, Y: 1}); got != ResizeDownRight {
		t.Fatalf("got %v for a 2x2 rect", got)
	}
}

func TestResizeZoneCornersAreDiagonalForAllSizes(t *testing.T) {
	for w := 2; w <= 12; w++ {
		for h := 2; h <= 12; h++ {
			outer := geom.Rect{X: 10, Y: 20, Width: w, Height: h}
			right, bottom := outer.Right()-1, outer.Bottom()-1
			corners := []struct {
				p    geom.Point
				want ResizeDirection
			}{
				{geom.Point{X: outer.X, Y: outer.Y}, ResizeUpLeft},
				{geom.Point{X: right, Y: outer.Y}, ResizeUpRight},
				{geom.Point{X: outer.X, Y: bottom}, ResizeDownLeft},
				{geom.Point{X: right, Y: bottom}, ResizeDownRight},
			}
			for _, c := range corners {
				if got := ResizeZone(outer, c.p); got != c.want {
					t.Fatalf("%dx%d corner %v: got %v, want %v", w, h, c.p, got, c.want)
				}
			}
		}
	}
	if got := ResizeZone(geom.Rect{Width: 3, Height: 3}, geom.Point{X: 1, Y: 1}); got != ResizeNone {
		t.Fatalf("3x3 center: got %v, want none", got)
	}
}

func TestTitlebarIconDoubleClickActivatesDefault(t *testing.T) {
	h := normalHarness(t)
	icon := h.frame.TitlebarIconRect()
	p := icon.Center()

	h.frame.HandleMouseEvent(press(p.X, p.Y, input.ButtonLeft))
	if len(h.window.popups) != 1 {
		t.Fatalf("expected the window menu to pop up, got %d popups", len(h.window.popups))
	}
	pop := h.window.popups[0]
	if pop.def != DefaultClose {
		t.Fatalf("expected default action close, got %v", pop.def)
	}
	if want := h.frame.TitlebarRect().BottomLeft().Add(h.frame.Rect().Location()); pop.at != want {
		t.Fatalf("menu at %v, want %v", pop.at, want)
	}
	if len(h.wm.raised) != 1 {
		t.Fatalf("press should raise the window")
	}

	h.frame.HandleMouseEvent(release(p.X, p.Y, input.ButtonLeft))
	if h.window.activatedDefault != 1 {
		t.Fatalf("expected default action on the qualifying release, got %d", h.window.activatedDefault)
	}

	// The marker is consumed; a stray release does nothing.
	h.frame.HandleMouseEvent(release(p.X, p.Y, input.ButtonLeft))
	if h.window.activatedDefault != 1 {
		t.Fatalf("second release activated again")
	}
}

func TestTitlebarIconReleaseWithoutPressIgnored(t *testing.T) {
	h := normalHarness(t)
	p := h.frame.TitlebarIconRect().Center()
	h.frame.HandleMouseEvent(release(p.X, p.Y, input.ButtonLeft))
	if h.window.activatedDefault != 0 {
		t.Fatalf("release without a pending click activated the default action")
	}
}

func TestTitlebarRightClickMenuDefault(t *testing.T) {
	h := normalHarness(t)
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonRight))
	if len(h.window.popups) != 1 || h.window.popups[0].def != DefaultMaximize {
		t.Fatalf("expected maximize default, got %+v", h.window.popups)
	}
	if want := (geom.Point{X: 196, Y: 87}); h.window.popups[0].at != want {
		t.Fatalf("menu at %v, want %v", h.window.popups[0].at, want)
	}

	h.window.maximized = true
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonRight))
	if h.window.popups[1].def != DefaultRestore {
		t.Fatalf("expected restore default for a maximized window, got %v", h.window.popups[1].def)
	}
}

func TestTitlebarDragStartsMove(t *testing.T) {
	h := normalHarness(t)
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonLeft))
	if len(h.wm.moves) != 1 {
		t.Fatalf("expected a window move, got %d", len(h.wm.moves))
	}
	if want := (geom.Point{X: 196, Y: 87}); h.wm.moves[0].Position != want {
		t.Fatalf("move event at %v, want screen position %v", h.wm.moves[0].Position, want)
	}

	h.window.movable = false
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonLeft))
	if len(h.wm.moves) != 1 {
		t.Fatalf("immovable window started a move")
	}
}

func TestTitleButtonsInvokeActions(t *testing.T) {
	h := normalHarness(t)
	buttons := h.frame.Buttons()
	if len(buttons) != 3 {
		t.Fatalf("expected close, maximize and minimize buttons, got %d", len(buttons))
	}
	click := func(b *Button, which input.Button) {
		c := b.Rect().Center()
		h.frame.HandleMouseEvent(press(c.X, c.Y, which))
		h.frame.HandleMouseEvent(release(c.X, c.Y, which))
	}

	click(buttons[0], input.ButtonLeft)
	click(buttons[1], input.ButtonLeft)
	click(buttons[2], input.ButtonLeft)
	want := []WindowMenuAction{ActionClose, ActionMaximizeOrRestore, ActionMinimizeOrUnminimize}
	if len(h.window.actions) != len(want) {
		t.Fatalf("actions = %v, want %v", h.window.actions, want)
	}
	for i := range want {
		if h.window.actions[i] != want[i] {
			t.Fatalf("actions = %v, want %v", h.window.actions, want)
		}
	}

	click(buttons[1], input.ButtonMiddle)
	if h.window.verticalMax != 1 {
		t.Fatalf("middle click on maximize should maximize vertically")
	}
	click(buttons[0], input.ButtonMiddle)
	if len(h.window.actions) != 3 {
		t.Fatalf("middle click on close must do nothing, got %v", h.window.actions)
	}
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	h := normalHarness(t)
	b := h.frame.Buttons()[0]
	b.OnMouseEvent(press(2, 2, input.ButtonLeft))
	if !b.IsPressed() {
		t.Fatalf("button not pressed")
	}
	b.OnMouseEvent(release(-5, 2, input.ButtonLeft))
	if b.IsPressed() || len(h.window.actions) != 0 {
		t.Fatalf("release outside should cancel the click")
	}
}

func TestButtonsFollowCapabilities(t *testing.T) {
	w := newFakeWindow(geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	w.resizable = false
	h := newHarness(t, w, withShadow(t))
	if len(h.frame.Buttons()) != 2 {
		t.Fatalf("expected close and minimize only, got %d buttons", len(h.frame.Buttons()))
	}
	if h.frame.maximizeButton != nil {
		t.Fatalf("non-resizable window got a maximize button")
	}
	if h.frame.closeButton.Icon() == nil || h.frame.minimizeButton.Icon() == nil {
		t.Fatalf("buttons should have icons")
	}
}

func TestButtonIconsFollowState(t *testing.T) {
	w := newFakeWindow(geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	h := newHarness(t, w, withShadow(t))
	close1 := h.frame.closeButton.Icon()
	max1 := h.frame.maximizeButton.Icon()

	w.modified = true
	h.frame.SetButtonIcons()
	if h.frame.closeButton.Icon() == close1 {
		t.Fatalf("modified window should use the modified close icon")
	}
	h.frame.DidSetMaximized(true)
	if h.frame.maximizeButton.Icon() == max1 {
		t.Fatalf("maximized window should use the restore icon")
	}
	h.frame.DidSetMaximized(false)
	if h.frame.maximizeButton.Icon() != max1 {
		t.Fatalf("restored window should use the maximize icon again")
	}
}

func TestBorderHoverSetsResizeCandidate(t *testing.T) {
	h := normalHarness(t)
	bottom := h.frame.Rect().Height - 2
	h.frame.HandleMouseEvent(hover(1, bottom))
	if h.wm.candidate != ResizeDownLeft {
		t.Fatalf("candidate = %v, want down-left", h.wm.candidate)
	}
	if h.comp.cursor != 1 {
		t.Fatalf("expected a cursor refresh")
	}
	if len(h.wm.resizes) != 0 {
		t.Fatalf("hover must not start a resize")
	}

	h.frame.HandleMouseEvent(press(1, bottom, input.ButtonLeft))
	if len(h.wm.resizes) != 1 {
		t.Fatalf("expected a resize to start")
	}
	if want := (geom.Point{X: 97, Y: 77 + bottom}); h.wm.resizes[0].Position != want {
		t.Fatalf("resize event at %v, want %v", h.wm.resizes[0].Position, want)
	}
}

func TestBorderIgnoredWhenNotResizable(t *testing.T) {
	h := normalHarness(t)
	h.window.resizable = false
	h.frame.HandleMouseEvent(hover(1, h.frame.Rect().Height-2))
	h.frame.HandleMouseEvent(press(1, h.frame.Rect().Height-2, input.ButtonLeft))
	if h.wm.candidate != ResizeNone || len(h.wm.resizes) != 0 || h.comp.cursor != 0 {
		t.Fatalf("non-resizable window reacted to border events")
	}
}

func TestIgnoredWindows(t *testing.T) {
	h := normalHarness(t)
	h.window.fullscreen = true
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonLeft))
	if len(h.wm.raised) != 0 || len(h.wm.moves) != 0 {
		t.Fatalf("fullscreen window reacted to a press")
	}

	h = normalHarness(t)
	h.window.typ = Tooltip
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonLeft))
	if len(h.wm.raised) != 0 || len(h.wm.moves) != 0 {
		t.Fatalf("tooltip reacted to a press")
	}
}

func TestModalChildBlocksAllButActivation(t *testing.T) {
	h := normalHarness(t)
	h.window.modal = newFakeWindow(geom.Rect{Width: 10, Height: 10})
	h.frame.HandleMouseEvent(press(100, 10, input.ButtonLeft))
	if len(h.wm.raised) != 1 {
		t.Fatalf("press should still activate the window")
	}
	if len(h.wm.moves) != 0 {
		t.Fatalf("blocked window started a move")
	}
}

func TestMenubarOpenTraverseClose(t *testing.T) {
	file := &fakeMenu{name: "File", rect: geom.Rect{Width: 40, Height: 20}}
	edit := &fakeMenu{name: "Edit", rect: geom.Rect{X: 40, Width: 40, Height: 20}}
	w := newFakeWindow(geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	w.menubar = &fakeMenubar{menus: []Menu{file, edit}}
	h := newHarness(t, w)

	mb := h.frame.MenubarRect()
	if mb.IsEmpty() {
		t.Fatalf("expected a menubar")
	}
	y := mb.Y + 5

	h.frame.HandleMouseEvent(press(mb.X+10, y, input.ButtonLeft))
	if !file.open || h.menus.current != Menu(file) {
		t.Fatalf("press should open File")
	}
	if want := (geom.Point{X: 100, Y: 100}); file.at != want {
		t.Fatalf("File popup at %v, want %v", file.at, want)
	}
	if h.menus.hovered != Menu(file) {
		t.Fatalf("File should be hovered")
	}

	h.frame.HandleMouseEvent(hover(mb.X+50, y))
	if file.open || !edit.open {
		t.Fatalf("hovering Edit with a menu open should switch menus")
	}

	h.frame.HandleMouseEvent(press(mb.X+50, y, input.ButtonLeft))
	if edit.open || h.menus.current != nil {
		t.Fatalf("press on the open item should close it")
	}

	h.frame.HandleMouseEvent(press(mb.X+150, y, input.ButtonLeft))
	if h.menus.hovered != nil {
		t.Fatalf("press outside items should clear the hover")
	}
}
