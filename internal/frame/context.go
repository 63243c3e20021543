package frame

import (
	"time"

	"github.com/1broseidon/winframe/internal/assets"
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/1broseidon/winframe/internal/theme"
)

// DefaultFlashPeriod is the interval between flash animation steps.
const DefaultFlashPeriod = 100 * time.Millisecond

// Window is the decorated window as seen by its frame. The window owns the
// frame; the frame only keeps this handle.
type Window interface {
	Rect() geom.Rect
	Type() WindowType
	Title() string
	Icon() *bitmap.Bitmap

	IsFrameless() bool
	IsFullscreen() bool
	IsMaximized() bool
	Tiled() TileType
	IsResizable() bool
	IsMinimizable() bool
	IsMovable() bool
	IsModified() bool
	IsOpaque() bool

	// Menubar returns nil when the window has none.
	Menubar() Menubar
	ShouldShowMenubar() bool
	// BlockingModalWindow returns nil unless a modal child blocks input.
	BlockingModalWindow() Window

	HandleWindowMenuAction(action WindowMenuAction)
	SetVerticallyMaximized()
	PopupWindowMenu(at geom.Point, defaultAction WindowMenuDefaultAction)
	WindowMenuActivateDefault()
}

// WindowManager answers focus and gesture queries and starts gestures.
type WindowManager interface {
	ActiveWindow() Window
	HighlightWindow() Window
	MoveWindow() Window
	IsActiveWindowOrAccessory(w Window) bool

	MoveToFrontAndMakeActive(w Window)
	StartWindowMove(w Window, e input.MouseEvent)
	StartWindowResize(w Window, e input.MouseEvent)
	SetResizeCandidate(w Window, d ResizeDirection)

	StartMenuDoubleClick(w Window, e input.MouseEvent)
	IsMenuDoubleClick(w Window, e input.MouseEvent) bool

	WindowWithActiveMenu() Window
	SetWindowWithActiveMenu(w Window)

	NotifyOpacityChanged(w Window)
	NotifyRectChanged(w Window, oldRect, newRect geom.Rect)
}

// MenuManager tracks the single open menu and the hovered menubar item.
type MenuManager interface {
	CurrentMenu() Menu
	HoveredMenu() Menu
	SetHoveredMenu(m Menu)
	OpenMenu(m Menu)
	CloseEveryone()
}

// Menubar is a window's row of menus.
type Menubar interface {
	Menus() []Menu
}

// Menu is one menubar item and its popup.
type Menu interface {
	Name() string
	// RectInMenubar is the item's rect relative to the menubar.
	RectInMenubar() geom.Rect
	IsOpen() bool
	// MoveTo places the popup at a screen position.
	MoveTo(p geom.Point)
}

// Compositor receives damage and invalidation requests.
type Compositor interface {
	InvalidateScreen(r geom.Rect)
	InvalidateOcclusions()
	InvalidateCursor()
}

// ScreenLayout looks up screens for geometry decisions.
type ScreenLayout interface {
	ClosestToRect(r geom.Rect) *screen.Screen
	FindByLocation(p geom.Point) *screen.Screen
}

// Scheduler runs repeating callbacks on the control thread.
type Scheduler interface {
	Every(interval time.Duration, fn func()) eventloop.Task
}

// Context bundles the collaborators every frame talks to.
type Context struct {
	Theme      theme.Theme
	Palette    *theme.Palette
	Assets     *assets.Set
	WM         WindowManager
	Menus      MenuManager
	Compositor Compositor
	Screens    ScreenLayout
	Scratch    *bitmap.Pool
	Scheduler  Scheduler

	FlashPeriod time.Duration
}

func (c *Context) flashPeriod() time.Duration {
	if c.FlashPeriod <= 0 {
		return DefaultFlashPeriod
	}
	return c.FlashPeriod
}
