package desktop

import (
	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"golang.org/x/image/font"
)

// menubarItemPadding is the horizontal space around each menu name.
const menubarItemPadding = 10

// Menu is one menubar item. Its popup is positioned but not drawn.
type Menu struct {
	name string
	rect geom.Rect
	open bool
	at   geom.Point
}

var _ frame.Menu = (*Menu)(nil)

func (m *Menu) Name() string             { return m.name }
func (m *Menu) RectInMenubar() geom.Rect { return m.rect }
func (m *Menu) IsOpen() bool             { return m.open }
func (m *Menu) MoveTo(p geom.Point)      { m.at = p }

// PopupLocation is where the popup was last placed, in screen coordinates.
func (m *Menu) PopupLocation() geom.Point { return m.at }

// Menubar lays its menus out left to right.
type Menubar struct {
	menus []frame.Menu
	items []*Menu
}

// NewMenubar sizes each item to its name in face. height is the menubar
// row height.
func NewMenubar(face font.Face, height int, names ...string) *Menubar {
	mb := &Menubar{}
	x := 2
	for _, name := range names {
		width := font.MeasureString(face, name).Ceil() + menubarItemPadding
		item := &Menu{name: name, rect: geom.Rect{X: x, Y: 0, Width: width, Height: height}}
		mb.items = append(mb.items, item)
		mb.menus = append(mb.menus, item)
		x += width
	}
	return mb
}

func (b *Menubar) Menus() []frame.Menu { return b.menus }

// Item returns the menu named name, or nil.
func (b *Menubar) Item(name string) *Menu {
	for _, m := range b.items {
		if m.name == name {
			return m
		}
	}
	return nil
}
