package frame

import (
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
)

// Button is a title bar button. Its rect is relative to the frame rect.
type Button struct {
	frame *Frame
	rect  geom.Rect
	icon  *bitmap.MultiScale

	onClick       func(*Button)
	onMiddleClick func(*Button)

	pressed     bool
	hovered     bool
	pressedWith input.Button
}

// Rect is the button's rect relative to the frame.
func (b *Button) Rect() geom.Rect { return b.rect }

// Icon is the glyph drawn on the button, or nil.
func (b *Button) Icon() *bitmap.MultiScale { return b.icon }

// IsPressed reports whether a press is in progress.
func (b *Button) IsPressed() bool { return b.pressed }

// SetIcon replaces the glyph.
func (b *Button) SetIcon(icon *bitmap.MultiScale) {
	b.icon = icon
}

func (b *Button) invalidate() {
	b.frame.InvalidateRect(b.rect)
}

func (b *Button) paint(scale int, p *bitmap.Painter) {
	if b.rect.IsEmpty() {
		return
	}
	b.frame.ctx.Theme.PaintButton(p, b.rect, b.frame.ctx.Palette, b.pressed, b.hovered)
	if b.icon == nil {
		return
	}
	icon := b.icon.ForScale(scale)
	size := icon.Size()
	r := geom.Rect{
		X:      b.rect.X + (b.rect.Width-size.Width)/2,
		Y:      b.rect.Y + (b.rect.Height-size.Height)/2,
		Width:  size.Width,
		Height: size.Height,
	}
	if b.pressed {
		r = r.Translated(1, 1)
	}
	p.Save()
	defer p.Restore()
	p.AddClipRect(b.rect)
	p.DrawBitmap(r, icon)
}

// OnMouseEvent handles an event whose position is relative to the button.
// A click fires on release inside the button with the button that
// pressed it.
func (b *Button) OnMouseEvent(e input.MouseEvent) {
	local := geom.Rect{Width: b.rect.Width, Height: b.rect.Height}
	switch e.Type {
	case input.MouseDown:
		if e.Button == input.ButtonLeft || (e.Button == input.ButtonMiddle && b.onMiddleClick != nil) {
			b.pressed = true
			b.pressedWith = e.Button
			b.invalidate()
		}
	case input.MouseUp:
		if !b.pressed || e.Button != b.pressedWith {
			return
		}
		b.pressed = false
		b.invalidate()
		if !local.Contains(e.Position) {
			return
		}
		switch b.pressedWith {
		case input.ButtonLeft:
			if b.onClick != nil {
				b.onClick(b)
			}
		case input.ButtonMiddle:
			if b.onMiddleClick != nil {
				b.onMiddleClick(b)
			}
		}
	case input.MouseMove:
		hovered := local.Contains(e.Position)
		if hovered != b.hovered {
			b.hovered = hovered
			b.invalidate()
		}
	}
}
