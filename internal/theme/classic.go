package theme

import (
	"image/color"

	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const iconSize = 16

// Classic is a bevelled, gradient-titlebar theme.
type Classic struct {
	// HitThreshold is the fraction of full alpha a frame pixel needs to
	// count as a frame hit. Zero makes the whole frame rect clickable.
	HitThreshold float64

	face font.Face
}

// NewClassic returns the classic theme using the built-in 7x13 face.
func NewClassic(hitThreshold float64) *Classic {
	return &Classic{HitThreshold: hitThreshold, face: basicfont.Face7x13}
}

func (c *Classic) Font() font.Face { return c.face }

func (c *Classic) titleHeight(pal *Palette) int {
	return max(pal.TitleHeight, c.face.Metrics().Height.Ceil()+4)
}

func (c *Classic) FrameRectForWindow(t WindowType, wr geom.Rect, pal *Palette, menuRowCount int) geom.Rect {
	b := pal.BorderThickness
	th := c.titleHeight(pal)
	switch t {
	case Normal, ToolWindow:
		top := th + menuRowCount*pal.MenubarHeight
		return geom.Rect{X: wr.X - b, Y: wr.Y - top - b, Width: wr.Width + 2*b, Height: wr.Height + top + 2*b}
	case Notification:
		return geom.Rect{X: wr.X - b, Y: wr.Y - b, Width: wr.Width + th + 2*b, Height: wr.Height + 2*b}
	default:
		return wr
	}
}

func (c *Classic) TitlebarRect(t WindowType, wr geom.Rect, pal *Palette) geom.Rect {
	b := pal.BorderThickness
	th := c.titleHeight(pal)
	switch t {
	case Normal, ToolWindow:
		return geom.Rect{X: b, Y: b, Width: wr.Width, Height: th}
	case Notification:
		// Notifications carry their titlebar as a strip on the right.
		return geom.Rect{X: b + wr.Width, Y: b, Width: th, Height: wr.Height}
	default:
		return geom.Rect{}
	}
}

func (c *Classic) TitlebarIconRect(t WindowType, wr geom.Rect, pal *Palette) geom.Rect {
	if t != Normal {
		return geom.Rect{}
	}
	tb := c.TitlebarRect(t, wr, pal)
	return geom.Rect{X: tb.X + 2, Y: tb.Y + (tb.Height-iconSize)/2, Width: iconSize, Height: iconSize}
}

func (c *Classic) TitlebarTextRect(t WindowType, wr geom.Rect, pal *Palette) geom.Rect {
	tb := c.TitlebarRect(t, wr, pal)
	var x int
	switch t {
	case Normal:
		x = c.TitlebarIconRect(t, wr, pal).Right() + 4
	case ToolWindow:
		x = tb.X + 4
	default:
		return geom.Rect{}
	}
	return geom.Rect{X: x, Y: tb.Y, Width: max(0, tb.Right()-x-2), Height: tb.Height}
}

func (c *Classic) MenubarRect(t WindowType, wr geom.Rect, pal *Palette, menuRowCount int) geom.Rect {
	if menuRowCount <= 0 || (t != Normal && t != ToolWindow) {
		return geom.Rect{}
	}
	b := pal.BorderThickness
	return geom.Rect{X: b, Y: b + c.titleHeight(pal), Width: wr.Width, Height: menuRowCount * pal.MenubarHeight}
}

// LayoutButtons places buttonCount title buttons. The first button is the
// outermost one: rightmost on a horizontal titlebar, topmost on a vertical
// one.
func (c *Classic) LayoutButtons(t WindowType, wr geom.Rect, pal *Palette, buttonCount int) []geom.Rect {
	out := make([]geom.Rect, buttonCount)
	tb := c.TitlebarRect(t, wr, pal)
	bw, bh := pal.TitleButtonWidth, pal.TitleButtonHeight
	switch t {
	case Normal, ToolWindow:
		x := tb.Right() - 2 - bw
		y := tb.Y + (tb.Height-bh)/2
		for i := range out {
			out[i] = geom.Rect{X: x, Y: y, Width: bw, Height: bh}
			x -= bw + 2
		}
	case Notification:
		x := tb.X + (tb.Width-bw)/2
		y := tb.Y + 2
		for i := range out {
			out[i] = geom.Rect{X: x, Y: y, Width: bw, Height: bh}
			y += bh + 2
		}
	}
	return out
}

func (c *Classic) FrameUsesAlpha(state WindowState, pal *Palette) bool {
	colors := pal.TitleColors(state)
	return pal.BorderColor(state).A < 0xff || colors[0].A < 0xff || colors[1].A < 0xff
}

func (c *Classic) FrameAlphaHitThreshold(WindowState) float64 {
	return min(max(c.HitThreshold, 0), 1)
}

func (c *Classic) PaintNormalFrame(p *bitmap.Painter, params FrameParams) {
	c.paintFrame(p, Normal, params)
}

func (c *Classic) PaintToolWindowFrame(p *bitmap.Painter, params FrameParams) {
	c.paintFrame(p, ToolWindow, params)
}

func (c *Classic) PaintNotificationFrame(p *bitmap.Painter, params FrameParams) {
	c.paintFrame(p, Notification, params)
}

func (c *Classic) paintFrame(p *bitmap.Painter, t WindowType, params FrameParams) {
	pal := params.Palette
	frame := c.FrameRectForWindow(t, params.WindowRect, pal, params.MenuRowCount)
	local := geom.Rect{Width: frame.Width, Height: frame.Height}
	c.paintBevel(p, local, pal.BorderColor(params.State), pal.ButtonHighlight, pal.ButtonShadow)

	tb := c.TitlebarRect(t, params.WindowRect, pal)
	colors := pal.TitleColors(params.State)
	c.paintGradient(p, tb, colors[0], colors[1], t == Notification)
	if t == Notification {
		return
	}

	if icon := c.TitlebarIconRect(t, params.WindowRect, pal); params.Icon != nil && !icon.IsEmpty() {
		p.DrawBitmap(icon, params.Icon)
	}
	text := c.TitlebarTextRect(t, params.WindowRect, pal)
	if !params.LeftmostButton.IsEmpty() {
		text.Width = min(text.Width, params.LeftmostButton.X-2-text.X)
	}
	p.DrawText(text, params.Title, c.face, pal.TitleTextColor(params.State), bitmap.AlignLeft)
}

func (c *Classic) PaintButton(p *bitmap.Painter, r geom.Rect, pal *Palette, pressed, hovered bool) {
	face := pal.ButtonFace
	if hovered {
		face = pal.HoverHighlight
	}
	c.fillShape(p, r, func(dc *gg.Context, w, h, scale float64) {
		dc.SetColor(face)
		dc.DrawRoundedRectangle(0, 0, w, h, 2*scale)
	})
	light, dark := pal.ButtonHighlight, pal.ButtonShadow
	if pressed {
		light, dark = dark, light
	}
	c.paintEdges(p, r, light, dark)
}

func (c *Classic) paintBevel(p *bitmap.Painter, r geom.Rect, fill, light, dark color.RGBA) {
	p.FillRect(r, fill)
	c.paintEdges(p, r, light, dark)
}

func (c *Classic) paintEdges(p *bitmap.Painter, r geom.Rect, light, dark color.RGBA) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	p.FillRect(geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: 1}, light)
	p.FillRect(geom.Rect{X: r.X, Y: r.Y, Width: 1, Height: r.Height}, light)
	p.FillRect(geom.Rect{X: r.X, Y: r.Bottom() - 1, Width: r.Width, Height: 1}, dark)
	p.FillRect(geom.Rect{X: r.Right() - 1, Y: r.Y, Width: 1, Height: r.Height}, dark)
}

func (c *Classic) paintGradient(p *bitmap.Painter, r geom.Rect, from, to color.RGBA, vertical bool) {
	c.fillShape(p, r, func(dc *gg.Context, w, h, _ float64) {
		x1, y1 := w, 0.0
		if vertical {
			x1, y1 = 0, h
		}
		dc.SetFillBrush(gg.NewLinearGradientBrush(0, 0, x1, y1).
			AddColorStop(0, gg.FromColor(from)).
			AddColorStop(1, gg.FromColor(to)))
		dc.DrawRectangle(0, 0, w, h)
	})
}

// fillShape rasterizes the path built by draw at the target's physical
// resolution and composites it into r.
func (c *Classic) fillShape(p *bitmap.Painter, r geom.Rect, draw func(dc *gg.Context, w, h, scale float64)) {
	if r.IsEmpty() {
		return
	}
	s := p.Target().Scale()
	dc := gg.NewContext(r.Width*s, r.Height*s)
	defer dc.Close()
	draw(dc, float64(r.Width*s), float64(r.Height*s), float64(s))
	if err := dc.Fill(); err != nil {
		logging.Logger().Warn("theme: fill failed", "rect", r, "err", err)
		return
	}
	p.DrawImage(r, dc.Image())
}
