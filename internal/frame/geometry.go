package frame

import (
	"github.com/1broseidon/winframe/internal/assets"
	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/shadow"
	"github.com/1broseidon/winframe/internal/theme"
)

func (f *Frame) themeType() theme.WindowType {
	return f.window.Type().ThemeType()
}

func (f *Frame) menuRowCount() int {
	if !f.window.ShouldShowMenubar() || f.window.Menubar() == nil {
		return 0
	}
	return 1
}

func (f *Frame) frameRectFor(windowRect geom.Rect) geom.Rect {
	if f.window.IsFrameless() {
		return windowRect
	}
	return f.ctx.Theme.FrameRectForWindow(f.themeType(), windowRect, f.ctx.Palette, f.menuRowCount())
}

// Rect is the frame rectangle in screen coordinates. It always contains the
// window rect and equals it for frameless windows.
func (f *Frame) Rect() geom.Rect {
	return f.frameRectFor(f.window.Rect())
}

// MenubarRect is relative to Rect and empty when no menu bar is shown.
func (f *Frame) MenubarRect() geom.Rect {
	rows := f.menuRowCount()
	if rows == 0 {
		return geom.Rect{}
	}
	return f.ctx.Theme.MenubarRect(f.themeType(), f.window.Rect(), f.ctx.Palette, rows)
}

// TitlebarRect is relative to Rect.
func (f *Frame) TitlebarRect() geom.Rect {
	return f.ctx.Theme.TitlebarRect(f.themeType(), f.window.Rect(), f.ctx.Palette)
}

// TitlebarIconRect is relative to Rect.
func (f *Frame) TitlebarIconRect() geom.Rect {
	return f.ctx.Theme.TitlebarIconRect(f.themeType(), f.window.Rect(), f.ctx.Palette)
}

// TitlebarTextRect is relative to Rect.
func (f *Frame) TitlebarTextRect() geom.Rect {
	return f.ctx.Theme.TitlebarTextRect(f.themeType(), f.window.Rect(), f.ctx.Palette)
}

// shadowAsset picks the shadow style for the window's type and focus.
func (f *Frame) shadowAsset() *bitmap.MultiScale {
	if f.window.IsFrameless() || f.ctx.Assets == nil {
		return nil
	}
	a := f.ctx.Assets
	switch f.window.Type() {
	case Desktop, AppletArea:
		return nil
	case PopupMenu:
		return a.Shadow(assets.ShadowMenu)
	case Tooltip:
		return a.Shadow(assets.ShadowTooltip)
	case Taskbar:
		return a.Shadow(assets.ShadowTaskbar)
	case Normal, ToolWindow, Notification:
		if hw := f.ctx.WM.HighlightWindow(); hw != nil {
			if hw == f.window {
				return a.Shadow(assets.ShadowActiveWindow)
			}
			return a.Shadow(assets.ShadowInactiveWindow)
		}
		if aw := f.ctx.WM.ActiveWindow(); aw != nil && aw == f.window {
			return a.Shadow(assets.ShadowActiveWindow)
		}
		return a.Shadow(assets.ShadowInactiveWindow)
	default:
		return nil
	}
}

// checkedShadow is the applicable shadow, or nil when none applies or the
// asset has no alpha channel to overlay with. A malformed asset is nil
// together with the layout error.
func (f *Frame) checkedShadow() (*bitmap.MultiScale, error) {
	s := f.shadowAsset()
	if s == nil || !s.HasAlpha() {
		return nil, nil
	}
	if _, err := shadow.BaseSize(s.Default()); err != nil {
		return nil, err
	}
	return s, nil
}

func (f *Frame) shadow() *bitmap.MultiScale {
	s, _ := f.checkedShadow()
	return s
}

// HasShadow reports whether a translucent shadow is drawn around the frame.
func (f *Frame) HasShadow() bool {
	return f.shadow() != nil
}

// shadowBase is the shadow tile size in logical pixels, or 0.
func (f *Frame) shadowBase() int {
	s := f.shadow()
	if s == nil {
		return 0
	}
	return s.Default().Height() / 2
}

func (f *Frame) inflatedForShadow(r geom.Rect) geom.Rect {
	if base := f.shadowBase(); base > 0 {
		return r.Inflated(base, base)
	}
	return r
}

// constrainedToScreen clips r to the screen closest to the frame while the
// window is maximized or tiled.
func (f *Frame) constrainedToScreen(r geom.Rect) geom.Rect {
	if !f.window.IsMaximized() && f.window.Tiled() == TileNone {
		return r
	}
	if f.ctx.Screens == nil {
		return r
	}
	if scr := f.ctx.Screens.ClosestToRect(f.Rect()); scr != nil {
		return r.Intersected(scr.Rect)
	}
	return r
}

// RenderRect is everything the frame paints, shadow included, clipped to
// one screen for maximized and tiled windows.
func (f *Frame) RenderRect() geom.Rect {
	return f.constrainedToScreen(f.inflatedForShadow(f.Rect()))
}

// UnconstrainedRenderRect is RenderRect without the screen clipping.
func (f *Frame) UnconstrainedRenderRect() geom.Rect {
	return f.inflatedForShadow(f.Rect())
}

// OpaqueRenderRects is the part of the render rect that hides whatever is
// below the window.
func (f *Frame) OpaqueRenderRects() geom.RectSet {
	wr := f.window.Rect()
	if f.hasAlpha {
		if f.window.IsOpaque() {
			return geom.NewRectSet(f.constrainedToScreen(wr))
		}
		return geom.RectSet{}
	}
	if f.window.IsOpaque() {
		return geom.NewRectSet(f.constrainedToScreen(f.Rect()))
	}
	return geom.NewRectSet(f.constrainedToScreen(f.Rect()).Shatter(wr)...)
}

// TransparentRenderRects is the part of the render rect that needs the
// windows below it painted first.
func (f *Frame) TransparentRenderRects() geom.RectSet {
	wr := f.window.Rect()
	total := f.RenderRect()
	if f.hasAlpha {
		if f.window.IsOpaque() {
			return geom.NewRectSet(total.Shatter(wr)...)
		}
		return geom.NewRectSet(total)
	}
	var set geom.RectSet
	if f.HasShadow() {
		set.AddMany(total.Shatter(f.Rect()))
	}
	if !f.window.IsOpaque() {
		set.Add(wr.Intersected(total))
	}
	return set
}
