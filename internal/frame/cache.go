package frame

import (
	"fmt"
	"image/color"

	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/1broseidon/winframe/internal/shadow"
)

// renderCache holds the decoration of one frame at one scale factor, split
// into a horizontal band (everything above and below the content) and a
// vertical band (everything left and right of it).
type renderCache struct {
	topBottom *bitmap.Bitmap
	leftRight *bitmap.Bitmap

	// bottomY is the height of the top piece in topBottom; rightX the width
	// of the left piece in leftRight.
	bottomY int
	rightX  int

	dirty       bool
	shadowDirty bool
}

func newRenderCache() *renderCache {
	return &renderCache{dirty: true, shadowDirty: true}
}

// setDirty never downgrades a pending shadow repaint.
func (c *renderCache) setDirty(shadow bool) {
	c.dirty = true
	if shadow {
		c.shadowDirty = true
	}
}

func bandStale(b *bitmap.Bitmap, size geom.Size, scale int) bool {
	if size.IsEmpty() {
		return b != nil
	}
	return b == nil || b.Size() != size || b.Scale() != scale
}

// render rebuilds the bands when dirty. On error the flags stay set so the
// next paint retries; bands from the last successful render are kept
// unless they had to be reallocated.
func (c *renderCache) render(f *Frame, scale int) error {
	if !c.dirty {
		return nil
	}

	frameRect := f.Rect()
	inflated := frameRect
	var offset geom.Point
	var shadowBitmap *bitmap.Bitmap
	s, err := f.checkedShadow()
	if err != nil {
		f.warnShadow(scale, err)
	}
	if s != nil {
		base := s.Default().Height() / 2
		inflated = frameRect.Inflated(base, base)
		offset = geom.Point{X: base, Y: base}
		shadowBitmap = s.ForScale(scale)
		if _, err := shadow.BaseSize(shadowBitmap); err != nil {
			f.warnShadow(scale, err)
			shadowBitmap = nil
		}
	}
	wr := f.window.Rect()

	scratch, err := f.scratch().Acquire(scale, inflated.Size())
	if err != nil {
		return fmt.Errorf("scratch surface: %w", err)
	}

	topBottomHeight := inflated.Height - wr.Height
	leftRightWidth := inflated.Width - wr.Width

	tbSize := geom.Size{Width: inflated.Width, Height: topBottomHeight}
	if bandStale(c.topBottom, tbSize, scale) {
		c.topBottom = nil
		c.shadowDirty = true
		if !tbSize.IsEmpty() {
			b, err := bitmap.New(tbSize, scale)
			if err != nil {
				return fmt.Errorf("top/bottom band: %w", err)
			}
			c.topBottom = b
		}
	}
	lrSize := geom.Size{Width: leftRightWidth, Height: wr.Height}
	if bandStale(c.leftRight, lrSize, scale) {
		c.leftRight = nil
		c.shadowDirty = true
		if !lrSize.IsEmpty() {
			b, err := bitmap.New(lrSize, scale)
			if err != nil {
				return fmt.Errorf("left/right band: %w", err)
			}
			c.leftRight = b
		}
	}

	logging.Logger().Debug("frame: rendering cache",
		"window", f.window.Title(),
		"scale", scale,
		"shadow", c.shadowDirty)

	updateRect := frameRect
	updateLoc := offset
	if c.shadowDirty {
		updateRect = inflated
		updateLoc = geom.Point{}
	}

	p := bitmap.NewPainter(scratch)
	p.AddClipRect(geom.Rect{Width: inflated.Width, Height: inflated.Height})

	// The content hole is never copied out, so only the frame area is
	// cleared.
	for _, r := range updateRect.Shatter(wr) {
		p.ClearRect(r.Translated(-inflated.X, -inflated.Y), color.Transparent)
	}

	if c.shadowDirty && shadowBitmap != nil {
		if err := shadow.Paint(p, geom.Rect{Width: inflated.Width, Height: inflated.Height}, shadowBitmap, false, false); err != nil {
			f.warnShadow(scale, err)
		}
	}

	p.Save()
	p.Translate(offset.X, offset.Y)
	f.renderChrome(scale, p)
	p.Restore()

	if c.topBottom != nil {
		c.bottomY = wr.Y - inflated.Y
		tb := bitmap.NewPainter(c.topBottom)
		tb.AddClipRect(geom.Rect{
			X:      updateLoc.X,
			Y:      updateLoc.Y,
			Width:  updateRect.Width,
			Height: topBottomHeight - updateLoc.Y - (inflated.Bottom() - updateRect.Bottom()),
		})
		if c.bottomY > 0 {
			tb.Copy(geom.Point{}, scratch, geom.Rect{Width: inflated.Width, Height: c.bottomY})
		}
		if c.bottomY < topBottomHeight {
			tb.Copy(geom.Point{Y: c.bottomY}, scratch, geom.Rect{
				Y:      wr.Bottom() - inflated.Y,
				Width:  inflated.Width,
				Height: topBottomHeight - c.bottomY,
			})
		}
	} else {
		c.bottomY = 0
	}

	if c.leftRight != nil {
		c.rightX = wr.X - inflated.X
		lr := bitmap.NewPainter(c.leftRight)
		lr.AddClipRect(geom.Rect{
			X:      updateLoc.X,
			Width:  leftRightWidth - updateLoc.X - (inflated.Right() - updateRect.Right()),
			Height: wr.Height,
		})
		if c.rightX > 0 {
			lr.Copy(geom.Point{}, scratch, geom.Rect{Y: c.bottomY, Width: c.rightX, Height: wr.Height})
		}
		if c.rightX < leftRightWidth {
			lr.Copy(geom.Point{X: c.rightX}, scratch, geom.Rect{
				X:      wr.Right() - inflated.X,
				Y:      c.bottomY,
				Width:  leftRightWidth - c.rightX,
				Height: wr.Height,
			})
		}
	} else {
		c.rightX = 0
	}

	c.dirty = false
	c.shadowDirty = false
	return nil
}

// warnShadow reports a shadow that is skipped while the chrome is still
// rendered.
func (f *Frame) warnShadow(scale int, err error) {
	logging.Logger().Warn("frame: skipping shadow",
		"window", f.window.Title(),
		"scale", scale,
		"error", err)
}

// paint blits the parts of the bands that intersect rect. The content
// area is left alone.
func (c *renderCache) paint(f *Frame, p *bitmap.Painter, rect geom.Rect) {
	frameRect := f.UnconstrainedRenderRect()
	wr := f.window.Rect()
	opacity := f.opacity

	if c.topBottom != nil {
		topBottomHeight := frameRect.Height - wr.Height
		if c.bottomY > 0 {
			src := rect.Intersected(geom.Rect{X: frameRect.X, Y: frameRect.Y, Width: frameRect.Width, Height: c.bottomY})
			if !src.IsEmpty() {
				p.Blit(src.Location(), c.topBottom, src.Translated(-frameRect.X, -frameRect.Y), opacity)
			}
		}
		if c.bottomY < topBottomHeight {
			inFrame := geom.Rect{X: frameRect.X, Y: wr.Bottom(), Width: frameRect.Width, Height: topBottomHeight - c.bottomY}
			src := rect.Intersected(inFrame)
			if !src.IsEmpty() {
				p.Blit(src.Location(), c.topBottom, src.Translated(-inFrame.X, -inFrame.Y+c.bottomY), opacity)
			}
		}
	}

	if c.leftRight != nil {
		leftRightWidth := frameRect.Width - wr.Width
		if c.rightX > 0 {
			inFrame := geom.Rect{X: frameRect.X, Y: wr.Y, Width: c.rightX, Height: wr.Height}
			src := rect.Intersected(inFrame)
			if !src.IsEmpty() {
				p.Blit(src.Location(), c.leftRight, src.Translated(-inFrame.X, -inFrame.Y), opacity)
			}
		}
		if c.rightX < leftRightWidth {
			inFrame := geom.Rect{X: wr.Right(), Y: wr.Y, Width: leftRightWidth - c.rightX, Height: wr.Height}
			src := rect.Intersected(inFrame)
			if !src.IsEmpty() {
				p.Blit(src.Location(), c.leftRight, src.Translated(-inFrame.X+c.rightX, -inFrame.Y), opacity)
			}
		}
	}
}

// alphaThreshold converts the theme's [0,1] threshold to an 8-bit alpha.
func alphaThreshold(v float64) uint8 {
	return uint8(min(max(v, 0), 1) * 255)
}

// sampleAlpha reads the alpha at a physical position; positions outside b
// count as opaque.
func sampleAlpha(b *bitmap.Bitmap, p geom.Point) uint8 {
	if !b.PhysicalRect().Contains(p) {
		return 0xff
	}
	return b.AlphaAt(p)
}

// hitTest decides whether position, already known to be inside the frame
// and outside the content, lands on a visible pixel. rel is position
// relative to the unconstrained render rect.
func (c *renderCache) hitTest(f *Frame, position, rel geom.Point) (HitTestResult, bool) {
	result := HitTestResult{
		Window:                 f.window,
		ScreenPosition:         position,
		WindowRelativePosition: rel,
		IsFrameHit:             true,
	}

	threshold := alphaThreshold(f.ctx.Theme.FrameAlphaHitThreshold(f.windowStateForTheme()))
	if threshold == 0 {
		return result, true
	}

	alpha := uint8(0xff)
	wr := f.window.Rect()
	switch {
	case position.Y < wr.Y:
		if c.topBottom != nil {
			alpha = sampleAlpha(c.topBottom, rel.Scaled(c.topBottom.Scale()))
		}
	case position.Y >= wr.Bottom():
		if c.topBottom != nil {
			s := c.topBottom.Scale()
			alpha = sampleAlpha(c.topBottom, geom.Point{X: rel.X * s, Y: (c.bottomY + position.Y - wr.Bottom()) * s})
		}
	case position.X < wr.X:
		if c.leftRight != nil {
			s := c.leftRight.Scale()
			alpha = sampleAlpha(c.leftRight, geom.Point{X: rel.X * s, Y: (rel.Y - c.bottomY) * s})
		}
	case position.X >= wr.Right():
		if c.leftRight != nil {
			s := c.leftRight.Scale()
			alpha = sampleAlpha(c.leftRight, geom.Point{X: (c.rightX + position.X - wr.Right()) * s, Y: (rel.Y - c.bottomY) * s})
		}
	default:
		return HitTestResult{}, false
	}
	if alpha >= threshold {
		return result, true
	}
	return HitTestResult{}, false
}
