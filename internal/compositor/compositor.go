// Package compositor collects screen damage and redraws it from a stack of
// layers into one framebuffer per screen.
package compositor

import (
	"fmt"
	"image/color"

	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/1broseidon/winframe/internal/screen"
)

// Layer is something stacked on the desktop, typically a window and its
// frame.
type Layer interface {
	// Paint draws the part of the layer inside rect. p draws in screen
	// coordinates.
	Paint(scr *screen.Screen, p *bitmap.Painter, rect geom.Rect)
	// RenderRect bounds everything the layer paints.
	RenderRect() geom.Rect
	// OpaqueRects is the area the layer fully hides.
	OpaqueRects() geom.RectSet
}

// Stats describes the last Compose call.
type Stats struct {
	Screens     int
	DamageArea  int
	LayerPaints int
	Culled      int
}

// Compositor owns the framebuffers. It is used from the control thread only.
type Compositor struct {
	screens    *screen.Registry
	background color.RGBA

	damage          geom.RectSet
	occlusionsDirty bool
	above           []geom.RectSet

	framebuffers map[int]*bitmap.Bitmap
	cursorHook   func()
	last         Stats
}

// New creates a compositor for screens that clears damage to background.
func New(screens *screen.Registry, background color.RGBA) *Compositor {
	return &Compositor{
		screens:         screens,
		background:      background,
		occlusionsDirty: true,
		framebuffers:    make(map[int]*bitmap.Bitmap),
	}
}

// SetCursorHook installs fn to run whenever the cursor must be re-evaluated.
func (c *Compositor) SetCursorHook(fn func()) {
	c.cursorHook = fn
}

// InvalidateScreen marks r, in screen coordinates, for redraw.
func (c *Compositor) InvalidateScreen(r geom.Rect) {
	c.damage.Add(r)
}

// InvalidateOcclusions forces the occlusion pass on the next Compose.
func (c *Compositor) InvalidateOcclusions() {
	c.occlusionsDirty = true
}

// InvalidateCursor asks the cursor hook to pick a new cursor.
func (c *Compositor) InvalidateCursor() {
	if c.cursorHook != nil {
		c.cursorHook()
	}
}

// Damage is the area waiting to be redrawn.
func (c *Compositor) Damage() geom.RectSet { return c.damage }

// OcclusionsDirty reports whether the occlusion pass will run again.
func (c *Compositor) OcclusionsDirty() bool { return c.occlusionsDirty }

// LastStats describes the previous Compose.
func (c *Compositor) LastStats() Stats { return c.last }

// Framebuffer returns the contents of the screen with the given ID, or nil
// before its first Compose.
func (c *Compositor) Framebuffer(id int) *bitmap.Bitmap {
	return c.framebuffers[id]
}

func (c *Compositor) framebuffer(scr *screen.Screen) (*bitmap.Bitmap, bool, error) {
	fb := c.framebuffers[scr.ID]
	if fb != nil && fb.Size() == scr.Rect.Size() && fb.Scale() == scr.ScaleFactor() {
		return fb, false, nil
	}
	fb, err := bitmap.New(scr.Rect.Size(), scr.ScaleFactor())
	if err != nil {
		return nil, false, err
	}
	c.framebuffers[scr.ID] = fb
	return fb, true, nil
}

// computeOcclusions records, for every layer, the opaque area of the
// layers stacked above it.
func (c *Compositor) computeOcclusions(layers []Layer) {
	c.above = make([]geom.RectSet, len(layers))
	var acc geom.RectSet
	for i := len(layers) - 1; i >= 0; i-- {
		c.above[i] = geom.NewRectSet(acc.Rects()...)
		acc.AddMany(layers[i].OpaqueRects().Rects())
	}
	c.occlusionsDirty = false
}

// Compose redraws the damaged area. layers are ordered bottom to top. A
// freshly allocated framebuffer is redrawn entirely.
func (c *Compositor) Compose(layers []Layer) error {
	if c.occlusionsDirty || len(c.above) != len(layers) {
		c.computeOcclusions(layers)
	}
	stats := Stats{}

	screens := c.screens.Screens()
	for i := range screens {
		scr := &screens[i]
		fb, fresh, err := c.framebuffer(scr)
		if err != nil {
			return fmt.Errorf("framebuffer for screen %q: %w", scr.Name, err)
		}
		dirty := c.damage.Intersected(scr.Rect)
		if fresh {
			dirty = geom.NewRectSet(scr.Rect)
		}
		if dirty.IsEmpty() {
			continue
		}
		stats.Screens++
		stats.DamageArea += dirty.Area()

		p := bitmap.NewPainter(fb)
		p.Translate(-scr.Rect.X, -scr.Rect.Y)
		for _, r := range dirty.Rects() {
			p.Save()
			p.AddClipRect(r)
			p.ClearRect(r, c.background)
			for li, l := range layers {
				visible := geom.NewRectSet(r.Intersected(l.RenderRect()))
				for _, o := range c.above[li].Rects() {
					visible = visible.Shatter(o)
				}
				if visible.IsEmpty() {
					if !r.Intersected(l.RenderRect()).IsEmpty() {
						stats.Culled++
					}
					continue
				}
				for _, v := range visible.Rects() {
					l.Paint(scr, p, v)
					stats.LayerPaints++
				}
			}
			p.Restore()
		}
	}

	c.damage.Clear()
	c.last = stats
	logging.Logger().Debug("compositor: composed",
		"screens", stats.Screens,
		"damage", stats.DamageArea,
		"paints", stats.LayerPaints,
		"culled", stats.Culled)
	return nil
}
