// Package screen tracks the attached displays and their scale factors.
package screen

import (
	"sort"

	"github.com/1broseidon/winframe/internal/geom"
)

// Screen is one display in the virtual desktop.
type Screen struct {
	ID       int
	Name     string
	Rect     geom.Rect
	WorkArea geom.Rect // Rect minus docks and panels; equals Rect when unknown
	Scale    int
}

// ScaleFactor is never below 1.
func (s *Screen) ScaleFactor() int {
	if s.Scale < 1 {
		return 1
	}
	return s.Scale
}

// Usable returns the work area, falling back to the full rect.
func (s *Screen) Usable() geom.Rect {
	if s.WorkArea.IsEmpty() {
		return s.Rect
	}
	return s.WorkArea
}

// Registry is the set of attached screens. The first screen is the main one.
type Registry struct {
	screens []Screen
}

// NewRegistry copies screens into a registry.
func NewRegistry(screens ...Screen) *Registry {
	return &Registry{screens: append([]Screen(nil), screens...)}
}

// Screens returns the screens in registration order.
func (r *Registry) Screens() []Screen { return r.screens }

// Len is the number of screens.
func (r *Registry) Len() int { return len(r.screens) }

// Main returns the first screen, or nil when there are none.
func (r *Registry) Main() *Screen {
	if len(r.screens) == 0 {
		return nil
	}
	return &r.screens[0]
}

// FindByLocation returns the screen containing p, or nil.
func (r *Registry) FindByLocation(p geom.Point) *Screen {
	for i := range r.screens {
		if r.screens[i].Rect.Contains(p) {
			return &r.screens[i]
		}
	}
	return nil
}

// ClosestToLocation returns the screen containing p or the nearest one.
func (r *Registry) ClosestToLocation(p geom.Point) *Screen {
	if s := r.FindByLocation(p); s != nil {
		return s
	}
	var best *Screen
	bestDist := 0
	for i := range r.screens {
		d := r.screens[i].Rect.DistanceSquared(p)
		if best == nil || d < bestDist {
			best, bestDist = &r.screens[i], d
		}
	}
	return best
}

// ClosestToRect returns the screen sharing the largest area with rect. When
// rect lies outside every screen the one nearest its center is used.
func (r *Registry) ClosestToRect(rect geom.Rect) *Screen {
	var best *Screen
	bestArea := 0
	for i := range r.screens {
		if area := r.screens[i].Rect.Intersected(rect).Area(); area > bestArea {
			best, bestArea = &r.screens[i], area
		}
	}
	if best != nil {
		return best
	}
	return r.ClosestToLocation(rect.Center())
}

// Scales lists the distinct scale factors in use, ascending.
func (r *Registry) Scales() []int {
	seen := make(map[int]struct{})
	var out []int
	for i := range r.screens {
		s := r.screens[i].ScaleFactor()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Bounds is the smallest rect covering every screen.
func (r *Registry) Bounds() geom.Rect {
	if len(r.screens) == 0 {
		return geom.Rect{}
	}
	b := r.screens[0].Rect
	for _, s := range r.screens[1:] {
		x1, y1 := min(b.X, s.Rect.X), min(b.Y, s.Rect.Y)
		x2, y2 := max(b.Right(), s.Rect.Right()), max(b.Bottom(), s.Rect.Bottom())
		b = geom.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	}
	return b
}
