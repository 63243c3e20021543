// Package geom holds the integer rectangle algebra shared by the frame,
// shadow and compositor packages.
//
// All rectangles use exclusive right and bottom edges: a Rect{X: 0, Width: 10}
// covers columns 0 through 9 and Right() returns 10.
package geom

import (
	"fmt"
	"image"
)

// Point is a position in logical pixels.
type Point struct {
	X int
	Y int
}

// Translated returns p moved by (dx, dy).
func (p Point) Translated(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scaled multiplies both coordinates by n.
func (p Point) Scaled(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Contains reports whether a rectangle of size o fits inside s.
func (s Size) Contains(o Size) bool {
	return o.Width <= s.Width && o.Height <= s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an integer rectangle. Right and Bottom are exclusive, and a rect
// with no width or height is empty.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect builds a rect from a location and a size.
func NewRect(loc Point, size Size) Rect {
	return Rect{X: loc.X, Y: loc.Y, Width: size.Width, Height: size.Height}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

func (r Rect) Location() Point { return Point{X: r.X, Y: r.Y} }
func (r Rect) Size() Size      { return Size{Width: r.Width, Height: r.Height} }

// BottomLeft is the first point below the rect on its left edge.
func (r Rect) BottomLeft() Point { return Point{X: r.X, Y: r.Bottom()} }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether the rect covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area is zero for empty rects.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies completely inside r. An empty o is
// contained by any rect.
func (r Rect) ContainsRect(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersected(o).IsEmpty()
}

// Intersected returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersected(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Translated returns r moved by (dx, dy).
func (r Rect) Translated(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// TranslatedBy returns r moved by p.
func (r Rect) TranslatedBy(p Point) Rect {
	return r.Translated(p.X, p.Y)
}

// Inflated grows r by dx on the left and right and by dy on the top and
// bottom. Negative values shrink.
func (r Rect) Inflated(dx, dy int) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Shrunken is Inflated with the signs flipped.
func (r Rect) Shrunken(dx, dy int) Rect {
	return r.Inflated(-dx, -dy)
}

// Scaled multiplies location and size by n.
func (r Rect) Scaled(n int) Rect {
	return Rect{X: r.X * n, Y: r.Y * n, Width: r.Width * n, Height: r.Height * n}
}

// Shatter returns the disjoint pieces of r that are not covered by hole.
//
// Pieces are produced as a full-width band above the hole, a full-width band
// below it, and the left and right remainders between the two bands.
func (r Rect) Shatter(hole Rect) []Rect {
	if r.IsEmpty() {
		return nil
	}
	isect := r.Intersected(hole)
	if isect.IsEmpty() {
		return []Rect{r}
	}

	pieces := make([]Rect, 0, 4)
	if top := isect.Y - r.Y; top > 0 {
		pieces = append(pieces, Rect{X: r.X, Y: r.Y, Width: r.Width, Height: top})
	}
	if bottom := r.Bottom() - isect.Bottom(); bottom > 0 {
		pieces = append(pieces, Rect{X: r.X, Y: isect.Bottom(), Width: r.Width, Height: bottom})
	}
	if left := isect.X - r.X; left > 0 {
		pieces = append(pieces, Rect{X: r.X, Y: isect.Y, Width: left, Height: isect.Height})
	}
	if right := r.Right() - isect.Right(); right > 0 {
		pieces = append(pieces, Rect{X: isect.Right(), Y: isect.Y, Width: right, Height: isect.Height})
	}
	return pieces
}

// DistanceSquared is the squared distance from p to the nearest pixel of r;
// zero when p is inside.
func (r Rect) DistanceSquared(p Point) int {
	dx := 0
	if p.X < r.X {
		dx = r.X - p.X
	} else if p.X >= r.Right() {
		dx = p.X - r.Right() + 1
	}
	dy := 0
	if p.Y < r.Y {
		dy = r.Y - p.Y
	} else if p.Y >= r.Bottom() {
		dy = p.Y - r.Bottom() + 1
	}
	return dx*dx + dy*dy
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// FromImage converts an image.Rectangle to a Rect.
func FromImage(ir image.Rectangle) Rect {
	ir = ir.Canon()
	return Rect{X: ir.Min.X, Y: ir.Min.Y, Width: ir.Dx(), Height: ir.Dy()}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Width, r.Height)
}
