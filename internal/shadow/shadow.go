// Package shadow paints rectangular drop shadows from a tiled source image.
//
// The source is two rows of square tiles of side base (base = height/2)
// laid out as
//
//	| TL (2) | T | TR (2) | LT | L | LB |
//	| BL (2) | B | BR (2) | RT | R | RB |
//
// where the corner columns are twice as wide, so the image is 8*base wide.
// The first row feeds the top band and the left side, the second row the
// bottom band and the right side.
package shadow

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/geom"
)

var (
	// ErrOddHeight rejects sources whose height cannot be split into two rows.
	ErrOddHeight = errors.New("shadow bitmap height is not even")
	// ErrBadWidth rejects sources whose width is not 8 tiles.
	ErrBadWidth = errors.New("shadow bitmap has wrong width")
	// ErrTooSmall rejects containing rects smaller than a single tile.
	ErrTooSmall = errors.New("containing rect smaller than shadow tile")
)

// BaseSize validates the layout of src and returns its tile size.
func BaseSize(src *bitmap.Bitmap) (int, error) {
	if src == nil {
		return 0, fmt.Errorf("%w: no bitmap", ErrBadWidth)
	}
	if src.Height()%2 != 0 {
		return 0, fmt.Errorf("%w: height %d", ErrOddHeight, src.Height())
	}
	base := src.Height() / 2
	if base == 0 {
		return 0, fmt.Errorf("%w: height 0", ErrOddHeight)
	}
	if src.Width() != base*8 {
		if src.Width()%base != 0 {
			return 0, fmt.Errorf("%w: width %d is not a multiple of %d", ErrBadWidth, src.Width(), base)
		}
		return 0, fmt.Errorf("%w: width %d but expected %d", ErrBadWidth, src.Width(), base*8)
	}
	return base, nil
}

// Paint composites the shadow in src around containing. When includesFrame
// is set the shadow is assumed to reach under the frame and the narrow-rect
// compensation is skipped. fillContent fills the enclosed area with the
// colour of the bottom-right pixel of the top-left corner tile.
//
// A malformed source or an undersized rect returns an error and leaves the
// target untouched.
func Paint(p *bitmap.Painter, containing geom.Rect, src *bitmap.Bitmap, includesFrame, fillContent bool) error {
	base, err := BaseSize(src)
	if err != nil {
		return err
	}
	if !containing.Size().Contains(geom.Size{Width: base, Height: base}) {
		return fmt.Errorf("%w: %v for tile %d", ErrTooSmall, containing.Size(), base)
	}

	sidesHeight := containing.Height - 2*base
	halfHeight := sidesHeight / 2
	horizontal := containing

	// Narrow rects would make the top and bottom corners overlap the side
	// pieces; pull the horizontal bands in instead.
	shift := 0
	if halfHeight < base && !includesFrame {
		shift = base - halfHeight
		horizontal.X += shift
		horizontal.Width -= 2 * shift
	}

	halfWidth := horizontal.Width / 2
	cornerWidth := min(horizontal.Width/2, 2*base)
	leftCornersRight := horizontal.X + cornerWidth
	rightCornersLeft := max(horizontal.Right()-cornerWidth, leftCornersRight+1)

	paintHorizontal := func(y, row int) {
		if halfWidth <= 0 {
			return
		}
		p.Save()
		defer p.Restore()
		p.AddClipRect(geom.Rect{X: horizontal.X, Y: y, Width: horizontal.Width, Height: base})
		p.Blit(geom.Point{X: horizontal.X, Y: y}, src, geom.Rect{X: 0, Y: row * base, Width: cornerWidth, Height: base}, 1)
		p.Blit(geom.Point{X: rightCornersLeft, Y: y}, src, geom.Rect{X: 5*base - cornerWidth, Y: row * base, Width: cornerWidth, Height: base}, 1)
		for x := leftCornersRight; x < rightCornersLeft; x += base {
			w := min(rightCornersLeft-x, base)
			p.Blit(geom.Point{X: x, Y: y}, src, geom.Rect{X: cornerWidth, Y: row * base, Width: w, Height: base}, 1)
		}
	}

	paintHorizontal(containing.Y, 0)
	paintHorizontal(containing.Bottom()-base, 1)

	cornerHeight := min(halfHeight, base)
	topCornersBottom := base + cornerHeight
	bottomCornersTop := base + max(halfHeight, sidesHeight-cornerHeight)

	paintVertical := func(x, row, hshift, hsrcshift int) {
		p.Save()
		defer p.Restore()
		p.AddClipRect(geom.Rect{X: x, Y: containing.Y + base, Width: base, Height: containing.Height - 2*base})
		p.Blit(geom.Point{X: x + hshift, Y: containing.Y + topCornersBottom - cornerHeight}, src,
			geom.Rect{X: 5*base + hsrcshift, Y: row * base, Width: base - hsrcshift, Height: cornerHeight}, 1)
		p.Blit(geom.Point{X: x + hshift, Y: containing.Y + bottomCornersTop}, src,
			geom.Rect{X: 7*base + hsrcshift, Y: row*base + base - cornerHeight, Width: base - hsrcshift, Height: cornerHeight}, 1)
		for y := topCornersBottom; y < bottomCornersTop; y += base {
			h := min(bottomCornersTop-y, base)
			p.Blit(geom.Point{X: x, Y: containing.Y + y}, src, geom.Rect{X: 6 * base, Y: row * base, Width: base, Height: h}, 1)
		}
	}

	paintVertical(containing.X, 0, shift, 0)
	if includesFrame {
		// TODO: rects barely wide enough for the corners end up one pixel off
		// on the right side.
		shift = 0
	}
	paintVertical(containing.Right()-base, 1, 0, shift)

	if fillContent {
		inner := InnerRect(containing, base)
		if !inner.IsEmpty() {
			s := src.Scale()
			p.FillRect(inner, src.PixelAt(geom.Point{X: 2*base*s - 1, Y: base*s - 1}))
		}
	}
	return nil
}

// InnerRect is the area Paint fills when fillContent is set.
func InnerRect(containing geom.Rect, base int) geom.Rect {
	return containing.Shrunken(2*base, base)
}
