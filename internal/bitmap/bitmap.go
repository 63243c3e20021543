// Package bitmap provides scale-aware RGBA surfaces and a small painter
// with a clip/translate stack.
//
// Sizes and coordinates passed to Painter methods are logical pixels. A
// bitmap with scale factor 2 stores four physical pixels per logical pixel.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/1broseidon/winframe/internal/geom"
	xdraw "golang.org/x/image/draw"
)

// ErrAllocation is returned when a surface cannot be created.
var ErrAllocation = errors.New("bitmap allocation failed")

const (
	// DefaultMaxPixels caps a single surface at 64M physical pixels.
	DefaultMaxPixels = 1 << 26
	// MaxDimension is the largest physical width or height accepted.
	MaxDimension = 1 << 15
)

// Bitmap is an RGBA surface with an integer scale factor.
type Bitmap struct {
	img      *image.RGBA
	scale    int
	hasAlpha bool
}

// New allocates a transparent bitmap of the given logical size.
func New(size geom.Size, scale int) (*Bitmap, error) {
	return newLimited(size, scale, DefaultMaxPixels)
}

func newLimited(size geom.Size, scale int, maxPixels int) (*Bitmap, error) {
	if scale < 1 {
		return nil, fmt.Errorf("%w: invalid scale factor %d", ErrAllocation, scale)
	}
	if size.IsEmpty() {
		return nil, fmt.Errorf("%w: empty size %v", ErrAllocation, size)
	}
	pw, ph := size.Width*scale, size.Height*scale
	if pw > MaxDimension || ph > MaxDimension || pw*ph > maxPixels {
		return nil, fmt.Errorf("%w: %v at scale %d exceeds limit", ErrAllocation, size, scale)
	}
	return &Bitmap{
		img:      image.NewRGBA(image.Rect(0, 0, pw, ph)),
		scale:    scale,
		hasAlpha: true,
	}, nil
}

// FromImage copies img into a new bitmap. The image's pixel dimensions are
// taken as physical pixels at the given scale.
func FromImage(img image.Image, scale int) *Bitmap {
	if scale < 1 {
		scale = 1
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return &Bitmap{img: rgba, scale: scale, hasAlpha: modelHasAlpha(img)}
}

// modelHasAlpha reports whether the source pixel format carries a
// transparency channel.
func modelHasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.Gray, *image.Gray16, *image.YCbCr, *image.CMYK:
		return false
	case *image.RGBA:
		// Decoders use RGBA for colour types without an alpha channel.
		return !src.Opaque()
	case *image.RGBA64:
		return !src.Opaque()
	case *image.Paletted:
		for _, c := range src.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Image exposes the backing physical-pixel image.
func (b *Bitmap) Image() *image.RGBA { return b.img }

// Scale is the number of physical pixels per logical pixel.
func (b *Bitmap) Scale() int { return b.scale }

// HasAlpha reports whether the bitmap was created with a transparency
// channel.
func (b *Bitmap) HasAlpha() bool { return b.hasAlpha }

// Width is the logical width.
func (b *Bitmap) Width() int { return b.img.Rect.Dx() / b.scale }

// Height is the logical height.
func (b *Bitmap) Height() int { return b.img.Rect.Dy() / b.scale }

// Size is the logical size.
func (b *Bitmap) Size() geom.Size {
	return geom.Size{Width: b.Width(), Height: b.Height()}
}

// Rect is the logical bounds, anchored at the origin.
func (b *Bitmap) Rect() geom.Rect {
	return geom.Rect{Width: b.Width(), Height: b.Height()}
}

// PhysicalRect is the bounds in physical pixels.
func (b *Bitmap) PhysicalRect() geom.Rect {
	return geom.FromImage(b.img.Rect)
}

// PixelAt returns the physical pixel at p, or transparent when p is out of
// bounds.
func (b *Bitmap) PixelAt(p geom.Point) color.RGBA {
	if !b.PhysicalRect().Contains(p) {
		return color.RGBA{}
	}
	return b.img.RGBAAt(p.X, p.Y)
}

// AlphaAt returns the alpha channel of the physical pixel at p.
func (b *Bitmap) AlphaAt(p geom.Point) uint8 {
	return b.PixelAt(p).A
}
