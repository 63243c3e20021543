package bitmap

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/1broseidon/winframe/internal/geom"
)

func mustNew(t *testing.T, w, h, scale int) *Bitmap {
	t.Helper()
	b, err := New(geom.Size{Width: w, Height: h}, scale)
	if err != nil {
		t.Fatalf("New(%dx%d@%d): %v", w, h, scale, err)
	}
	return b
}

func TestNewRejectsEmptyAndOversized(t *testing.T) {
	if _, err := New(geom.Size{Width: 0, Height: 10}, 1); !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation for empty size, got %v", err)
	}
	if _, err := New(geom.Size{Width: MaxDimension, Height: 2}, 2); !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation for oversized bitmap, got %v", err)
	}
}

func TestScaledBitmapReportsLogicalSize(t *testing.T) {
	b := mustNew(t, 10, 6, 2)
	if b.Width() != 10 || b.Height() != 6 {
		t.Fatalf("logical size %v", b.Size())
	}
	if pr := b.PhysicalRect(); pr.Width != 20 || pr.Height != 12 {
		t.Fatalf("physical rect %v", pr)
	}
}

func TestPainterClipAndTranslate(t *testing.T) {
	b := mustNew(t, 10, 10, 1)
	p := NewPainter(b)
	red := color.RGBA{R: 255, A: 255}

	p.Save()
	p.Translate(2, 2)
	p.AddClipRect(geom.Rect{X: 0, Y: 0, Width: 3, Height: 3})
	p.FillRect(geom.Rect{X: -5, Y: -5, Width: 20, Height: 20}, red)
	p.Restore()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			got := b.PixelAt(geom.Point{X: x, Y: y})
			if inside && got != red {
				t.Fatalf("pixel %d,%d = %v, want red", x, y, got)
			}
			if !inside && got.A != 0 {
				t.Fatalf("pixel %d,%d painted outside clip: %v", x, y, got)
			}
		}
	}
	if clip := p.ClipRect(); clip != b.Rect() {
		t.Fatalf("restore did not reset clip: %v", clip)
	}
}

func TestBlitClipsSourceToBitmapBounds(t *testing.T) {
	src := mustNew(t, 4, 4, 1)
	NewPainter(src).ClearRect(src.Rect(), color.RGBA{G: 255, A: 255})
	dst := mustNew(t, 8, 8, 1)

	NewPainter(dst).Blit(geom.Point{X: 0, Y: 0}, src, geom.Rect{X: -2, Y: -2, Width: 4, Height: 4}, 1)

	if got := dst.PixelAt(geom.Point{X: 2, Y: 2}); got.G != 255 {
		t.Fatalf("expected green at 2,2, got %v", got)
	}
	if got := dst.PixelAt(geom.Point{X: 1, Y: 1}); got.A != 0 {
		t.Fatalf("expected transparent at 1,1, got %v", got)
	}
}

func TestBlitOpacityScalesAlpha(t *testing.T) {
	src := mustNew(t, 1, 1, 1)
	NewPainter(src).ClearRect(src.Rect(), color.RGBA{R: 255, A: 255})
	dst := mustNew(t, 1, 1, 1)
	NewPainter(dst).Blit(geom.Point{}, src, src.Rect(), 0.5)
	if a := dst.AlphaAt(geom.Point{}); a < 126 || a > 129 {
		t.Fatalf("expected half alpha, got %d", a)
	}
}

func TestCopyIgnoresBlending(t *testing.T) {
	src := mustNew(t, 2, 2, 1)
	dst := mustNew(t, 2, 2, 1)
	NewPainter(dst).ClearRect(dst.Rect(), color.RGBA{B: 255, A: 255})
	NewPainter(dst).Copy(geom.Point{}, src, src.Rect())
	if a := dst.AlphaAt(geom.Point{X: 1, Y: 1}); a != 0 {
		t.Fatalf("copy should overwrite with transparent pixels, alpha=%d", a)
	}
}

func TestPoolGrowsAndReuses(t *testing.T) {
	pool := NewPool()
	a, err := pool.Acquire(1, geom.Size{Width: 10, Height: 20})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	b, err := pool.Acquire(1, geom.Size{Width: 5, Height: 5})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if a != b {
		t.Fatalf("expected smaller request to reuse surface")
	}
	c, err := pool.Acquire(1, geom.Size{Width: 30, Height: 4})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if c.Width() != 30 || c.Height() != 20 {
		t.Fatalf("expected grown surface 30x20, got %v", c.Size())
	}
	if pool.Len() != 1 {
		t.Fatalf("expected one pooled surface, got %d", pool.Len())
	}
}

func TestPoolDropsEntryOnAllocationFailure(t *testing.T) {
	pool := NewPoolWithLimit(100)
	if _, err := pool.Acquire(1, geom.Size{Width: 5, Height: 5}); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := pool.Acquire(1, geom.Size{Width: 50, Height: 50}); !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	if pool.Len() != 0 {
		t.Fatalf("expected failed scale to be dropped, have %d entries", pool.Len())
	}
}

func TestMultiScaleResamplesMissingScale(t *testing.T) {
	one := mustNew(t, 4, 2, 1)
	NewPainter(one).ClearRect(one.Rect(), color.RGBA{R: 200, A: 255})
	m := NewMultiScale(one)

	two := m.ForScale(2)
	if two.Scale() != 2 || two.Width() != 4 || two.Height() != 2 {
		t.Fatalf("unexpected resampled bitmap: scale=%d size=%v", two.Scale(), two.Size())
	}
	if m.ForScale(2) != two {
		t.Fatalf("expected resampled bitmap to be cached")
	}
}

func TestFromImageDetectsAlphaChannel(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	if FromImage(gray, 1).HasAlpha() {
		t.Fatalf("gray image should not report alpha")
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if !FromImage(nrgba, 1).HasAlpha() {
		t.Fatalf("nrgba image should report alpha")
	}
}
