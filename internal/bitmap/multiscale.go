package bitmap

import (
	"sort"

	"github.com/1broseidon/winframe/internal/logging"
	xdraw "golang.org/x/image/draw"
)

// MultiScale holds one image in several scale factors. Missing scales are
// resampled on demand from the sharpest available variant.
type MultiScale struct {
	bitmaps map[int]*Bitmap
}

// NewMultiScale groups bitmaps by their scale factor. Nil entries are
// skipped; the last bitmap wins for duplicate scales.
func NewMultiScale(bitmaps ...*Bitmap) *MultiScale {
	m := &MultiScale{bitmaps: make(map[int]*Bitmap)}
	for _, b := range bitmaps {
		if b != nil {
			m.bitmaps[b.Scale()] = b
		}
	}
	if len(m.bitmaps) == 0 {
		return nil
	}
	return m
}

// Scales lists the scale factors currently held, ascending.
func (m *MultiScale) Scales() []int {
	out := make([]int, 0, len(m.bitmaps))
	for s := range m.bitmaps {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Default is the scale-1 variant, or the lowest scale held.
func (m *MultiScale) Default() *Bitmap {
	if b, ok := m.bitmaps[1]; ok {
		return b
	}
	return m.bitmaps[m.Scales()[0]]
}

// HasAlpha reports whether the image carries a transparency channel.
func (m *MultiScale) HasAlpha() bool {
	return m.Default().HasAlpha()
}

// ForScale returns the variant for scale, resampling and caching one when
// none was loaded.
func (m *MultiScale) ForScale(scale int) *Bitmap {
	if b, ok := m.bitmaps[scale]; ok {
		return b
	}
	scales := m.Scales()
	src := m.bitmaps[scales[len(scales)-1]]
	b, err := New(src.Size(), scale)
	if err != nil {
		logging.Logger().Warn("bitmap: cannot resample", "scale", scale, "err", err)
		return src
	}
	b.hasAlpha = src.hasAlpha
	xdraw.CatmullRom.Scale(b.img, b.img.Rect, src.img, src.img.Rect, xdraw.Src, nil)
	m.bitmaps[scale] = b
	return b
}
