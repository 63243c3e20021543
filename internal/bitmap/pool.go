package bitmap

import "github.com/1broseidon/winframe/internal/geom"

// Pool keeps one scratch surface per scale factor and hands it out for
// short-lived rendering. Surfaces only grow.
//
// A Pool belongs to the compositor's control thread and is not safe for
// concurrent use.
type Pool struct {
	entries   map[int]*Bitmap
	maxPixels int
}

// NewPool creates an empty pool using the default allocation limit.
func NewPool() *Pool {
	return NewPoolWithLimit(DefaultMaxPixels)
}

// NewPoolWithLimit creates a pool whose surfaces may not exceed maxPixels
// physical pixels.
func NewPoolWithLimit(maxPixels int) *Pool {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Pool{entries: make(map[int]*Bitmap), maxPixels: maxPixels}
}

// Acquire returns a surface for scale that is at least size large. The
// same surface is returned until a larger one is requested. On allocation
// failure the entry for scale is dropped and the error returned.
func (p *Pool) Acquire(scale int, size geom.Size) (*Bitmap, error) {
	old, ok := p.entries[scale]
	if ok && old.Size().Contains(size) {
		return old, nil
	}

	want := size
	if ok {
		want.Width = max(want.Width, old.Width())
		want.Height = max(want.Height, old.Height())
	}
	// Release the old surface before allocating its replacement so the two
	// never coexist.
	delete(p.entries, scale)

	b, err := newLimited(want, scale, p.maxPixels)
	if err != nil {
		return nil, err
	}
	p.entries[scale] = b
	return b, nil
}

// Reset drops every pooled surface.
func (p *Pool) Reset() {
	clear(p.entries)
}

// Len is the number of pooled surfaces.
func (p *Pool) Len() int {
	return len(p.entries)
}
