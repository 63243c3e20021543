package bitmap

import (
	"image"
	"image/color"

	"github.com/1broseidon/winframe/internal/geom"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Alignment controls horizontal text placement. Text is always centered
// vertically.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

type painterState struct {
	translation geom.Point
	clip        geom.Rect // logical target coordinates
}

// Painter draws onto a Bitmap. It keeps a translation and a clip rectangle
// that can be saved and restored.
type Painter struct {
	target *Bitmap
	state  painterState
	saved  []painterState
}

// NewPainter returns a painter clipped to the whole target.
func NewPainter(target *Bitmap) *Painter {
	return &Painter{
		target: target,
		state:  painterState{clip: target.Rect()},
	}
}

// Target returns the bitmap being painted.
func (p *Painter) Target() *Bitmap { return p.target }

// Save pushes the current translation and clip.
func (p *Painter) Save() {
	p.saved = append(p.saved, p.state)
}

// Restore pops the last saved state. Unbalanced calls are ignored.
func (p *Painter) Restore() {
	if len(p.saved) == 0 {
		return
	}
	p.state = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
}

// Translate shifts subsequent drawing by (dx, dy).
func (p *Painter) Translate(dx, dy int) {
	p.state.translation = p.state.translation.Translated(dx, dy)
}

// Translation is the current offset applied to drawing coordinates.
func (p *Painter) Translation() geom.Point { return p.state.translation }

// AddClipRect narrows the clip to r, given in current coordinates.
func (p *Painter) AddClipRect(r geom.Rect) {
	p.state.clip = p.state.clip.Intersected(r.TranslatedBy(p.state.translation))
}

// ClipRect returns the clip in current coordinates.
func (p *Painter) ClipRect() geom.Rect {
	t := p.state.translation
	return p.state.clip.Translated(-t.X, -t.Y)
}

func (p *Painter) device(r geom.Rect) geom.Rect {
	return r.TranslatedBy(p.state.translation).Intersected(p.state.clip)
}

// ClearRect overwrites r with c, alpha included.
func (p *Painter) ClearRect(r geom.Rect, c color.Color) {
	p.fill(r, c, xdraw.Src)
}

// FillRect composites c over r.
func (p *Painter) FillRect(r geom.Rect, c color.Color) {
	p.fill(r, c, xdraw.Over)
}

func (p *Painter) fill(r geom.Rect, c color.Color, op xdraw.Op) {
	d := p.device(r)
	if d.IsEmpty() {
		return
	}
	xdraw.Draw(p.target.img, d.Scaled(p.target.scale).Image(), image.NewUniform(c), image.Point{}, op)
}

// Blit composites srcRect of src at dst using src alpha and the given
// opacity.
func (p *Painter) Blit(dst geom.Point, src *Bitmap, srcRect geom.Rect, opacity float64) {
	p.blit(dst, src, srcRect, opacity, xdraw.Over)
}

// Copy replaces the destination pixels with srcRect of src, ignoring alpha
// blending.
func (p *Painter) Copy(dst geom.Point, src *Bitmap, srcRect geom.Rect) {
	p.blit(dst, src, srcRect, 1, xdraw.Src)
}

func (p *Painter) blit(dst geom.Point, src *Bitmap, srcRect geom.Rect, opacity float64, op xdraw.Op) {
	if src == nil || opacity <= 0 {
		return
	}
	clipped := srcRect.Intersected(src.Rect())
	if clipped.IsEmpty() {
		return
	}
	dst = dst.Add(clipped.Location().Sub(srcRect.Location()))
	dstRect := geom.NewRect(dst, clipped.Size()).TranslatedBy(p.state.translation)
	d := dstRect.Intersected(p.state.clip)
	if d.IsEmpty() {
		return
	}
	sp := clipped.Location().Add(d.Location().Sub(dstRect.Location()))

	scale := p.target.scale
	dr := d.Scaled(scale).Image()
	var srcImg image.Image = src.img
	srcPt := sp.Scaled(src.scale)
	if src.scale != scale {
		sr := geom.NewRect(sp, d.Size()).Scaled(src.scale).Image()
		tmp := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		xdraw.ApproxBiLinear.Scale(tmp, tmp.Bounds(), src.img, sr, xdraw.Src, nil)
		srcImg = tmp
		srcPt = geom.Point{}
	}

	if opacity >= 1 {
		xdraw.Draw(p.target.img, dr, srcImg, image.Point{X: srcPt.X, Y: srcPt.Y}, op)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	xdraw.DrawMask(p.target.img, dr, srcImg, image.Point{X: srcPt.X, Y: srcPt.Y}, mask, image.Point{}, op)
}

// DrawImage composites img stretched to r. img is sampled in its own pixel
// dimensions; it is resampled when they differ from r's physical size.
func (p *Painter) DrawImage(r geom.Rect, img image.Image) {
	p.drawImage(r, img, xdraw.CatmullRom)
}

func (p *Painter) drawImage(r geom.Rect, img image.Image, scaler xdraw.Scaler) {
	if img == nil || r.IsEmpty() {
		return
	}
	clip := p.state.clip.Scaled(p.target.scale).Image()
	full := r.TranslatedBy(p.state.translation).Scaled(p.target.scale).Image()
	if !full.Overlaps(clip) {
		return
	}
	dst, ok := p.target.img.SubImage(clip).(*image.RGBA)
	if !ok {
		return
	}
	sb := img.Bounds()
	if sb.Dx() == full.Dx() && sb.Dy() == full.Dy() {
		xdraw.Draw(dst, full, img, sb.Min, xdraw.Over)
		return
	}
	scaler.Scale(dst, full, img, sb, xdraw.Over, nil)
}

// DrawBitmap draws the whole of src into r, resampling when needed.
func (p *Painter) DrawBitmap(r geom.Rect, src *Bitmap) {
	if src == nil {
		return
	}
	p.drawImage(r, src.img, xdraw.CatmullRom)
}

// DrawText draws s inside r with the given face. Text that does not fit is
// cut with an ellipsis.
func (p *Painter) DrawText(r geom.Rect, s string, face font.Face, c color.Color, align Alignment) {
	if r.IsEmpty() || s == "" || face == nil {
		return
	}
	s = fitText(face, s, r.Width)
	if s == "" {
		return
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(face, s).Ceil()

	x := 0
	switch align {
	case AlignCenter:
		x = (r.Width - width) / 2
	case AlignRight:
		x = r.Width - width
	}
	baseline := (r.Height-height)/2 + ascent

	tmp := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
	p.drawImage(r, tmp, xdraw.NearestNeighbor)
}

func fitText(face font.Face, s string, width int) string {
	if font.MeasureString(face, s).Ceil() <= width {
		return s
	}
	const ellipsis = "..."
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if font.MeasureString(face, candidate).Ceil() <= width {
			return candidate
		}
	}
	return ""
}
