// Package assets loads the icons and shadow images shared by every window
// frame.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/1broseidon/winframe/internal/bitmap"
	"github.com/1broseidon/winframe/internal/logging"
	"github.com/1broseidon/winframe/internal/theme"
	_ "golang.org/x/image/bmp"
)

// Icon names one of the title button glyphs.
type Icon int

const (
	IconMinimize Icon = iota
	IconMaximize
	IconRestore
	IconClose
	IconCloseModified
	iconCount
)

// Shadow names one of the shadow styles.
type Shadow int

const (
	ShadowActiveWindow Shadow = iota
	ShadowInactiveWindow
	ShadowMenu
	ShadowTaskbar
	ShadowTooltip
	shadowCount
)

type iconSpec struct {
	name     string
	fallback string
}

var iconSpecs = [iconCount]iconSpec{
	IconMinimize:      {"window-minimize.png", "res/icons/16x16/downward-triangle.png"},
	IconMaximize:      {"window-maximize.png", "res/icons/16x16/upward-triangle.png"},
	IconRestore:       {"window-restore.png", "res/icons/16x16/window-restore.png"},
	IconClose:         {"window-close.png", "res/icons/16x16/window-close.png"},
	IconCloseModified: {"window-close-modified.png", "res/icons/16x16/window-close-modified.png"},
}

// scaleSuffixes lists the per-scale file variants probed next to each asset.
var scaleSuffixes = map[int]string{1: "", 2: "-2x"}

type shadowSlot struct {
	path   string
	bitmap *bitmap.MultiScale
}

// Set is the reference-counted collection of decoration bitmaps. Frames
// retain the set they paint with and release it when closed.
//
// A Set is used from the compositor thread only.
type Set struct {
	fsys    fs.FS
	refs    int
	icons   [iconCount]*bitmap.MultiScale
	shadows [shadowCount]shadowSlot
}

// NewSet returns an empty set reading from fsys, holding one reference.
func NewSet(fsys fs.FS) *Set {
	return &Set{fsys: fsys, refs: 1}
}

// Retain adds a reference and returns s.
func (s *Set) Retain() *Set {
	s.refs++
	return s
}

// Release drops a reference. The bitmaps are freed with the last one.
func (s *Set) Release() {
	if s.refs == 0 {
		return
	}
	s.refs--
	if s.refs == 0 {
		s.icons = [iconCount]*bitmap.MultiScale{}
		s.shadows = [shadowCount]shadowSlot{}
	}
}

// Refs is the current reference count.
func (s *Set) Refs() int { return s.refs }

// Icon returns the loaded icon, or nil.
func (s *Set) Icon(i Icon) *bitmap.MultiScale {
	if i < 0 || i >= iconCount {
		return nil
	}
	return s.icons[i]
}

// Shadow returns the loaded shadow style, or nil when the theme has none.
func (s *Set) Shadow(k Shadow) *bitmap.MultiScale {
	if k < 0 || k >= shadowCount {
		return nil
	}
	return s.shadows[k].bitmap
}

// Reload re-reads the assets named by pal. Icons are looked up under the
// palette's icon directory first and fall back to the built-in path.
// Shadows are re-read only when their path changed; an empty path removes
// the shadow. Errors for individual assets are joined; everything that
// could be loaded is kept.
func (s *Set) Reload(pal *theme.Palette) error {
	var errs []error
	for i, spec := range iconSpecs {
		m, err := s.load(pal.TitleButtonIconsPath + spec.name)
		if err != nil {
			m, err = s.load(spec.fallback)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("icon %s: %w", spec.name, err))
			continue
		}
		s.icons[i] = m
	}

	paths := [shadowCount]string{
		ShadowActiveWindow:   pal.ActiveWindowShadowPath,
		ShadowInactiveWindow: pal.InactiveWindowShadowPath,
		ShadowMenu:           pal.MenuShadowPath,
		ShadowTaskbar:        pal.TaskbarShadowPath,
		ShadowTooltip:        pal.TooltipShadowPath,
	}
	for k, p := range paths {
		slot := &s.shadows[k]
		if p == "" {
			*slot = shadowSlot{}
			continue
		}
		if slot.bitmap != nil && slot.path == p {
			continue
		}
		m, err := s.load(p)
		if err != nil {
			*slot = shadowSlot{}
			errs = append(errs, fmt.Errorf("shadow %s: %w", p, err))
			continue
		}
		*slot = shadowSlot{path: p, bitmap: m}
	}
	return errors.Join(errs...)
}

// load reads name and its per-scale siblings.
func (s *Set) load(name string) (*bitmap.MultiScale, error) {
	name = strings.TrimPrefix(path.Clean(name), "/")
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	var found []*bitmap.Bitmap
	var firstErr error
	for scale, suffix := range scaleSuffixes {
		b, err := s.decode(stem+suffix+ext, scale)
		if err != nil {
			if scale == 1 {
				firstErr = err
			}
			continue
		}
		found = append(found, b)
	}
	if len(found) == 0 {
		return nil, firstErr
	}
	logging.Logger().Debug("assets: loaded", "path", name, "variants", len(found))
	return bitmap.NewMultiScale(found...), nil
}

func (s *Set) decode(name string, scale int) (*bitmap.Bitmap, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return bitmap.FromImage(img, scale), nil
}
