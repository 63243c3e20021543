package main

import (
	"fmt"
	"log"
	"os"

	"github.com/1broseidon/winframe/internal/assets"
	"github.com/1broseidon/winframe/internal/compositor"
	"github.com/1broseidon/winframe/internal/config"
	"github.com/1broseidon/winframe/internal/desktop"
	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/1broseidon/winframe/internal/theme"
)

// virtualScreen is a single screen used when no display is involved.
func virtualScreen(width, height, scale int) screen.Screen {
	r := geom.Rect{Width: width, Height: height}
	return screen.Screen{Name: "virtual", Rect: r, WorkArea: r, Scale: scale}
}

// buildDesktop creates a desktop over screens and adds the scene windows in
// order, so the last one ends up on top and active.
func buildDesktop(cfg *config.Config, screens *screen.Registry, loop *eventloop.Loop, cursor desktop.CursorSink) (*desktop.Manager, error) {
	pal := cfg.Palette()

	root := cfg.AssetsRoot
	if root == "" {
		root = "."
	}
	set := assets.NewSet(os.DirFS(root))
	if err := set.Reload(pal); err != nil {
		log.Printf("Warning: some decoration assets could not be loaded: %v", err)
	}

	m, err := desktop.NewManager(desktop.Config{
		Theme:               theme.NewClassic(cfg.Theme.HitThreshold),
		Palette:             pal,
		Assets:              set,
		Screens:             screens,
		Compositor:          compositor.New(screens, cfg.BackgroundColor()),
		Scheduler:           loop,
		Cursor:              cursor,
		FlashPeriod:         cfg.FlashPeriod(),
		DoubleClickInterval: cfg.DoubleClickInterval(),
	})
	if err != nil {
		return nil, err
	}

	for i, wc := range cfg.Scene {
		typ, err := wc.WindowType()
		if err != nil {
			return nil, fmt.Errorf("scene[%d]: %w", i, err)
		}
		w := m.Add(desktop.WindowOptions{
			Title:         wc.Title,
			Type:          typ,
			Rect:          wc.Rect(),
			Fixed:         wc.Fixed,
			Unminimizable: wc.Unminimizable,
			Modified:      wc.Modified,
			Menus:         wc.Menus,
		})
		if wc.Maximized {
			m.SetMaximized(w, true)
		}
	}
	return m, nil
}

// windowByIndex returns the scene window at index i, counted in scene
// order.
func windowByIndex(m *desktop.Manager, i int) (*desktop.Window, error) {
	windows := m.Windows()
	for _, w := range windows {
		if w.ID() == i+1 {
			return w, nil
		}
	}
	return nil, fmt.Errorf("scene has no window %d", i)
}
