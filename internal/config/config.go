package config

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/theme"
	"github.com/gogpu/gg"
)

// Metrics are the theme sizes in logical pixels.
type Metrics struct {
	TitleHeight       int `yaml:"title_height"`
	BorderThickness   int `yaml:"border_thickness"`
	MenubarHeight     int `yaml:"menubar_height"`
	TitleButtonWidth  int `yaml:"title_button_width"`
	TitleButtonHeight int `yaml:"title_button_height"`
}

// Shadows are the shadow image paths per style. An empty path disables
// that shadow.
type Shadows struct {
	ActiveWindow   string `yaml:"active_window"`
	InactiveWindow string `yaml:"inactive_window"`
	Menu           string `yaml:"menu"`
	Taskbar        string `yaml:"taskbar"`
	Tooltip        string `yaml:"tooltip"`
}

// ThemeConfig selects a colour preset and overrides parts of it.
type ThemeConfig struct {
	Preset          string            `yaml:"preset"`
	Metrics         Metrics           `yaml:"metrics"`
	Colors          map[string]string `yaml:"colors"`
	HitThreshold    float64           `yaml:"hit_threshold"`
	ButtonIconsPath string            `yaml:"button_icons_path"`
	Shadows         Shadows           `yaml:"shadows"`
}

// ScreensConfig assigns scale factors to outputs by RandR name.
type ScreensConfig struct {
	DefaultScale int            `yaml:"default_scale"`
	Scales       map[string]int `yaml:"scales"`
}

// ScaleFor returns the configured scale of the named output.
func (s ScreensConfig) ScaleFor(name string) int {
	if v, ok := s.Scales[name]; ok {
		return v
	}
	return s.DefaultScale
}

// WindowConfig is one window of a scene rendered by the CLI.
type WindowConfig struct {
	Title         string   `yaml:"title"`
	Type          string   `yaml:"type"`
	X             int      `yaml:"x"`
	Y             int      `yaml:"y"`
	Width         int      `yaml:"width"`
	Height        int      `yaml:"height"`
	Menus         []string `yaml:"menus,omitempty"`
	Modified      bool     `yaml:"modified,omitempty"`
	Fixed         bool     `yaml:"fixed,omitempty"`
	Unminimizable bool     `yaml:"unminimizable,omitempty"`
	Maximized     bool     `yaml:"maximized,omitempty"`
}

// Rect is the content rectangle of the window.
func (w WindowConfig) Rect() geom.Rect {
	return geom.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// WindowType maps the type name to the frame window type.
func (w WindowConfig) WindowType() (frame.WindowType, error) {
	name := strings.ToLower(strings.TrimSpace(w.Type))
	if name == "" {
		return frame.Normal, nil
	}
	for t := frame.Normal; t <= frame.AppletArea; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("type must be one of: %s", strings.Join(windowTypeNames(), ", "))
}

func windowTypeNames() []string {
	var names []string
	for t := frame.Normal; t <= frame.AppletArea; t++ {
		names = append(names, t.String())
	}
	return names
}

// Config is the effective winframe configuration.
type Config struct {
	Theme                 ThemeConfig    `yaml:"theme"`
	AssetsRoot            string         `yaml:"assets_root"`
	Screens               ScreensConfig  `yaml:"screens"`
	Background            string         `yaml:"background"`
	FlashPeriodMs         int            `yaml:"flash_period_ms"`
	DoubleClickIntervalMs int            `yaml:"double_click_interval_ms"`
	LogLevel              string         `yaml:"log_level"`
	Scene                 []WindowConfig `yaml:"scene"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	pal := theme.DefaultPalette()
	return &Config{
		Theme: ThemeConfig{
			Preset: DefaultPreset,
			Metrics: Metrics{
				TitleHeight:       pal.TitleHeight,
				BorderThickness:   pal.BorderThickness,
				MenubarHeight:     pal.MenubarHeight,
				TitleButtonWidth:  pal.TitleButtonWidth,
				TitleButtonHeight: pal.TitleButtonHeight,
			},
			Colors: map[string]string{},
		},
		AssetsRoot: "",
		Screens: ScreensConfig{
			DefaultScale: 1,
			Scales:       map[string]int{},
		},
		Background:            "#3a6ea5",
		FlashPeriodMs:         int(frame.DefaultFlashPeriod / time.Millisecond),
		DoubleClickIntervalMs: 250,
		LogLevel:              "info",
		Scene: []WindowConfig{
			{Title: "Background", Type: "normal", X: 40, Y: 60, Width: 320, Height: 200},
			{Title: "Text Editor", Type: "normal", X: 200, Y: 160, Width: 360, Height: 240, Menus: []string{"File", "Edit", "View", "Help"}, Modified: true},
		},
	}
}

// FlashPeriod is the interval between flash steps.
func (c *Config) FlashPeriod() time.Duration {
	return time.Duration(c.FlashPeriodMs) * time.Millisecond
}

// DoubleClickInterval is the longest gap between two clicks of a double
// click on the window menu.
func (c *Config) DoubleClickInterval() time.Duration {
	return time.Duration(c.DoubleClickIntervalMs) * time.Millisecond
}

// BackgroundColor returns the desktop colour.
func (c *Config) BackgroundColor() color.RGBA {
	return hexColor(c.Background)
}

// Palette builds the theme palette: the preset colours, then the colour
// overrides, then metrics and asset paths.
func (c *Config) Palette() *theme.Palette {
	pal := theme.DefaultPalette()
	if preset, ok := BuiltinPresets()[c.Theme.Preset]; ok {
		applyColors(pal, preset)
	}
	applyColors(pal, c.Theme.Colors)

	m := c.Theme.Metrics
	pal.TitleHeight = m.TitleHeight
	pal.BorderThickness = m.BorderThickness
	pal.MenubarHeight = m.MenubarHeight
	pal.TitleButtonWidth = m.TitleButtonWidth
	pal.TitleButtonHeight = m.TitleButtonHeight

	pal.TitleButtonIconsPath = c.Theme.ButtonIconsPath
	pal.ActiveWindowShadowPath = c.Theme.Shadows.ActiveWindow
	pal.InactiveWindowShadowPath = c.Theme.Shadows.InactiveWindow
	pal.MenuShadowPath = c.Theme.Shadows.Menu
	pal.TaskbarShadowPath = c.Theme.Shadows.Taskbar
	pal.TooltipShadowPath = c.Theme.Shadows.Tooltip
	return pal
}

// ColorNames lists the palette slots accepted under theme.colors.
func ColorNames() []string {
	names := make([]string, 0, len(colorSlots))
	for name := range colorSlots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var colorSlots = map[string]func(p *theme.Palette) *color.RGBA{
	"active_title_start":    func(p *theme.Palette) *color.RGBA { return &p.ActiveTitle[0] },
	"active_title_end":      func(p *theme.Palette) *color.RGBA { return &p.ActiveTitle[1] },
	"inactive_title_start":  func(p *theme.Palette) *color.RGBA { return &p.InactiveTitle[0] },
	"inactive_title_end":    func(p *theme.Palette) *color.RGBA { return &p.InactiveTitle[1] },
	"highlight_title_start": func(p *theme.Palette) *color.RGBA { return &p.HighlightTitle[0] },
	"highlight_title_end":   func(p *theme.Palette) *color.RGBA { return &p.HighlightTitle[1] },
	"moving_title_start":    func(p *theme.Palette) *color.RGBA { return &p.MovingTitle[0] },
	"moving_title_end":      func(p *theme.Palette) *color.RGBA { return &p.MovingTitle[1] },
	"active_title_text":     func(p *theme.Palette) *color.RGBA { return &p.ActiveTitleText },
	"inactive_title_text":   func(p *theme.Palette) *color.RGBA { return &p.InactiveTitleText },
	"active_border":         func(p *theme.Palette) *color.RGBA { return &p.ActiveBorder },
	"inactive_border":       func(p *theme.Palette) *color.RGBA { return &p.InactiveBorder },
	"window":                func(p *theme.Palette) *color.RGBA { return &p.Window },
	"window_text":           func(p *theme.Palette) *color.RGBA { return &p.WindowText },
	"button_face":           func(p *theme.Palette) *color.RGBA { return &p.ButtonFace },
	"button_highlight":      func(p *theme.Palette) *color.RGBA { return &p.ButtonHighlight },
	"button_shadow":         func(p *theme.Palette) *color.RGBA { return &p.ButtonShadow },
	"hover_highlight":       func(p *theme.Palette) *color.RGBA { return &p.HoverHighlight },
}

func applyColors(pal *theme.Palette, colors map[string]string) {
	for name, value := range colors {
		if slot, ok := colorSlots[name]; ok {
			*slot(pal) = hexColor(value)
		}
	}
}

// hexColor parses #rgb, #rgba, #rrggbb or #rrggbbaa. Validate rejects
// anything else before it gets here.
func hexColor(s string) color.RGBA {
	c := gg.Hex(strings.TrimSpace(s))
	n := color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func validHex(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	if _, ok := BuiltinPresets()[c.Theme.Preset]; !ok {
		return &ValidationError{Path: "theme.preset", Err: fmt.Errorf("theme.preset must be one of: %s", strings.Join(PresetNames(), ", "))}
	}
	m := c.Theme.Metrics
	if m.TitleHeight < 0 || m.BorderThickness < 0 || m.MenubarHeight < 0 {
		return &ValidationError{Path: "theme.metrics", Err: fmt.Errorf("metrics must be >= 0")}
	}
	if m.TitleButtonWidth <= 0 || m.TitleButtonHeight <= 0 {
		return &ValidationError{Path: "theme.metrics", Err: fmt.Errorf("title button size must be > 0")}
	}
	for name, value := range c.Theme.Colors {
		if _, ok := colorSlots[name]; !ok {
			return &ValidationError{Path: "theme.colors." + name, Err: fmt.Errorf("unknown colour %q, known colours: %s", name, strings.Join(ColorNames(), ", "))}
		}
		if !validHex(value) {
			return &ValidationError{Path: "theme.colors." + name, Err: fmt.Errorf("%q is not a hex colour", value)}
		}
	}
	if c.Theme.HitThreshold < 0 || c.Theme.HitThreshold > 1 {
		return &ValidationError{Path: "theme.hit_threshold", Err: fmt.Errorf("hit_threshold must be between 0 and 1")}
	}
	if c.Screens.DefaultScale < 1 {
		return &ValidationError{Path: "screens.default_scale", Err: fmt.Errorf("default_scale must be >= 1")}
	}
	for name, scale := range c.Screens.Scales {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "screens.scales", Err: fmt.Errorf("screens.scales contains an empty output name")}
		}
		if scale < 1 {
			return &ValidationError{Path: "screens.scales." + name, Err: fmt.Errorf("scale must be >= 1")}
		}
	}
	if !validHex(c.Background) {
		return &ValidationError{Path: "background", Err: fmt.Errorf("%q is not a hex colour", c.Background)}
	}
	if c.FlashPeriodMs <= 0 {
		return &ValidationError{Path: "flash_period_ms", Err: fmt.Errorf("flash_period_ms must be > 0")}
	}
	if c.DoubleClickIntervalMs <= 0 {
		return &ValidationError{Path: "double_click_interval_ms", Err: fmt.Errorf("double_click_interval_ms must be > 0")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	for i, w := range c.Scene {
		path := fmt.Sprintf("scene[%d]", i)
		if _, err := w.WindowType(); err != nil {
			return &ValidationError{Path: path + ".type", Err: err}
		}
		if w.Width <= 0 || w.Height <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("window size must be > 0")}
		}
	}
	return nil
}
