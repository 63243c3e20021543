package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/theme"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(data)+"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndMatchesDefaultPalette(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if *cfg.Palette() != *theme.DefaultPalette() {
		t.Fatalf("default config should produce the default palette")
	}
	if cfg.FlashPeriod() != frame.DefaultFlashPeriod {
		t.Fatalf("flash period = %v", cfg.FlashPeriod())
	}
	if cfg.DoubleClickInterval() != 250*time.Millisecond {
		t.Fatalf("double click interval = %v", cfg.DoubleClickInterval())
	}
	if got := cfg.BackgroundColor(); got != (color.RGBA{R: 0x3a, G: 0x6e, B: 0xa5, A: 0xff}) {
		t.Fatalf("background = %v", got)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected default log_level, got %q", res.Config.LogLevel)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Theme.Preset != DefaultPreset {
		t.Fatalf("expected preset %q, got %q", DefaultPreset, res.Config.Theme.Preset)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected one loaded file, got %v", res.Files)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "theme:\n  title_height: 20")
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
}

func TestLoadFromPath_ThemeOverridesPresetAndMetrics(t *testing.T) {
	path := writeConfig(t, `
theme:
  preset: dark
  metrics:
    title_height: 24
  colors:
    active_title_start: "#ff0000"
  hit_threshold: 0.5
  shadows:
    active_window: themes/Default/shadow.png
`)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pal := res.Config.Palette()
	if pal.TitleHeight != 24 || pal.BorderThickness != 4 {
		t.Fatalf("metrics = %d/%d, want 24/4", pal.TitleHeight, pal.BorderThickness)
	}
	if pal.ActiveTitle[0] != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("override colour = %v", pal.ActiveTitle[0])
	}
	if pal.ActiveTitle[1] != (color.RGBA{R: 0x3e, G: 0x4c, B: 0x59, A: 0xff}) {
		t.Fatalf("preset colour = %v", pal.ActiveTitle[1])
	}
	if pal.HighlightTitle != theme.DefaultPalette().HighlightTitle {
		t.Fatalf("colours the preset leaves alone should keep their defaults")
	}
	if pal.ActiveWindowShadowPath != "themes/Default/shadow.png" || pal.MenuShadowPath != "" {
		t.Fatalf("shadow paths = %q/%q", pal.ActiveWindowShadowPath, pal.MenuShadowPath)
	}
	if res.Config.Theme.HitThreshold != 0.5 {
		t.Fatalf("hit threshold = %v", res.Config.Theme.HitThreshold)
	}
}

func TestHexColorPremultipliesAlpha(t *testing.T) {
	if got := hexColor("#f008"); got != (color.RGBA{R: 0x88, A: 0x88}) {
		t.Fatalf("got %v", got)
	}
	if got := hexColor("0000ff"); got != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Fatalf("got %v", got)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		yaml string
		path string
	}{
		{"theme:\n  preset: neon", "theme.preset"},
		{"theme:\n  colors:\n    titlebar: \"#fff\"", "theme.colors.titlebar"},
		{"theme:\n  colors:\n    window: \"#ggg\"", "theme.colors.window"},
		{"theme:\n  hit_threshold: 1.5", "theme.hit_threshold"},
		{"theme:\n  metrics:\n    title_button_width: 0", "theme.metrics"},
		{"screens:\n  default_scale: 0", "screens.default_scale"},
		{"screens:\n  scales:\n    eDP-1: 0", "screens.scales.eDP-1"},
		{"background: blue", "background"},
		{"flash_period_ms: 0", "flash_period_ms"},
		{"log_level: loud", "log_level"},
		{"scene:\n  - title: x\n    type: dialog\n    width: 10\n    height: 10", "scene[0].type"},
		{"scene:\n  - title: x\n    width: 0\n    height: 10", "scene[0]"},
	}
	for _, tc := range cases {
		path := writeConfig(t, tc.yaml)
		_, err := LoadFromPath(path)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected ValidationError, got %v", tc.yaml, err)
		}
		if verr.Path != tc.path {
			t.Fatalf("%q: path = %q, want %q", tc.yaml, verr.Path, tc.path)
		}
		if verr.Source.Kind != SourceFile || verr.Source.Line == 0 {
			t.Fatalf("%q: expected file source, got %#v", tc.yaml, verr.Source)
		}
	}
}

func TestValidationError_IncludesLocation(t *testing.T) {
	path := writeConfig(t, "flash_period_ms: 50\nlog_level: loud")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), ":2:12: log_level:") {
		t.Fatalf("error lacks location: %v", err)
	}
}

func TestLoadFromPaths_OverlayReplacesSceneAndMergesScales(t *testing.T) {
	base := writeConfig(t, `
screens:
  scales:
    eDP-1: 2
scene:
  - title: one
    width: 100
    height: 100
`)
	overlay := writeConfig(t, `
screens:
  scales:
    HDMI-1: 1
scene:
  - title: two
    type: tool
    x: 10
    y: 20
    width: 120
    height: 80
  - title: three
    type: notification
    width: 200
    height: 40
`)
	res, err := LoadFromPaths(base, overlay)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %v", res.Files)
	}
	scr := res.Config.Screens
	if scr.ScaleFor("eDP-1") != 2 || scr.ScaleFor("HDMI-1") != 1 || scr.ScaleFor("DP-3") != 1 {
		t.Fatalf("scales = %v", scr.Scales)
	}
	if len(res.Config.Scene) != 2 || res.Config.Scene[0].Title != "two" {
		t.Fatalf("scene was not replaced: %+v", res.Config.Scene)
	}
	typ, err := res.Config.Scene[0].WindowType()
	if err != nil || typ != frame.ToolWindow {
		t.Fatalf("type = %v, %v", typ, err)
	}
	if r := res.Config.Scene[0].Rect(); r.X != 10 || r.Y != 20 || r.Width != 120 || r.Height != 80 {
		t.Fatalf("rect = %v", r)
	}
}

func TestLoadFromPaths_MissingOverlayErrors(t *testing.T) {
	base := writeConfig(t, "log_level: debug")
	if _, err := LoadFromPaths(base, filepath.Join(t.TempDir(), "scene.yaml")); err == nil {
		t.Fatalf("expected missing overlay to fail")
	}
}

func TestExplain_Sources(t *testing.T) {
	path := writeConfig(t, `
theme:
  preset: dark
  metrics:
    title_height: 24
`)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "theme.metrics.title_height")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 24 || src.Kind != SourceFile || src.Line != 4 {
		t.Fatalf("title_height = %#v from %#v", val, src)
	}

	val, src, err = Explain(res, "theme.colors.active_title_end")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "#3e4c59" || src.Kind != SourceBuiltin || src.Name != "dark" {
		t.Fatalf("active_title_end = %#v from %#v", val, src)
	}

	val, src, err = Explain(res, "theme.colors.highlight_title_start")
	if err != nil || val != "#a02828" || src.Kind != SourceDefault {
		t.Fatalf("highlight_title_start = %#v from %#v, %v", val, src, err)
	}

	val, src, err = Explain(res, "log_level")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "info" || src.Kind != SourceDefault {
		t.Fatalf("log_level = %#v from %#v", val, src)
	}

	val, _, err = Explain(res, "scene[1].title")
	if err != nil || val != "Text Editor" {
		t.Fatalf("scene[1].title = %#v, %v", val, err)
	}

	if _, _, err := Explain(res, "theme.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}
