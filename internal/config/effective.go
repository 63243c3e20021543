package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig overlays raw onto DefaultConfig and validates the
// result.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if t := raw.Theme; t != nil {
		if t.Preset != nil {
			cfg.Theme.Preset = *t.Preset
		}
		if m := t.Metrics; m != nil {
			if m.TitleHeight != nil {
				cfg.Theme.Metrics.TitleHeight = *m.TitleHeight
			}
			if m.BorderThickness != nil {
				cfg.Theme.Metrics.BorderThickness = *m.BorderThickness
			}
			if m.MenubarHeight != nil {
				cfg.Theme.Metrics.MenubarHeight = *m.MenubarHeight
			}
			if m.TitleButtonWidth != nil {
				cfg.Theme.Metrics.TitleButtonWidth = *m.TitleButtonWidth
			}
			if m.TitleButtonHeight != nil {
				cfg.Theme.Metrics.TitleButtonHeight = *m.TitleButtonHeight
			}
		}
		for name, value := range t.Colors {
			cfg.Theme.Colors[name] = value
		}
		if t.HitThreshold != nil {
			cfg.Theme.HitThreshold = *t.HitThreshold
		}
		if t.ButtonIconsPath != nil {
			cfg.Theme.ButtonIconsPath = *t.ButtonIconsPath
		}
		if s := t.Shadows; s != nil {
			if s.ActiveWindow != nil {
				cfg.Theme.Shadows.ActiveWindow = *s.ActiveWindow
			}
			if s.InactiveWindow != nil {
				cfg.Theme.Shadows.InactiveWindow = *s.InactiveWindow
			}
			if s.Menu != nil {
				cfg.Theme.Shadows.Menu = *s.Menu
			}
			if s.Taskbar != nil {
				cfg.Theme.Shadows.Taskbar = *s.Taskbar
			}
			if s.Tooltip != nil {
				cfg.Theme.Shadows.Tooltip = *s.Tooltip
			}
		}
	}
	if raw.AssetsRoot != nil {
		cfg.AssetsRoot = *raw.AssetsRoot
	}
	if s := raw.Screens; s != nil {
		if s.DefaultScale != nil {
			cfg.Screens.DefaultScale = *s.DefaultScale
		}
		for name, scale := range s.Scales {
			cfg.Screens.Scales[name] = scale
		}
	}
	if raw.Background != nil {
		cfg.Background = *raw.Background
	}
	if raw.FlashPeriodMs != nil {
		cfg.FlashPeriodMs = *raw.FlashPeriodMs
	}
	if raw.DoubleClickIntervalMs != nil {
		cfg.DoubleClickIntervalMs = *raw.DoubleClickIntervalMs
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Scene != nil {
		cfg.Scene = append([]WindowConfig(nil), (*raw.Scene)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
