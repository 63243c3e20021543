package config

// RawConfig is one YAML file as written. Nil fields were not set.
type RawConfig struct {
	Theme                 *RawTheme       `yaml:"theme"`
	AssetsRoot            *string         `yaml:"assets_root"`
	Screens               *RawScreens     `yaml:"screens"`
	Background            *string         `yaml:"background"`
	FlashPeriodMs         *int            `yaml:"flash_period_ms"`
	DoubleClickIntervalMs *int            `yaml:"double_click_interval_ms"`
	LogLevel              *string         `yaml:"log_level"`
	Scene                 *[]WindowConfig `yaml:"scene"`
}

type RawTheme struct {
	Preset          *string           `yaml:"preset"`
	Metrics         *RawMetrics       `yaml:"metrics"`
	Colors          map[string]string `yaml:"colors"`
	HitThreshold    *float64          `yaml:"hit_threshold"`
	ButtonIconsPath *string           `yaml:"button_icons_path"`
	Shadows         *RawShadows       `yaml:"shadows"`
}

type RawMetrics struct {
	TitleHeight       *int `yaml:"title_height"`
	BorderThickness   *int `yaml:"border_thickness"`
	MenubarHeight     *int `yaml:"menubar_height"`
	TitleButtonWidth  *int `yaml:"title_button_width"`
	TitleButtonHeight *int `yaml:"title_button_height"`
}

type RawShadows struct {
	ActiveWindow   *string `yaml:"active_window"`
	InactiveWindow *string `yaml:"inactive_window"`
	Menu           *string `yaml:"menu"`
	Taskbar        *string `yaml:"taskbar"`
	Tooltip        *string `yaml:"tooltip"`
}

type RawScreens struct {
	DefaultScale *int           `yaml:"default_scale"`
	Scales       map[string]int `yaml:"scales"`
}

// merge overlays the fields set in overlay. Maps merge key by key; the
// scene list is replaced whole.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Theme != nil {
		if out.Theme == nil {
			out.Theme = &RawTheme{}
		}
		merged := mergeRawTheme(*out.Theme, *overlay.Theme)
		out.Theme = &merged
	}
	if overlay.AssetsRoot != nil {
		out.AssetsRoot = overlay.AssetsRoot
	}
	if overlay.Screens != nil {
		if out.Screens == nil {
			out.Screens = &RawScreens{}
		}
		merged := mergeRawScreens(*out.Screens, *overlay.Screens)
		out.Screens = &merged
	}
	if overlay.Background != nil {
		out.Background = overlay.Background
	}
	if overlay.FlashPeriodMs != nil {
		out.FlashPeriodMs = overlay.FlashPeriodMs
	}
	if overlay.DoubleClickIntervalMs != nil {
		out.DoubleClickIntervalMs = overlay.DoubleClickIntervalMs
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Scene != nil {
		out.Scene = overlay.Scene
	}
	return out
}

func mergeRawTheme(base RawTheme, overlay RawTheme) RawTheme {
	out := base
	if overlay.Preset != nil {
		out.Preset = overlay.Preset
	}
	if overlay.Metrics != nil {
		if out.Metrics == nil {
			out.Metrics = &RawMetrics{}
		}
		merged := mergeRawMetrics(*out.Metrics, *overlay.Metrics)
		out.Metrics = &merged
	}
	if overlay.Colors != nil {
		colors := make(map[string]string, len(base.Colors)+len(overlay.Colors))
		for k, v := range base.Colors {
			colors[k] = v
		}
		for k, v := range overlay.Colors {
			colors[k] = v
		}
		out.Colors = colors
	}
	if overlay.HitThreshold != nil {
		out.HitThreshold = overlay.HitThreshold
	}
	if overlay.ButtonIconsPath != nil {
		out.ButtonIconsPath = overlay.ButtonIconsPath
	}
	if overlay.Shadows != nil {
		if out.Shadows == nil {
			out.Shadows = &RawShadows{}
		}
		merged := mergeRawShadows(*out.Shadows, *overlay.Shadows)
		out.Shadows = &merged
	}
	return out
}

func mergeRawMetrics(base RawMetrics, overlay RawMetrics) RawMetrics {
	out := base
	if overlay.TitleHeight != nil {
		out.TitleHeight = overlay.TitleHeight
	}
	if overlay.BorderThickness != nil {
		out.BorderThickness = overlay.BorderThickness
	}
	if overlay.MenubarHeight != nil {
		out.MenubarHeight = overlay.MenubarHeight
	}
	if overlay.TitleButtonWidth != nil {
		out.TitleButtonWidth = overlay.TitleButtonWidth
	}
	if overlay.TitleButtonHeight != nil {
		out.TitleButtonHeight = overlay.TitleButtonHeight
	}
	return out
}

func mergeRawShadows(base RawShadows, overlay RawShadows) RawShadows {
	out := base
	if overlay.ActiveWindow != nil {
		out.ActiveWindow = overlay.ActiveWindow
	}
	if overlay.InactiveWindow != nil {
		out.InactiveWindow = overlay.InactiveWindow
	}
	if overlay.Menu != nil {
		out.Menu = overlay.Menu
	}
	if overlay.Taskbar != nil {
		out.Taskbar = overlay.Taskbar
	}
	if overlay.Tooltip != nil {
		out.Tooltip = overlay.Tooltip
	}
	return out
}

func mergeRawScreens(base RawScreens, overlay RawScreens) RawScreens {
	out := base
	if overlay.DefaultScale != nil {
		out.DefaultScale = overlay.DefaultScale
	}
	if overlay.Scales != nil {
		scales := make(map[string]int, len(base.Scales)+len(overlay.Scales))
		for k, v := range base.Scales {
			scales[k] = v
		}
		for k, v := range overlay.Scales {
			scales[k] = v
		}
		out.Scales = scales
	}
	return out
}
