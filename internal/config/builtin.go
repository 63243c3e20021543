package config

import "sort"

// DefaultPreset is the colour preset used when theme.preset is unset.
const DefaultPreset = "classic"

// BuiltinPresets returns the built-in colour presets, keyed by name. Each
// preset lists the palette slots it changes; theme.colors is applied on top.
func BuiltinPresets() map[string]map[string]string {
	return map[string]map[string]string{
		"classic": {},
		"dark": {
			"active_title_start":   "#1f2933",
			"active_title_end":     "#3e4c59",
			"inactive_title_start": "#323f4b",
			"inactive_title_end":   "#52606d",
			"active_title_text":    "#f5f7fa",
			"inactive_title_text":  "#9aa5b1",
			"active_border":        "#3e4c59",
			"inactive_border":      "#323f4b",
			"window":               "#1f2933",
			"window_text":          "#e4e7eb",
			"button_face":          "#52606d",
			"button_highlight":     "#7b8794",
			"button_shadow":        "#1f2933",
			"hover_highlight":      "#616e7c",
		},
		"plum": {
			"active_title_start":    "#4b1d52",
			"active_title_end":      "#9c4f96",
			"inactive_title_start":  "#6f6270",
			"inactive_title_end":    "#a89aa9",
			"highlight_title_start": "#a12568",
			"highlight_title_end":   "#fec5bb",
			"active_border":         "#d8cfd9",
			"inactive_border":       "#d8cfd9",
		},
	}
}

// PresetNames lists the built-in presets in order.
func PresetNames() []string {
	presets := BuiltinPresets()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
