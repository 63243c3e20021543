package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Paths use the YAML key names, for example:
//
//	log_level
//	theme.preset
//	theme.metrics.title_height
//	theme.colors.active_title_start
//	screens.scales.eDP-1
//	scene[1].title
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	// theme.colors only holds overrides; explain every slot through the
	// resolved palette instead.
	if name, ok := strings.CutPrefix(path, "theme.colors."); ok {
		slot, ok := colorSlots[name]
		if !ok {
			return nil, Source{}, fmt.Errorf("unknown path: %s", path)
		}
		value := formatHex(*slot(res.Config.Palette()))
		if src, ok := res.Sources[path]; ok {
			return value, src, nil
		}
		if _, ok := BuiltinPresets()[res.Config.Theme.Preset][name]; ok {
			return value, Source{Kind: SourceBuiltin, Name: res.Config.Theme.Preset}, nil
		}
		return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func formatHex(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// lookupValue walks the YAML form of cfg, so every path accepted in a
// config file can be explained.
func lookupValue(cfg *Config, path string) (any, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, err
	}

	node := &doc
	for _, part := range splitPath(path) {
		switch node.Kind {
		case yaml.MappingNode:
			next := mappingValue(node, part)
			if next == nil {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			node = next
		case yaml.SequenceNode:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node.Content) {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			node = node.Content[i]
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	}

	var out any
	if err := node.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// splitPath turns scene[1].title into [scene 1 title].
func splitPath(path string) []string {
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")
	return strings.Split(path, ".")
}
