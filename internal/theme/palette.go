package theme

import "image/color"

// Palette holds the colours, metrics and asset paths of the current theme.
type Palette struct {
	TitleHeight       int
	BorderThickness   int
	MenubarHeight     int
	TitleButtonWidth  int
	TitleButtonHeight int

	ActiveTitle       [2]color.RGBA
	InactiveTitle     [2]color.RGBA
	HighlightTitle    [2]color.RGBA
	MovingTitle       [2]color.RGBA
	ActiveTitleText   color.RGBA
	InactiveTitleText color.RGBA
	ActiveBorder      color.RGBA
	InactiveBorder    color.RGBA

	Window          color.RGBA
	WindowText      color.RGBA
	ButtonFace      color.RGBA
	ButtonHighlight color.RGBA
	ButtonShadow    color.RGBA
	HoverHighlight  color.RGBA

	// TitleButtonIconsPath is a directory prefix for the window-*.png icons.
	TitleButtonIconsPath string

	ActiveWindowShadowPath   string
	InactiveWindowShadowPath string
	MenuShadowPath           string
	TaskbarShadowPath        string
	TooltipShadowPath        string
}

// DefaultPalette is the classic grey look with a blue active titlebar.
func DefaultPalette() *Palette {
	return &Palette{
		TitleHeight:       19,
		BorderThickness:   4,
		MenubarHeight:     20,
		TitleButtonWidth:  15,
		TitleButtonHeight: 15,

		ActiveTitle:       [2]color.RGBA{{R: 0x00, G: 0x00, B: 0x80, A: 0xff}, {R: 0x10, G: 0x84, B: 0xd0, A: 0xff}},
		InactiveTitle:     [2]color.RGBA{{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, {R: 0xb5, G: 0xb5, B: 0xb5, A: 0xff}},
		HighlightTitle:    [2]color.RGBA{{R: 0xa0, G: 0x28, B: 0x28, A: 0xff}, {R: 0xe0, G: 0x60, B: 0x60, A: 0xff}},
		MovingTitle:       [2]color.RGBA{{R: 0x16, G: 0x5b, B: 0x24, A: 0xff}, {R: 0x36, G: 0xa4, B: 0x4c, A: 0xff}},
		ActiveTitleText:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		InactiveTitleText: color.RGBA{R: 0xd4, G: 0xd0, B: 0xc8, A: 0xff},
		ActiveBorder:      color.RGBA{R: 0xd4, G: 0xd0, B: 0xc8, A: 0xff},
		InactiveBorder:    color.RGBA{R: 0xd4, G: 0xd0, B: 0xc8, A: 0xff},

		Window:          color.RGBA{R: 0xd4, G: 0xd0, B: 0xc8, A: 0xff},
		WindowText:      color.RGBA{A: 0xff},
		ButtonFace:      color.RGBA{R: 0xd4, G: 0xd0, B: 0xc8, A: 0xff},
		ButtonHighlight: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		ButtonShadow:    color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
		HoverHighlight:  color.RGBA{R: 0xe3, G: 0xdf, B: 0xdb, A: 0xff},
	}
}

// TitleColors returns the gradient endpoints for state.
func (p *Palette) TitleColors(state WindowState) [2]color.RGBA {
	switch state {
	case Active:
		return p.ActiveTitle
	case Highlighted:
		return p.HighlightTitle
	case Moving:
		return p.MovingTitle
	default:
		return p.InactiveTitle
	}
}

// TitleTextColor returns the title text colour for state.
func (p *Palette) TitleTextColor(state WindowState) color.RGBA {
	if state == Inactive {
		return p.InactiveTitleText
	}
	return p.ActiveTitleText
}

// BorderColor returns the frame border colour for state.
func (p *Palette) BorderColor(state WindowState) color.RGBA {
	if state == Inactive {
		return p.InactiveBorder
	}
	return p.ActiveBorder
}
