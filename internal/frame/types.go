package frame

import "github.com/1broseidon/winframe/internal/theme"

// WindowType is the closed set of window kinds the frame knows about.
type WindowType int

const (
	Normal WindowType = iota
	ToolWindow
	Notification
	PopupMenu
	Tooltip
	Taskbar
	Desktop
	AppletArea
)

func (t WindowType) String() string {
	switch t {
	case Normal:
		return "normal"
	case ToolWindow:
		return "tool"
	case Notification:
		return "notification"
	case PopupMenu:
		return "menu"
	case Tooltip:
		return "tooltip"
	case Taskbar:
		return "taskbar"
	case Desktop:
		return "desktop"
	case AppletArea:
		return "applet-area"
	default:
		return "unknown"
	}
}

// ThemeType maps the window type onto the theme's chrome families.
func (t WindowType) ThemeType() theme.WindowType {
	switch t {
	case Normal:
		return theme.Normal
	case ToolWindow:
		return theme.ToolWindow
	case Notification:
		return theme.Notification
	case PopupMenu, Tooltip, Taskbar, Desktop, AppletArea:
		return theme.Other
	default:
		return theme.Other
	}
}

// TileType describes how a window is snapped to its screen.
type TileType int

const (
	TileNone TileType = iota
	TileLeft
	TileRight
	TileTop
	TileBottom
)

// WindowMenuAction is an action triggered from a title button or the
// window menu.
type WindowMenuAction int

const (
	ActionClose WindowMenuAction = iota
	ActionMaximizeOrRestore
	ActionMinimizeOrUnminimize
)

func (a WindowMenuAction) String() string {
	switch a {
	case ActionClose:
		return "close"
	case ActionMaximizeOrRestore:
		return "maximize-or-restore"
	case ActionMinimizeOrUnminimize:
		return "minimize-or-unminimize"
	default:
		return "unknown"
	}
}

// WindowMenuDefaultAction is the item a window menu activates on double
// click.
type WindowMenuDefaultAction int

const (
	DefaultNone WindowMenuDefaultAction = iota
	DefaultClose
	DefaultMinimize
	DefaultMaximize
	DefaultRestore
)

func (a WindowMenuDefaultAction) String() string {
	switch a {
	case DefaultNone:
		return "none"
	case DefaultClose:
		return "close"
	case DefaultMinimize:
		return "minimize"
	case DefaultMaximize:
		return "maximize"
	case DefaultRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// ResizeDirection is the edge or corner a resize drags.
type ResizeDirection int

const (
	ResizeNone ResizeDirection = iota
	ResizeUp
	ResizeUpRight
	ResizeRight
	ResizeDownRight
	ResizeDown
	ResizeDownLeft
	ResizeLeft
	ResizeUpLeft
)

func (d ResizeDirection) String() string {
	switch d {
	case ResizeNone:
		return "none"
	case ResizeUp:
		return "up"
	case ResizeUpRight:
		return "up-right"
	case ResizeRight:
		return "right"
	case ResizeDownRight:
		return "down-right"
	case ResizeDown:
		return "down"
	case ResizeDownLeft:
		return "down-left"
	case ResizeLeft:
		return "left"
	case ResizeUpLeft:
		return "up-left"
	default:
		return "unknown"
	}
}
