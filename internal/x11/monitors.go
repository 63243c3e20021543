package x11

import (
	"fmt"
	"sort"

	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is one active RandR output.
type Monitor struct {
	ID      int
	Name    string
	Rect    geom.Rect
	Primary bool
}

// GetMonitors lists the active monitors, primary output first.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTCs have no size or no outputs.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    name,
			Rect:    geom.Rect{X: int(info.X), Y: int(info.Y), Width: int(info.Width), Height: int(info.Height)},
			Primary: primary != 0 && info.Outputs[0] == primary,
		})
	}

	sort.SliceStable(monitors, func(i, j int) bool {
		return monitors[i].Primary && !monitors[j].Primary
	})
	return monitors, nil
}

// Screens turns the monitors into screens with work areas. scales maps
// output names to scale factors; other outputs use defaultScale.
func (c *Connection) Screens(scales map[string]int, defaultScale int) ([]screen.Screen, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	root, struts := c.dockStruts()
	workarea, haveWorkarea := c.workarea()

	out := make([]screen.Screen, 0, len(monitors))
	for _, m := range monitors {
		work := applyStruts(m.Rect, root, struts)
		if work == m.Rect && haveWorkarea {
			if isect := m.Rect.Intersected(workarea); !isect.IsEmpty() {
				work = isect
			}
		}
		scale := defaultScale
		if s, ok := scales[m.Name]; ok {
			scale = s
		}
		out = append(out, screen.Screen{
			ID:       m.ID,
			Name:     m.Name,
			Rect:     m.Rect,
			WorkArea: work,
			Scale:    scale,
		})
	}
	return out, nil
}

// PointerPosition returns the pointer location on the root window.
func (c *Connection) PointerPosition() (geom.Point, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return geom.Point{}, fmt.Errorf("failed to query pointer: %w", err)
	}
	return geom.Point{X: int(pointer.RootX), Y: int(pointer.RootY)}, nil
}

// workarea is the _NET_WORKAREA of the current desktop.
func (c *Connection) workarea() (geom.Rect, bool) {
	areas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(areas) == 0 {
		return geom.Rect{}, false
	}
	idx := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(areas) {
		idx = int(current)
	}
	wa := areas[idx]
	return geom.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)}, true
}

// dockStruts collects the struts of every dock window. Docks that only set
// _NET_WM_STRUT reserve their edge along the whole root window.
func (c *Connection) dockStruts() (geom.Size, []ewmh.WmStrutPartial) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return geom.Size{}, nil
	}
	root := geom.Size{Width: int(rootGeom.Width), Height: int(rootGeom.Height)}

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return root, nil
	}

	var struts []ewmh.WmStrutPartial
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil || !contains(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			struts = append(struts, *sp)
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			struts = append(struts, fullStrut(s, root))
		}
	}
	return root, struts
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func fullStrut(s *ewmh.WmStrut, root geom.Size) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:         s.Left,
		Right:        s.Right,
		Top:          s.Top,
		Bottom:       s.Bottom,
		LeftEndY:     uint(root.Height - 1),
		RightEndY:    uint(root.Height - 1),
		TopEndX:      uint(root.Width - 1),
		BottomEndX:   uint(root.Width - 1),
		LeftStartY:   0,
		RightStartY:  0,
		TopStartX:    0,
		BottomStartX: 0,
	}
}

// applyStruts removes the edges reserved by docks from a monitor rect.
// Each side shrinks by the largest overlap of any strut on that side.
func applyStruts(mon geom.Rect, root geom.Size, struts []ewmh.WmStrutPartial) geom.Rect {
	var left, right, top, bottom int
	for _, sp := range struts {
		if sp.Top > 0 {
			r := spanRect(int(sp.TopStartX), int(sp.TopEndX), 0, int(sp.Top), true)
			top = max(top, mon.Intersected(r).Height)
		}
		if sp.Bottom > 0 {
			r := spanRect(int(sp.BottomStartX), int(sp.BottomEndX), root.Height-int(sp.Bottom), root.Height, true)
			bottom = max(bottom, mon.Intersected(r).Height)
		}
		if sp.Left > 0 {
			r := spanRect(int(sp.LeftStartY), int(sp.LeftEndY), 0, int(sp.Left), false)
			left = max(left, mon.Intersected(r).Width)
		}
		if sp.Right > 0 {
			r := spanRect(int(sp.RightStartY), int(sp.RightEndY), root.Width-int(sp.Right), root.Width, false)
			right = max(right, mon.Intersected(r).Width)
		}
	}
	if left == 0 && right == 0 && top == 0 && bottom == 0 {
		return mon
	}
	return geom.Rect{
		X:      mon.X + left,
		Y:      mon.Y + top,
		Width:  max(1, mon.Width-left-right),
		Height: max(1, mon.Height-top-bottom),
	}
}

// spanRect builds a strut rect from an inclusive [start, end] range along
// the edge and a half-open [from, to) depth across it.
func spanRect(start, end, from, to int, horizontal bool) geom.Rect {
	if horizontal {
		return geom.Rect{X: start, Y: from, Width: end - start + 1, Height: to - from}
	}
	return geom.Rect{X: from, Y: start, Width: to - from, Height: end - start + 1}
}
