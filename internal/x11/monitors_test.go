package x11

import (
	"testing"

	"github.com/1broseidon/winframe/internal/geom"
	"github.com/BurntSushi/xgbutil/ewmh"
)

func TestApplyStrutsTopPanelOnOneMonitor(t *testing.T) {
	root := geom.Size{Width: 3840, Height: 1080}
	left := geom.Rect{Width: 1920, Height: 1080}
	right := geom.Rect{X: 1920, Width: 1920, Height: 1080}
	panel := ewmh.WmStrutPartial{Top: 30, TopStartX: 0, TopEndX: 1919}

	if got := applyStruts(left, root, []ewmh.WmStrutPartial{panel}); got != (geom.Rect{Y: 30, Width: 1920, Height: 1050}) {
		t.Fatalf("left monitor work area = %v", got)
	}
	if got := applyStruts(right, root, []ewmh.WmStrutPartial{panel}); got != right {
		t.Fatalf("right monitor should be untouched, got %v", got)
	}
}

func TestApplyStrutsTakesLargestPerSide(t *testing.T) {
	root := geom.Size{Width: 1920, Height: 1080}
	mon := geom.Rect{Width: 1920, Height: 1080}
	struts := []ewmh.WmStrutPartial{
		fullStrut(&ewmh.WmStrut{Bottom: 40}, root),
		fullStrut(&ewmh.WmStrut{Bottom: 24, Left: 48}, root),
	}
	want := geom.Rect{X: 48, Width: 1872, Height: 1040}
	if got := applyStruts(mon, root, struts); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyStrutsNeverCollapses(t *testing.T) {
	root := geom.Size{Width: 100, Height: 100}
	mon := geom.Rect{Width: 100, Height: 100}
	got := applyStruts(mon, root, []ewmh.WmStrutPartial{fullStrut(&ewmh.WmStrut{Left: 60, Right: 60}, root)})
	if got.Width != 1 {
		t.Fatalf("width = %d, want 1", got.Width)
	}
}
