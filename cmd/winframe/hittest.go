package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/1broseidon/winframe/internal/desktop"
	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/screen"
)

func runHitTest(args []string) int {
	fs := flag.NewFlagSet("hittest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winframe hittest [options] X Y")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Report the topmost scene window at X,Y and which part of it was hit.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	cf := addConfigFlags(fs)
	width := fs.Int("width", 1024, "Screen width in logical pixels")
	height := fs.Int("height", 768, "Screen height in logical pixels")
	scale := fs.Int("scale", 1, "Screen scale factor")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	x, errX := strconv.Atoi(fs.Arg(0))
	y, errY := strconv.Atoi(fs.Arg(1))
	if errX != nil || errY != nil {
		fmt.Fprintln(os.Stderr, "X and Y must be integers")
		return 2
	}

	res, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	setupLogging(res.Config)

	screens := screen.NewRegistry(virtualScreen(*width, *height, *scale))
	m, err := buildDesktop(res.Config, screens, eventloop.New(eventloop.Config{}), nil)
	if err != nil {
		return fatalf("Failed to build scene: %v", err)
	}

	p := geom.Point{X: x, Y: y}
	fmt.Printf("point: %d,%d\n", p.X, p.Y)
	w, onFrame := m.WindowAt(p)
	if w == nil {
		fmt.Println("window: none")
		return 0
	}
	fmt.Printf("window: %d %q\n", w.ID(), w.Title())
	if !onFrame {
		fmt.Println("part: content")
		rel := p.Sub(w.Rect().Location())
		fmt.Printf("content_relative: %d,%d\n", rel.X, rel.Y)
		return 0
	}

	hit, _ := w.Frame().HitTest(p)
	part := framePart(w, p)
	fmt.Printf("part: %s\n", part)
	if part == "border" {
		fmt.Printf("resize: %s\n", frame.ResizeZone(w.Frame().Rect(), p))
	}
	fmt.Printf("render_relative: %d,%d\n", hit.WindowRelativePosition.X, hit.WindowRelativePosition.Y)
	return 0
}

// framePart names the chrome element under p, in the order the frame
// routes events.
func framePart(w *desktop.Window, p geom.Point) string {
	f := w.Frame()
	rel := p.Sub(f.Rect().Location())
	if f.TitlebarIconRect().Contains(rel) {
		return "titlebar-icon"
	}
	for i, b := range f.Buttons() {
		if b.Rect().Contains(rel) {
			return "button " + strconv.Itoa(i)
		}
	}
	if f.TitlebarRect().Contains(rel) {
		return "titlebar"
	}
	if w.ShouldShowMenubar() && f.MenubarRect().Contains(rel) {
		return "menubar"
	}
	return "border"
}
