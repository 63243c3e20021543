package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/1broseidon/winframe/internal/desktop"
	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/screen"
	"golang.org/x/term"
)

func runRender(args []string) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winframe render [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Compose the configured scene on a virtual screen and write it as PNG.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	cf := addConfigFlags(fs)
	out := fs.String("o", "-", "Output file, - for stdout")
	width := fs.Int("width", 1024, "Screen width in logical pixels")
	height := fs.Int("height", 768, "Screen height in logical pixels")
	scale := fs.Int("scale", 1, "Screen scale factor")
	highlight := fs.Int("highlight", -1, "Scene index of a window to highlight")
	flashSteps := fs.Int("flash-steps", 0, "Run this many flash steps on the active window before rendering")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "render takes no arguments")
		fs.Usage()
		return 2
	}
	if *width <= 0 || *height <= 0 || *scale < 1 {
		fmt.Fprintln(os.Stderr, "width and height must be > 0 and scale >= 1")
		return 2
	}
	if *out == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Refusing to write PNG data to a terminal; use -o FILE or redirect stdout")
		return 2
	}

	res, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	setupLogging(res.Config)

	loop := eventloop.New(eventloop.Config{})
	screens := screen.NewRegistry(virtualScreen(*width, *height, *scale))
	m, err := buildDesktop(res.Config, screens, loop, nil)
	if err != nil {
		return fatalf("Failed to build scene: %v", err)
	}

	if *highlight >= 0 {
		w, err := windowByIndex(m, *highlight)
		if err != nil {
			return fatalf("Highlight: %v", err)
		}
		m.SetHighlightWindow(w)
	}
	if *flashSteps > 0 {
		if err := runFlash(m, loop, *flashSteps, res.Config.FlashPeriod()); err != nil {
			return fatalf("Flash: %v", err)
		}
	}

	if err := m.Compose(); err != nil {
		return fatalf("Failed to compose: %v", err)
	}
	fb := m.Compositor().Framebuffer(screens.Main().ID)
	if fb == nil {
		return fatalf("Failed to compose: no framebuffer")
	}

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, fb.Image()); err != nil {
		return fatalf("Failed to encode PNG: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fatalf("Failed to write PNG: %v", err)
	}
	return 0
}

// runFlash starts the attention flash on the active window and runs the
// loop for about steps flash periods.
func runFlash(m *desktop.Manager, loop *eventloop.Loop, steps int, period time.Duration) error {
	active, ok := m.ActiveWindow().(*desktop.Window)
	if !ok {
		return fmt.Errorf("no active window")
	}
	m.Flash(active)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(steps)*period+period/2)
	defer cancel()
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
