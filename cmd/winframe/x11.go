package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/winframe/internal/eventloop"
	"github.com/1broseidon/winframe/internal/frame"
	"github.com/1broseidon/winframe/internal/geom"
	"github.com/1broseidon/winframe/internal/input"
	"github.com/1broseidon/winframe/internal/screen"
	"github.com/1broseidon/winframe/internal/x11"
)

func runScreens(args []string) int {
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winframe screens [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the X11 monitors with their work areas and configured scales.")
	}
	cf := addConfigFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "screens takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	setupLogging(res.Config)

	conn, err := x11.NewConnection()
	if err != nil {
		return fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	screens, err := conn.Screens(res.Config.Screens.Scales, res.Config.Screens.DefaultScale)
	if err != nil {
		return fatalf("Failed to list monitors: %v", err)
	}
	for i, s := range screens {
		tag := ""
		if i == 0 {
			tag = " (main)"
		}
		fmt.Printf("%d %s%s\n", s.ID, s.Name, tag)
		fmt.Printf("  rect:      %s\n", formatRect(s.Rect))
		fmt.Printf("  work_area: %s\n", formatRect(s.WorkArea))
		fmt.Printf("  scale:     %d\n", s.ScaleFactor())
	}
	return 0
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func runTrack(args []string) int {
	fs := flag.NewFlagSet("track", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winframe track [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Lay the scene out over the X11 monitors, follow the pointer and show")
		fmt.Fprintln(os.Stderr, "the resize cursor of the frame edge under it on the root window.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	cf := addConfigFlags(fs)
	interval := fs.Duration("interval", 30*time.Millisecond, "Pointer poll interval")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := cf.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	setupLogging(res.Config)

	conn, err := x11.NewConnection()
	if err != nil {
		return fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	list, err := conn.Screens(res.Config.Screens.Scales, res.Config.Screens.DefaultScale)
	if err != nil {
		return fatalf("Failed to list monitors: %v", err)
	}
	cursors := x11.NewCursors(conn)
	defer cursors.Free()

	loop := eventloop.New(eventloop.Config{})
	m, err := buildDesktop(res.Config, screen.NewRegistry(list...), loop, cursors)
	if err != nil {
		return fatalf("Failed to build scene: %v", err)
	}
	log.Printf("Tracking pointer over %d windows on %d monitors", len(m.Windows()), len(list))

	var last geom.Point
	first := true
	poll := loop.Every(*interval, func() {
		p, err := conn.PointerPosition()
		if err != nil {
			log.Printf("Warning: %v", err)
			return
		}
		if !first && p == last {
			return
		}
		first = false
		last = p
		m.ProcessMouseEvent(input.MouseEvent{Type: input.MouseMove, Position: p})
	})
	defer poll.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return fatalf("Event loop failed: %v", err)
	}

	if err := cursors.SetResizeCursor(frame.ResizeNone); err != nil {
		log.Printf("Warning: failed to restore cursor: %v", err)
	}
	log.Println("winframe track stopped")
	return 0
}
