// Command elbowedit is a terminal editor for scene files. Drag connector
// segments, bends and ends with the mouse, drag shapes to move them, and
// watch the connectors follow.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"elbow/core"
	"elbow/diagram"
)

func main() {
	var (
		unitsX  = flag.Float64("cell-width", 5, "Scene units per terminal column")
		unitsY  = flag.Float64("cell-height", 10, "Scene units per terminal row")
		logFile = flag.String("log", "", "Write routing logs to this file")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] scene.yaml\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: tab select, r reset to auto, y copy path, s save, esc cancel drag, q quit\n")
		fmt.Fprintf(os.Stderr, "Shift-drag a segment to add a bend.\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		core.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	doc, err := diagram.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}
	scene, err := doc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}
	if err := scene.Route(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error routing scene: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	ed := newEditor(screen, scene, filename, *unitsX, *unitsY)
	ed.run()

	screen.Fini()
}
