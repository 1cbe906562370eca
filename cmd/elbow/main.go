// Command elbow routes the connectors of a scene file and exports the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"elbow/core"
	"elbow/diagram"
	"elbow/export"
)

func main() {
	var (
		inputFile = flag.String("i", "", "Scene file (YAML)")
		output    = flag.String("o", "", "Output file; format from extension (default: SVG on stdout)")
		format    = flag.String("format", "", "Output format: svg, png, json, txt (overrides the extension)")
		scale     = flag.Float64("scale", 1, "Pixels per unit for PNG output")
		inspect   = flag.Bool("inspect", false, "Print the segments of every connector")
		check     = flag.Bool("check", false, "Validate connector geometry and exit non-zero on violations")
		write     = flag.Bool("w", false, "Write routed points back into the scene file")
		verbose   = flag.Bool("v", false, "Log routing decisions to stderr")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -i scene.yaml [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routes orthogonal connectors between the shapes of a scene.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i scene.yaml -o scene.svg\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i scene.yaml -o scene.png -scale 2\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i scene.yaml -inspect -check\n", os.Args[0])
	}
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required (-i)\n")
		flag.Usage()
		os.Exit(1)
	}

	if *verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	doc, err := diagram.Load(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
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

	if *inspect {
		fmt.Println(renderSegmentTable(scene))
	}
	if *check {
		problems := checkScene(scene)
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		if len(problems) > 0 {
			os.Exit(1)
		}
		if !*inspect && *output == "" {
			fmt.Println("All connectors valid")
			return
		}
	}
	if *inspect && *output == "" && *format == "" && !*write {
		return
	}

	if *write {
		if err := scene.Sync().Save(*inputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving scene: %v\n", err)
			os.Exit(1)
		}
		if *output == "" && *format == "" {
			return
		}
	}

	if err := writeOutput(scene, *output, *format, *scale); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}
	if *output != "" {
		fmt.Printf("Successfully exported scene to %s\n", *output)
	}
}

func writeOutput(scene *diagram.Scene, output, formatName string, scale float64) (err error) {
	f := export.FormatSVG
	switch {
	case formatName != "":
		f, err = export.ParseFormat(formatName)
	case output != "":
		f, err = export.FormatForPath(output)
	}
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Scale = scale
	exporter, err := export.NewExporter(f, opts)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		file, cerr := os.Create(output)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing %s: %w", output, cerr)
			}
		}()
		w = file
	}
	return exporter.Export(w, scene)
}
