// Command nodeoverlay projects canonical node coordinates onto a board photo
// and writes the annotated overlay plus the rescaled coordinate file.
package main

import (
	"flag"
	"fmt"
	"os"

	"board-prep/internal/imgio"
	"board-prep/internal/overlay"
)

func main() {
	board := flag.String("board", "", "Path to the target board image")
	nodesJSON := flag.String("nodes-json", "", "Input JSON containing canonical node data")
	outputImage := flag.String("output-image", "", "Destination for the overlay PNG")
	outputJSON := flag.String("output-json", "", "Destination JSON for scaled coordinates")
	fitMode := flag.String("fit-mode", "uniform", "Scaling strategy: uniform, stretch or raw")
	margin := flag.Float64("margin", 12.0, "Padding in pixels to leave around the board")
	fontScale := flag.Float64("font-scale", 0.45, "Font scale for node labels")
	circleRadius := flag.Int("circle-radius", 8, "Radius of the node circles in pixels")
	thickness := flag.Int("thickness", 2, "Stroke thickness for circles and label outline")
	autoColor := flag.Bool("auto-color", false, "Derive the marker color from the board's dominant color")
	flag.Parse()

	if *board == "" || *nodesJSON == "" || *outputImage == "" || *outputJSON == "" {
		fmt.Println("Usage: nodeoverlay -board <img> -nodes-json <json> -output-image <png> -output-json <json> [options]")
		os.Exit(1)
	}

	mode, err := overlay.ParseFitMode(*fitMode)
	if err != nil {
		fatalf("%v", err)
	}

	boardImg, err := imgio.Load(*board)
	if err != nil {
		fatalf("Failed to load board image: %v", err)
	}
	defer boardImg.Close()

	nodes, err := overlay.LoadNodes(*nodesJSON)
	if err != nil {
		fatalf("Failed to load nodes: %v", err)
	}

	fit, err := overlay.FitTransform(nodes, boardImg.Cols(), boardImg.Rows(), *margin, mode)
	if err != nil {
		fatalf("Failed to fit nodes: %v", err)
	}
	remapped := overlay.Transform(nodes, fit)

	opts := overlay.DefaultRenderOptions()
	opts.Radius = *circleRadius
	opts.Thickness = *thickness
	opts.FontScale = *fontScale
	if *autoColor {
		opts.Marker = overlay.MarkerColor(boardImg)
	}

	rendered := overlay.Render(boardImg, remapped, opts)
	defer rendered.Close()
	if err := imgio.Save(*outputImage, rendered); err != nil {
		fatalf("Failed to save overlay: %v", err)
	}
	if err := overlay.SaveNodes(*outputJSON, remapped); err != nil {
		fatalf("Failed to save scaled coordinates: %v", err)
	}

	fmt.Printf("Overlay written to %s\n", *outputImage)
	fmt.Printf("Scaled coordinates saved to %s\n", *outputJSON)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
