// Command fuseboard fuses two photographs of the same board into a single
// sharpened composite and writes alignment debug artifacts next to it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"board-prep/internal/fusion"
	"board-prep/internal/imgio"
)

func main() {
	primary := flag.String("primary", "", "Path to the base image (reference perspective)")
	secondary := flag.String("secondary", "", "Path to the secondary image to align")
	output := flag.String("output", "", "Destination PNG for the blended map")
	debugDir := flag.String("debug-dir", filepath.Join("assets", "board"), "Directory for debug outputs")
	verbose := flag.Bool("v", false, "Print alignment diagnostics")
	flag.Parse()

	if *primary == "" || *secondary == "" || *output == "" {
		fmt.Println("Usage: fuseboard -primary <img> -secondary <img> -output <png> [-debug-dir <dir>]")
		os.Exit(1)
	}

	primaryImg, err := imgio.Load(*primary)
	if err != nil {
		fatalf("Failed to load primary: %v", err)
	}
	defer primaryImg.Close()

	secondaryImg, err := imgio.Load(*secondary)
	if err != nil {
		fatalf("Failed to load secondary: %v", err)
	}
	defer secondaryImg.Close()

	opts := fusion.DefaultOptions()
	opts.Debug = *verbose

	result, err := fusion.Fuse(primaryImg, secondaryImg, opts)
	if err != nil {
		fatalf("Fusion failed: %v", err)
	}
	defer result.Close()

	if err := imgio.Save(*output, result.Fused); err != nil {
		fatalf("Failed to save composite: %v", err)
	}

	overlayPath := filepath.Join(*debugDir, "board_overlay.png")
	if err := imgio.Save(overlayPath, result.Overlay); err != nil {
		fatalf("Failed to save debug overlay: %v", err)
	}
	if err := imgio.SaveHomography(filepath.Join(*debugDir, "homography.json"), result.Homography); err != nil {
		fatalf("Failed to save homography: %v", err)
	}

	fmt.Printf("Blended board saved to %s\n", *output)
	fmt.Printf("Debug overlay saved to %s\n", overlayPath)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
