package overlay

import (
	"fmt"
	"math"

	"board-prep/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// FitMode selects how canonical coordinates are scaled onto the board photo.
type FitMode string

const (
	// FitUniform scales both axes by the same factor and centers the result.
	FitUniform FitMode = "uniform"
	// FitStretch scales each axis independently to fill the usable area.
	FitStretch FitMode = "stretch"
	// FitRaw keeps coordinates untouched.
	FitRaw FitMode = "raw"
)

// ParseFitMode validates a fit-mode flag value.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case FitUniform, FitStretch, FitRaw:
		return FitMode(s), nil
	}
	return "", fmt.Errorf("unknown fit mode %q (want uniform, stretch or raw)", s)
}

// FitTransform computes the scale/offset mapping node coordinates into a
// width x height image leaving margin pixels on every side.
func FitTransform(nodes []Node, width, height int, margin float64, mode FitMode) (geometry.AffineTransform, error) {
	if len(nodes) == 0 {
		return geometry.AffineTransform{}, fmt.Errorf("no nodes to fit")
	}

	xs := make([]float64, len(nodes))
	ys := make([]float64, len(nodes))
	for i, n := range nodes {
		xs[i] = n.Position.X
		ys[i] = n.Position.Y
	}
	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)
	srcWidth := maxX - minX
	srcHeight := maxY - minY

	usableWidth := float64(width) - 2*margin
	usableHeight := float64(height) - 2*margin
	if usableWidth <= 0 || usableHeight <= 0 {
		return geometry.AffineTransform{}, fmt.Errorf("margin %.1f leaves no drawable area in a %dx%d image", margin, width, height)
	}

	if mode == FitRaw {
		return geometry.Identity(), nil
	}
	if srcWidth <= 0 || srcHeight <= 0 {
		return geometry.AffineTransform{}, fmt.Errorf("nodes span a degenerate %gx%g area, nothing to scale", srcWidth, srcHeight)
	}

	switch mode {
	case FitStretch:
		scaleX := usableWidth / srcWidth
		scaleY := usableHeight / srcHeight
		return geometry.ScaleOffset(scaleX, scaleY,
			margin-scaleX*minX, margin-scaleY*minY), nil
	default:
		scale := math.Min(usableWidth/srcWidth, usableHeight/srcHeight)
		return geometry.ScaleOffset(scale, scale,
			(float64(width)-scale*srcWidth)/2-scale*minX,
			(float64(height)-scale*srcHeight)/2-scale*minY), nil
	}
}
