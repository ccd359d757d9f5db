package overlay

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gocv.io/x/gocv"
)

// RenderOptions configures marker rendering.
type RenderOptions struct {
	Radius    int        // node circle radius in pixels
	Thickness int        // stroke thickness for circles and label outline
	FontScale float64    // label font scale
	Marker    color.RGBA // circle color
}

// DefaultRenderOptions returns the rendering used for QA overlays: amber
// circles with white-on-black id labels.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Radius:    8,
		Thickness: 2,
		FontScale: 0.45,
		Marker:    color.RGBA{R: 255, G: 215, B: 0},
	}
}

// Render draws a circle and a centered id label for every node onto a copy
// of the board image. The caller owns the returned Mat.
func Render(board gocv.Mat, nodes []Node, opts RenderOptions) gocv.Mat {
	out := board.Clone()
	font := gocv.FontHersheySimplex

	for _, n := range nodes {
		center := image.Pt(
			int(math.Round(n.Position.X)),
			int(math.Round(n.Position.Y)),
		)
		gocv.Circle(&out, center, opts.Radius, opts.Marker, opts.Thickness)

		label := strconv.Itoa(n.ID)
		size := gocv.GetTextSize(label, font, opts.FontScale, opts.Thickness)
		org := image.Pt(center.X-size.X/2, center.Y+size.Y/2)
		// black outline under white text keeps labels readable on any board
		gocv.PutTextWithParams(&out, label, org, font, opts.FontScale,
			color.RGBA{}, opts.Thickness+2, gocv.LineAA, false)
		gocv.PutTextWithParams(&out, label, org, font, opts.FontScale,
			color.RGBA{R: 255, G: 255, B: 255}, opts.Thickness, gocv.LineAA, false)
	}
	return out
}
