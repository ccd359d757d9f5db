package overlay

import (
	"image/color"
	"math"

	"board-prep/internal/imgio"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// MarkerColor picks a circle color that stands out against the board by
// opposing its dominant hue at full brightness. Falls back to the default
// amber when the dominant color cannot be derived.
func MarkerColor(board gocv.Mat) color.RGBA {
	found := dominantcolor.Find(imgio.ToImage(board))
	found.A = 255
	dominant, ok := colorful.MakeColor(found)
	if !ok {
		return DefaultRenderOptions().Marker
	}

	h, s, _ := dominant.Hsv()
	contrast := colorful.Hsv(math.Mod(h+180, 360), math.Max(s, 0.6), 1)
	r, g, b := contrast.RGB255()
	return color.RGBA{R: r, G: g, B: b}
}
