package fusion

import (
	"image"

	"gocv.io/x/gocv"
)

// Sharpen applies an unsharp mask: out = img*(1+amount) - blurred*amount,
// pushing pixel values away from their local Gaussian average to counteract
// blur introduced by warping and blending. Channels saturate to 8-bit range.
func Sharpen(img gocv.Mat, radius, amount float64) gocv.Mat {
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(img, &blurred, image.Point{}, radius, radius, gocv.BorderDefault)

	out := gocv.NewMat()
	gocv.AddWeighted(img, 1+amount, blurred, -amount, 0, &out)
	return out
}
