package fusion

import (
	"image"

	"gocv.io/x/gocv"
)

// sharpnessEpsilon keeps every sharpness value strictly positive so the map
// can be used as a division denominator.
const sharpnessEpsilon = 1e-6

// SharpnessMap computes a per-pixel focus score for a BGR image: the squared
// Laplacian response of the intensity field, pooled with a Gaussian of the
// given sigma and min-max normalized to [0,1]. The returned Mat is CV32F with
// the source's spatial dimensions; the caller owns it.
func SharpnessMap(img gocv.Mat, sigma float64) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	intensity := gocv.NewMat()
	defer intensity.Close()
	gray.ConvertToWithParams(&intensity, gocv.MatTypeCV32F, 1.0/255.0, 0)

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(intensity, &lap, gocv.MatTypeCV32F, 1, 1, 0, gocv.BorderDefault)

	// Squaring discards the sign so high-frequency energy dominates.
	energy := gocv.NewMat()
	defer energy.Close()
	gocv.Multiply(lap, lap, &energy)

	pooled := gocv.NewMat()
	defer pooled.Close()
	gocv.GaussianBlur(energy, &pooled, image.Point{}, sigma, sigma, gocv.BorderDefault)

	out := gocv.NewMat()
	gocv.Normalize(pooled, &out, 0, 1, gocv.NormMinMax)
	out.AddFloat(sharpnessEpsilon)
	return out
}
