package fusion

import (
	"fmt"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// Result holds everything a fusion run produces.
type Result struct {
	Fused      gocv.Mat   // sharpened composite
	Overlay    gocv.Mat   // 50/50 blend of primary and aligned secondary, for QA
	Homography *mat.Dense // 3x3, secondary frame -> primary frame
	Matches    int
	Inliers    int
	MeanError  float64
}

// Close releases the Mats held by the result.
func (r *Result) Close() {
	r.Fused.Close()
	r.Overlay.Close()
}

// Fuse runs the full pipeline: align the secondary photo to the primary,
// blend by local sharpness, then sharpen. Any stage failure aborts the run.
func Fuse(primary, secondary gocv.Mat, opts Options) (*Result, error) {
	aligned, err := Align(primary, secondary, opts)
	if err != nil {
		return nil, fmt.Errorf("align secondary: %w", err)
	}
	defer aligned.Warped.Close()

	blended, err := Blend(primary, aligned.Warped, opts)
	if err != nil {
		return nil, fmt.Errorf("blend: %w", err)
	}
	defer blended.Close()

	fused := Sharpen(blended, opts.SharpenRadius, opts.SharpenAmount)

	overlay := gocv.NewMat()
	gocv.AddWeighted(primary, 0.5, aligned.Warped, 0.5, 0, &overlay)

	return &Result{
		Fused:      fused,
		Overlay:    overlay,
		Homography: aligned.Homography,
		Matches:    aligned.Matches,
		Inliers:    aligned.Inliers,
		MeanError:  aligned.MeanError,
	}, nil
}
