package fusion

import (
	"fmt"

	"gocv.io/x/gocv"
)

// blendWeights derives the per-pixel blend weights from two sharpness maps.
// The primary weight is sharpP/(sharpP+sharpS); the secondary weight is its
// complement, so the two always sum to one. Near-uniform regions where both
// maps sit at the epsilon floor stay noisy on purpose; the weights still sum
// to one there. The caller owns both returned Mats.
func blendWeights(sharpPrimary, sharpSecondary gocv.Mat) (gocv.Mat, gocv.Mat) {
	total := gocv.NewMat()
	defer total.Close()
	gocv.Add(sharpPrimary, sharpSecondary, &total)

	weightPrimary := gocv.NewMat()
	gocv.Divide(sharpPrimary, total, &weightPrimary)

	ones := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(1, 0, 0, 0),
		sharpPrimary.Rows(), sharpPrimary.Cols(), gocv.MatTypeCV32F)
	defer ones.Close()
	weightSecondary := gocv.NewMat()
	gocv.Subtract(ones, weightPrimary, &weightSecondary)

	return weightPrimary, weightSecondary
}

// Blend fuses two spatially-aligned images, favoring whichever source is
// locally sharper at each pixel. Inputs must share dimensions; the secondary
// is normally the warped output of Align.
func Blend(primary, secondary gocv.Mat, opts Options) (gocv.Mat, error) {
	if primary.Rows() != secondary.Rows() || primary.Cols() != secondary.Cols() {
		return gocv.Mat{}, fmt.Errorf("blend %dx%d vs %dx%d: %w",
			primary.Cols(), primary.Rows(), secondary.Cols(), secondary.Rows(), ErrDimensionMismatch)
	}

	sharpPrimary := SharpnessMap(primary, opts.SharpnessSigma)
	defer sharpPrimary.Close()
	sharpSecondary := SharpnessMap(secondary, opts.SharpnessSigma)
	defer sharpSecondary.Close()

	weightPrimary, weightSecondary := blendWeights(sharpPrimary, sharpSecondary)
	defer weightPrimary.Close()
	defer weightSecondary.Close()

	primaryF := gocv.NewMat()
	defer primaryF.Close()
	primary.ConvertTo(&primaryF, gocv.MatTypeCV32FC3)
	secondaryF := gocv.NewMat()
	defer secondaryF.Close()
	secondary.ConvertTo(&secondaryF, gocv.MatTypeCV32FC3)

	primaryCh := gocv.Split(primaryF)
	secondaryCh := gocv.Split(secondaryF)
	fusedCh := make([]gocv.Mat, len(primaryCh))
	for i := range primaryCh {
		weighted := gocv.NewMat()
		gocv.Multiply(primaryCh[i], weightPrimary, &weighted)
		counterpart := gocv.NewMat()
		gocv.Multiply(secondaryCh[i], weightSecondary, &counterpart)

		fused := gocv.NewMat()
		gocv.Add(weighted, counterpart, &fused)
		fusedCh[i] = fused

		weighted.Close()
		counterpart.Close()
		primaryCh[i].Close()
		secondaryCh[i].Close()
	}

	blendedF := gocv.NewMat()
	defer blendedF.Close()
	gocv.Merge(fusedCh, &blendedF)
	for i := range fusedCh {
		fusedCh[i].Close()
	}

	out := gocv.NewMat()
	blendedF.ConvertTo(&out, gocv.MatTypeCV8UC3)
	return out, nil
}
