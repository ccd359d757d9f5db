package fusion

import (
	"fmt"
	"image"
	"sort"

	"board-prep/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// RANSAC iteration/confidence parameters for homography estimation.
const (
	ransacMaxIters   = 2000
	ransacConfidence = 0.995
)

// AlignResult describes how the secondary image was registered onto the
// primary's perspective.
type AlignResult struct {
	Warped     gocv.Mat   // secondary warped onto a primary-sized canvas
	Homography *mat.Dense // 3x3, secondary frame -> primary frame
	Matches    int        // cross-checked matches used for estimation
	Inliers    int        // RANSAC inliers
	MeanError  float64    // mean inlier reprojection error in pixels
}

// Align estimates a homography mapping the secondary image onto the primary
// and warps the secondary through it. Pure function of its inputs; the caller
// owns the returned Warped Mat.
func Align(primary, secondary gocv.Mat, opts Options) (*AlignResult, error) {
	if primary.Empty() || secondary.Empty() {
		return nil, fmt.Errorf("empty input image")
	}

	primaryGray := gocv.NewMat()
	defer primaryGray.Close()
	gocv.CvtColor(primary, &primaryGray, gocv.ColorBGRToGray)

	secondaryGray := gocv.NewMat()
	defer secondaryGray.Close()
	gocv.CvtColor(secondary, &secondaryGray, gocv.ColorBGRToGray)

	orb := gocv.NewORBWithParams(opts.MaxFeatures, 1.2, 8, 31, 0, 2, gocv.ORBScoreTypeHarris, 31, 20)
	defer orb.Close()

	noMask := gocv.NewMat()
	defer noMask.Close()

	kpPrimary, desPrimary := orb.DetectAndCompute(primaryGray, noMask)
	defer desPrimary.Close()
	kpSecondary, desSecondary := orb.DetectAndCompute(secondaryGray, noMask)
	defer desSecondary.Close()

	if desPrimary.Empty() || desSecondary.Empty() {
		return nil, fmt.Errorf("align: %w", ErrNoFeatures)
	}

	// Hamming matching with cross-check keeps only mutual-best pairs, at most
	// one per primary descriptor.
	matcher := gocv.NewBFMatcherWithParams(gocv.NormHamming, true)
	defer matcher.Close()

	var matches []gocv.DMatch
	for _, candidates := range matcher.KnnMatch(desPrimary, desSecondary, 1) {
		if len(candidates) == 1 {
			matches = append(matches, candidates[0])
		}
	}
	if len(matches) < opts.MinMatches {
		return nil, fmt.Errorf("align: %d cross-checked matches, need %d: %w",
			len(matches), opts.MinMatches, ErrInsufficientMatches)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if len(matches) > opts.MaxMatches {
		matches = matches[:opts.MaxMatches]
	}

	srcPts := gocv.NewMatWithSize(len(matches), 1, gocv.MatTypeCV64FC2)
	defer srcPts.Close()
	dstPts := gocv.NewMatWithSize(len(matches), 1, gocv.MatTypeCV64FC2)
	defer dstPts.Close()
	for i, m := range matches {
		p := kpPrimary[m.QueryIdx]
		s := kpSecondary[m.TrainIdx]
		srcPts.SetDoubleAt(i, 0, s.X)
		srcPts.SetDoubleAt(i, 1, s.Y)
		dstPts.SetDoubleAt(i, 0, p.X)
		dstPts.SetDoubleAt(i, 1, p.Y)
	}

	inlierMask := gocv.NewMat()
	defer inlierMask.Close()
	// HomograpyMethodRANSAC: the constant's name carries an upstream typo
	hMat := gocv.FindHomography(srcPts, &dstPts, gocv.HomograpyMethodRANSAC,
		opts.RansacThreshold, &inlierMask, ransacMaxIters, ransacConfidence)
	defer hMat.Close()
	if hMat.Empty() {
		return nil, fmt.Errorf("align: %w", ErrHomographyFailed)
	}

	homography := denseFromMat(hMat)

	warped := gocv.NewMat()
	gocv.WarpPerspective(secondary, &warped, hMat, image.Pt(primary.Cols(), primary.Rows()))

	inliers, meanErr := reprojectionStats(homography, kpPrimary, kpSecondary, matches, inlierMask)
	if opts.Debug {
		fmt.Printf("align: %d matches, %d inliers, mean error %.2f px\n",
			len(matches), inliers, meanErr)
	}

	return &AlignResult{
		Warped:     warped,
		Homography: homography,
		Matches:    len(matches),
		Inliers:    inliers,
		MeanError:  meanErr,
	}, nil
}

// denseFromMat copies a CV64F gocv matrix into a gonum Dense.
func denseFromMat(m gocv.Mat) *mat.Dense {
	rows, cols := m.Rows(), m.Cols()
	data := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data = append(data, m.GetDoubleAt(r, c))
		}
	}
	return mat.NewDense(rows, cols, data)
}

// Project maps a point through a 3x3 homography.
func Project(h *mat.Dense, p geometry.Point2D) geometry.Point2D {
	var v mat.VecDense
	v.MulVec(h, mat.NewVecDense(3, []float64{p.X, p.Y, 1}))
	w := v.AtVec(2)
	return geometry.Point2D{X: v.AtVec(0) / w, Y: v.AtVec(1) / w}
}

// reprojectionStats projects the secondary keypoint of every RANSAC inlier
// through the homography and measures its distance to the matched primary
// keypoint.
func reprojectionStats(h *mat.Dense, kpPrimary, kpSecondary []gocv.KeyPoint, matches []gocv.DMatch, inlierMask gocv.Mat) (int, float64) {
	var residuals []float64
	for i, m := range matches {
		if i >= inlierMask.Rows() || inlierMask.GetUCharAt(i, 0) == 0 {
			continue
		}
		p := kpPrimary[m.QueryIdx]
		s := kpSecondary[m.TrainIdx]
		projected := Project(h, geometry.Point2D{X: s.X, Y: s.Y})
		residuals = append(residuals, projected.Distance(geometry.Point2D{X: p.X, Y: p.Y}))
	}
	if len(residuals) == 0 {
		return 0, 0
	}
	return len(residuals), stat.Mean(residuals, nil)
}
