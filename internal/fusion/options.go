// Package fusion merges two photographs of the same board into a single
// composite that keeps the sharper source at every pixel.
package fusion

import "errors"

// Failure modes of the pipeline. Every one is fatal to the run.
var (
	// ErrNoFeatures means a source image yielded no usable descriptors.
	ErrNoFeatures = errors.New("no feature descriptors detected")
	// ErrInsufficientMatches means too few cross-checked matches were found
	// for a statistically reliable homography.
	ErrInsufficientMatches = errors.New("not enough feature matches for a homography")
	// ErrHomographyFailed means RANSAC could not converge on a homography,
	// usually a degenerate point configuration.
	ErrHomographyFailed = errors.New("homography estimation failed")
	// ErrDimensionMismatch means the blend inputs differ in size.
	ErrDimensionMismatch = errors.New("image dimensions differ")
)

// Options configures the fusion pipeline.
type Options struct {
	MaxFeatures     int     // ORB keypoint budget per image
	MinMatches      int     // below this a homography estimate is unreliable
	MaxMatches      int     // best-distance matches kept for estimation
	RansacThreshold float64 // RANSAC inlier threshold in pixels
	SharpnessSigma  float64 // Gaussian pooling sigma for the sharpness map
	SharpenRadius   float64 // unsharp mask blur sigma
	SharpenAmount   float64 // unsharp mask strength
	Debug           bool    // print alignment diagnostics
}

// DefaultOptions returns the tuning used for board photo captures.
func DefaultOptions() Options {
	return Options{
		MaxFeatures:     5000,
		MinMatches:      12,
		MaxMatches:      300,
		RansacThreshold: 5.0,
		SharpnessSigma:  1.5,
		SharpenRadius:   3,
		SharpenAmount:   1.2,
	}
}
