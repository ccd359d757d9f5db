package fusion

import (
	"errors"
	"image"
	"math"
	"testing"

	"board-prep/pkg/geometry"
)

func TestAlignFeaturelessInputs(t *testing.T) {
	a := uniformMat(320, 240, 128)
	defer a.Close()
	b := uniformMat(320, 240, 128)
	defer b.Close()

	_, err := Align(a, b, DefaultOptions())
	if err == nil {
		t.Fatalf("expected alignment of blank images to fail")
	}
	if !errors.Is(err, ErrNoFeatures) && !errors.Is(err, ErrInsufficientMatches) {
		t.Fatalf("expected a feature/match error, got %v", err)
	}
}

func TestAlignRecoversTranslation(t *testing.T) {
	const dx, dy = 12, 8

	scene := patternMat(460, 360)
	defer scene.Close()
	primary := cropClone(scene, image.Rect(0, 0, 400, 300))
	defer primary.Close()
	secondary := cropClone(scene, image.Rect(dx, dy, dx+400, dy+300))
	defer secondary.Close()

	result, err := Align(primary, secondary, DefaultOptions())
	if err != nil {
		t.Fatalf("align failed: %v", err)
	}
	defer result.Warped.Close()

	if result.Warped.Rows() != primary.Rows() || result.Warped.Cols() != primary.Cols() {
		t.Fatalf("warped canvas must match primary: got %dx%d",
			result.Warped.Cols(), result.Warped.Rows())
	}
	if result.Inliers < DefaultOptions().MinMatches {
		t.Fatalf("expected a solid inlier set, got %d", result.Inliers)
	}

	// secondary pixel (x,y) shows scene content (x+dx, y+dy), so the
	// homography should be close to a pure (dx, dy) translation
	for _, p := range []geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 150}, {X: 380, Y: 280}} {
		got := Project(result.Homography, p)
		want := geometry.Point2D{X: p.X + dx, Y: p.Y + dy}
		if got.Distance(want) > 1.5 {
			t.Fatalf("point %+v projected to %+v, want near %+v", p, got, want)
		}
	}
	if result.MeanError > DefaultOptions().RansacThreshold {
		t.Fatalf("mean inlier error %.2f exceeds the RANSAC threshold", result.MeanError)
	}
}

func TestFuseSharpensBlurrySecondary(t *testing.T) {
	const dx, dy = 10, 6

	scene := patternMat(440, 340)
	defer scene.Close()
	primary := cropClone(scene, image.Rect(0, 0, 400, 300))
	defer primary.Close()
	shifted := cropClone(scene, image.Rect(dx, dy, dx+400, dy+300))
	defer shifted.Close()
	secondary := blurMat(shifted, 1.0)
	defer secondary.Close()

	result, err := Fuse(primary, secondary, DefaultOptions())
	if err != nil {
		t.Fatalf("fuse failed: %v", err)
	}
	defer result.Close()

	if result.Fused.Rows() != primary.Rows() || result.Fused.Cols() != primary.Cols() {
		t.Fatalf("composite must match the primary canvas")
	}
	if result.Overlay.Rows() != primary.Rows() || result.Overlay.Cols() != primary.Cols() {
		t.Fatalf("debug overlay must match the primary canvas")
	}

	fused := laplacianEnergy(result.Fused)
	blurry := laplacianEnergy(secondary)
	sharp := laplacianEnergy(primary)
	if fused <= blurry {
		t.Fatalf("fused energy %.4g should exceed the blurred input's %.4g", fused, blurry)
	}
	if fused < 0.7*sharp {
		t.Fatalf("fused energy %.4g fell too far below the sharp input's %.4g", fused, sharp)
	}

	// translation-only alignment: no perspective terms worth speaking of
	h := result.Homography
	if math.Abs(h.At(2, 0)) > 1e-3 || math.Abs(h.At(2, 1)) > 1e-3 {
		t.Fatalf("unexpected perspective terms in homography: %v %v", h.At(2, 0), h.At(2, 1))
	}
}
