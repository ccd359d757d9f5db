package fusion

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestSharpnessMapRange(t *testing.T) {
	img := patternMat(200, 150)
	defer img.Close()

	m := SharpnessMap(img, 1.5)
	defer m.Close()

	if m.Rows() != 150 || m.Cols() != 200 {
		t.Fatalf("expected 200x150 map, got %dx%d", m.Cols(), m.Rows())
	}
	minVal, maxVal, _, _ := gocv.MinMaxLoc(m)
	if minVal <= 0 {
		t.Fatalf("sharpness must be strictly positive, min=%g", minVal)
	}
	if float64(maxVal) > 1+1e-3 {
		t.Fatalf("sharpness must stay near [0,1], max=%g", maxVal)
	}
}

func TestSharpnessMapUniformInput(t *testing.T) {
	img := uniformMat(120, 80, 90)
	defer img.Close()

	m := SharpnessMap(img, 1.5)
	defer m.Close()

	// no edge energy anywhere, so the whole map sits at the epsilon floor
	minVal, maxVal, _, _ := gocv.MinMaxLoc(m)
	if minVal <= 0 {
		t.Fatalf("uniform map must still be positive, min=%g", minVal)
	}
	if maxVal > 1e-3 {
		t.Fatalf("uniform image should carry no sharpness, max=%g", maxVal)
	}
}
