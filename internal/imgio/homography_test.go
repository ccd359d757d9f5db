package imgio

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestHomographyRoundTrip(t *testing.T) {
	h := mat.NewDense(3, 3, []float64{
		0.98, 0.02, 12.5,
		-0.01, 1.01, -7.25,
		1e-5, -2e-5, 1,
	})

	path := filepath.Join(t.TempDir(), "debug", "homography.json")
	if err := SaveHomography(path, h); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadHomography(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !mat.Equal(h, loaded) {
		t.Fatalf("round trip changed the matrix:\nwant %v\ngot  %v",
			mat.Formatted(h), mat.Formatted(loaded))
	}
}

func TestLoadHomographyRejectsShapeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "homography.json")
	if err := os.WriteFile(path, []byte(`{"rows":3,"cols":3,"data":[1,2,3]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHomography(path); err == nil {
		t.Fatalf("expected a shape mismatch error")
	}
}
