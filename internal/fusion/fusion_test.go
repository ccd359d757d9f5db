package fusion

import (
	"image"
	"math/rand"

	"gocv.io/x/gocv"
)

// patternMat builds a feature-rich test image: seeded random color blocks,
// enough corner structure for ORB to latch onto.
func patternMat(width, height int) gocv.Mat {
	rng := rand.New(rand.NewSource(42))
	m := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	const block = 4
	for by := 0; by < height; by += block {
		for bx := 0; bx < width; bx += block {
			b := uint8(rng.Intn(256))
			g := uint8(rng.Intn(256))
			r := uint8(rng.Intn(256))
			for y := by; y < min(by+block, height); y++ {
				for x := bx; x < min(bx+block, width); x++ {
					m.SetUCharAt(y, x*3+0, b)
					m.SetUCharAt(y, x*3+1, g)
					m.SetUCharAt(y, x*3+2, r)
				}
			}
		}
	}
	return m
}

func uniformMat(width, height int, v uint8) gocv.Mat {
	f := float64(v)
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(f, f, f, 0),
		height, width, gocv.MatTypeCV8UC3)
}

// cropClone copies a sub-rectangle into its own Mat.
func cropClone(m gocv.Mat, r image.Rectangle) gocv.Mat {
	region := m.Region(r)
	defer region.Close()
	return region.Clone()
}

func blurMat(m gocv.Mat, sigma float64) gocv.Mat {
	out := gocv.NewMat()
	gocv.GaussianBlur(m, &out, image.Point{}, sigma, sigma, gocv.BorderDefault)
	return out
}

// laplacianEnergy is an absolute focus measure, unlike SharpnessMap which is
// normalized per image. Higher means sharper.
func laplacianEnergy(img gocv.Mat) float64 {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	grayF := gocv.NewMat()
	defer grayF.Close()
	gray.ConvertToWithParams(&grayF, gocv.MatTypeCV32F, 1.0/255.0, 0)

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(grayF, &lap, gocv.MatTypeCV32F, 1, 1, 0, gocv.BorderDefault)

	sq := gocv.NewMat()
	defer sq.Close()
	gocv.Multiply(lap, lap, &sq)

	return sq.Mean().Val1
}
