// Package imgio handles reading and writing board imagery and the
// conversions between gocv.Mat and Go's image.Image.
package imgio

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnreadableImage marks a path that is missing, unreadable, or not a
// decodable image format.
var ErrUnreadableImage = errors.New("unreadable image")

// Load reads a color image from disk as an 8-bit BGR Mat. OpenCV's decoder
// is tried first; formats it was built without fall through to Go's decoders.
func Load(path string) (gocv.Mat, error) {
	m := gocv.IMRead(path, gocv.IMReadColor)
	if !m.Empty() {
		return m, nil
	}
	m.Close()

	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %s: %v", ErrUnreadableImage, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %s: %v", ErrUnreadableImage, path, err)
	}
	return ToMat(img), nil
}

// Save writes a Mat to disk, creating the destination directory if needed.
// The format is chosen from the file extension.
func Save(path string, m gocv.Mat) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if ok := gocv.IMWrite(path, m); !ok {
		return fmt.Errorf("write image %s: encoder rejected the file", path)
	}
	return nil
}

// stripeRows runs fn over [0, h) split into per-CPU row bands.
func stripeRows(h int, fn func(y0, y1 int)) {
	workers := runtime.NumCPU()
	band := (h + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < h; start += band {
		end := min(start+band, h)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(start, end)
	}
	wg.Wait()
}

// ToMat converts a Go image.Image to an 8-bit BGR Mat.
func ToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	m := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	stripeRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				// OpenCV channel order is BGR
				m.SetUCharAt(y, x*3+0, uint8(b>>8))
				m.SetUCharAt(y, x*3+1, uint8(g>>8))
				m.SetUCharAt(y, x*3+2, uint8(r>>8))
			}
		}
	})
	return m
}

// ToImage converts an 8-bit BGR Mat to a Go image.
func ToImage(m gocv.Mat) image.Image {
	h := m.Rows()
	w := m.Cols()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stride := img.Stride
	stripeRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rowOffset := y * stride
			for x := 0; x < w; x++ {
				pixOffset := rowOffset + x*4
				img.Pix[pixOffset+0] = m.GetUCharAt(y, x*3+2)
				img.Pix[pixOffset+1] = m.GetUCharAt(y, x*3+1)
				img.Pix[pixOffset+2] = m.GetUCharAt(y, x*3+0)
				img.Pix[pixOffset+3] = 255
			}
		}
	})
	return img
}
