package imgio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// matrixFile is the on-disk form of a dense matrix.
type matrixFile struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// SaveHomography writes a homography matrix as JSON so a run can be
// reproduced or inspected later.
func SaveHomography(path string, h *mat.Dense) error {
	rows, cols := h.Dims()
	out := matrixFile{Rows: rows, Cols: cols, Data: make([]float64, 0, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.Data = append(out.Data, h.At(r, c))
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode homography: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write homography: %w", err)
	}
	return nil
}

// LoadHomography reads a matrix written by SaveHomography.
func LoadHomography(path string) (*mat.Dense, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read homography: %w", err)
	}
	var in matrixFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse homography: %w", err)
	}
	if in.Rows <= 0 || in.Cols <= 0 || len(in.Data) != in.Rows*in.Cols {
		return nil, fmt.Errorf("homography %s: %dx%d does not match %d values", path, in.Rows, in.Cols, len(in.Data))
	}
	return mat.NewDense(in.Rows, in.Cols, in.Data), nil
}
