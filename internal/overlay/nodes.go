// Package overlay projects canonical board-graph node coordinates onto a
// board photo as markers and a rescaled coordinate file.
package overlay

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"board-prep/pkg/geometry"
)

// Node is one entry of the board graph interchange format: numeric id, a
// position, and an edge list. Edges pass through as raw JSON so the format
// survives a round trip byte-compatible.
type Node struct {
	ID       int              `json:"id"`
	Position geometry.Point2D `json:"position"`
	Edges    json.RawMessage  `json:"edges"`
}

// LoadNodes reads a node array from disk, sorted by id.
func LoadNodes(path string) ([]Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nodes: %w", err)
	}
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parse nodes %s: %w", path, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no nodes in %s", path)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes, nil
}

// SaveNodes writes the node array back to disk with coordinates rounded to
// two decimals, creating the destination directory if needed.
func SaveNodes(path string, nodes []Node) error {
	rounded := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Position.X = math.Round(n.Position.X*100) / 100
		n.Position.Y = math.Round(n.Position.Y*100) / 100
		rounded[i] = n
	}

	data, err := json.MarshalIndent(rounded, "", "  ")
	if err != nil {
		return fmt.Errorf("encode nodes: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write nodes: %w", err)
	}
	return nil
}

// Transform returns a copy of nodes with every position mapped through t.
func Transform(nodes []Node, t geometry.AffineTransform) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Position = t.Apply(n.Position)
		out[i] = n
	}
	return out
}
