package connectivity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ayshrv/visitron/core"
)

// ErrDataIntegrity indicates a malformed connectivity description: a
// one-sided unobstructed flag, a misaligned unobstructed vector or a
// duplicated viewpoint id.
var ErrDataIntegrity = errors.New("connectivity: data integrity violation")

// poseLen is the length of a flattened 4x4 transform.
const poseLen = 16

// Node is one viewpoint record of a connectivity description.
type Node struct {
	ImageID      string    `json:"image_id"`
	Included     bool      `json:"included"`
	Unobstructed []bool    `json:"unobstructed"`
	Pose         []float64 `json:"pose"`
	Height       float64   `json:"height,omitempty"`
}

// Position returns the translation part of the pose.
func (n Node) Position() core.Position {
	return core.Position{X: n.Pose[3], Y: n.Pose[7], Z: n.Pose[11]}
}

// Decode reads a connectivity description.
func Decode(r io.Reader) ([]Node, error) {
	var nodes []Node
	if err := json.NewDecoder(r).Decode(&nodes); err != nil {
		return nil, fmt.Errorf("connectivity: decode: %w", err)
	}

	return nodes, nil
}

// Build constructs the scene graph for nodes.
//
// Steps:
//  1. Check every included record: non-empty unique id, 16-element pose and
//     an unobstructed vector aligned with nodes.
//  2. Add every included record as a vertex at its pose translation.
//  3. For every ordered pair (i, j), i != j, both included and
//     unobstructed[i][j], require unobstructed[j][i] and add the edge once.
//
// Complexity: O(N²) for N records.
func Build(nodes []Node) (*core.Graph, error) {
	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if !n.Included {
			continue
		}
		if n.ImageID == "" {
			return nil, fmt.Errorf("%w: record %d has no image_id", ErrDataIntegrity, i)
		}
		if j, dup := seen[n.ImageID]; dup {
			return nil, fmt.Errorf("%w: image_id %q appears at records %d and %d", ErrDataIntegrity, n.ImageID, j, i)
		}
		seen[n.ImageID] = i
		if len(n.Pose) != poseLen {
			return nil, fmt.Errorf("%w: %q has %d pose values, want %d", ErrDataIntegrity, n.ImageID, len(n.Pose), poseLen)
		}
		if len(n.Unobstructed) != len(nodes) {
			return nil, fmt.Errorf("%w: %q has %d unobstructed flags for %d records",
				ErrDataIntegrity, n.ImageID, len(n.Unobstructed), len(nodes))
		}
	}

	g := core.NewGraph(core.WithCapacity(len(seen)))
	for _, n := range nodes {
		if !n.Included {
			continue
		}
		if err := g.AddVertex(n.ImageID, n.Position()); err != nil {
			return nil, err
		}
	}

	for i, a := range nodes {
		if !a.Included {
			continue
		}
		for j, open := range a.Unobstructed {
			if !open || i == j || !nodes[j].Included {
				continue
			}
			b := nodes[j]
			if !b.Unobstructed[i] {
				return nil, fmt.Errorf("%w: %q sees %q but not the reverse; graph should be undirected",
					ErrDataIntegrity, a.ImageID, b.ImageID)
			}
			if j < i {
				// Already added from the other side.
				continue
			}
			if _, err := g.AddEdge(a.ImageID, b.ImageID, a.Position().Distance(b.Position())); err != nil {
				return nil, fmt.Errorf("connectivity: edge %s-%s: %w", a.ImageID, b.ImageID, err)
			}
		}
	}

	return g, nil
}

// LoadScene reads and builds the scene graph stored at path.
func LoadScene(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("connectivity: %w", err)
	}
	defer f.Close()

	nodes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g, err := Build(nodes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}
