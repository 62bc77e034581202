// Package storage saves and loads wireframes as YAML documents.
//
// Rest lengths are not stored: every stick is rebuilt from the saved
// coordinates, so a loaded shape rests exactly as it was saved.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// ErrBadIndex is returned when an edge or face refers to a node that is not
// in the document.
var ErrBadIndex = errors.New("node index out of range")

// Document is the on-disk form of a wireframe.
type Document struct {
	Nodes []NodeDef `yaml:"nodes"`
	Edges []EdgeDef `yaml:"edges,omitempty"`
	Faces []FaceDef `yaml:"faces,omitempty"`
}

// NodeDef is a node position and its pin flag.
type NodeDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Pinned bool    `yaml:"pinned,omitempty"`
}

// EdgeDef joins two nodes by index.
type EdgeDef struct {
	A     int      `yaml:"a"`
	B     int      `yaml:"b"`
	Color [3]uint8 `yaml:"color,flow"`
}

// FaceDef spans three nodes by index.
type FaceDef struct {
	A     int      `yaml:"a"`
	B     int      `yaml:"b"`
	C     int      `yaml:"c"`
	Color [3]uint8 `yaml:"color,flow"`
}

// FromWireframe converts wf to its document form.
func FromWireframe(wf *wireframe.Wireframe) Document {
	index := make(map[*wireframe.Node]int, len(wf.Nodes))
	doc := Document{Nodes: make([]NodeDef, len(wf.Nodes))}
	for i, n := range wf.Nodes {
		index[n] = i
		doc.Nodes[i] = NodeDef{X: n.Pos.X, Y: n.Pos.Y, Z: n.Pos.Z, Pinned: n.IsPinned()}
	}
	for _, e := range wf.Edges {
		doc.Edges = append(doc.Edges, EdgeDef{
			A:     index[e.First],
			B:     index[e.Second],
			Color: colorDef(e.Color),
		})
	}
	for _, f := range wf.Faces {
		doc.Faces = append(doc.Faces, FaceDef{
			A:     index[f.First],
			B:     index[f.Second],
			C:     index[f.Third],
			Color: colorDef(f.Color),
		})
	}
	return doc
}

// Wireframe rebuilds the wireframe the document describes. Nodes at a
// coordinate already taken collapse onto the earlier node.
func (d Document) Wireframe() (*wireframe.Wireframe, error) {
	wf := wireframe.New()
	nodes := make([]*wireframe.Node, len(d.Nodes))
	for i, def := range d.Nodes {
		w := wireframe.Free
		if def.Pinned {
			w = wireframe.Pinned
		}
		n := wireframe.NewNode(math.Vec3{X: def.X, Y: def.Y, Z: def.Z}, w)
		if wf.AddNodes(n) == 0 {
			n = wf.FindNode(n.Pos)
		}
		nodes[i] = n
	}

	valid := func(idx ...int) bool {
		for _, i := range idx {
			if i < 0 || i >= len(nodes) {
				return false
			}
		}
		return true
	}

	for i, def := range d.Edges {
		if !valid(def.A, def.B) {
			return nil, fmt.Errorf("edge %d (%d, %d): %w", i, def.A, def.B, ErrBadIndex)
		}
		wf.AddStick(wireframe.NewStick(nodes[def.A], nodes[def.B], rgb(def.Color)))
	}
	for i, def := range d.Faces {
		if !valid(def.A, def.B, def.C) {
			return nil, fmt.Errorf("face %d (%d, %d, %d): %w", i, def.A, def.B, def.C, ErrBadIndex)
		}
		color := rgb(def.Color)
		wf.AddFacesAt(&color, [3]math.Vec3{nodes[def.A].Pos, nodes[def.B].Pos, nodes[def.C].Pos})
	}
	return wf, nil
}

// Encode serializes wf to YAML.
func Encode(wf *wireframe.Wireframe) ([]byte, error) {
	data, err := yaml.Marshal(FromWireframe(wf))
	if err != nil {
		return nil, fmt.Errorf("encoding wireframe: %w", err)
	}
	return data, nil
}

// Decode parses a YAML document into a new wireframe.
func Decode(data []byte) (*wireframe.Wireframe, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing wireframe: %w", err)
	}
	return doc.Wireframe()
}

// Save writes wf to path, creating parent directories.
func Save(path string, wf *wireframe.Wireframe) error {
	data, err := Encode(wf)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating save dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wireframe saved",
		zap.String("path", path),
		zap.Int("nodes", len(wf.Nodes)),
		zap.Int("edges", len(wf.Edges)),
		zap.Int("faces", len(wf.Faces)))
	return nil
}

// Load reads a wireframe from path.
func Load(path string) (*wireframe.Wireframe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	wf, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Info("wireframe loaded", zap.String("path", path), zap.Int("nodes", len(wf.Nodes)))
	return wf, nil
}

func colorDef(c wireframe.RGB) [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

func rgb(c [3]uint8) wireframe.RGB {
	return wireframe.RGB{R: c[0], G: c[1], B: c[2]}
}
