// Package debug provides render-only helper geometry and screenshot capture.
package debug

import (
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// BoxEdges lists the 12 edges of a box as index pairs into BoxCorners.
var BoxEdges = [12][2]int{
	// Y = 0 face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Y = max face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Edges along Y
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
}

// BoxCorners returns the 8 corners of the box spanning origin to size.
// Corner i has bit 2 set for max X, bit 1 for max Y and bit 0 for max Z.
func BoxCorners(size math.Vec3) [8]math.Vec3 {
	var out [8]math.Vec3
	i := 0
	for _, x := range [2]float64{0, size.X} {
		for _, y := range [2]float64{0, size.Y} {
			for _, z := range [2]float64{0, size.Z} {
				out[i] = math.Vec3{X: x, Y: y, Z: z}
				i++
			}
		}
	}
	return out
}

// BoxWireframe builds the boundary of the simulation volume: one pinned
// node per corner. With outline set the 12 box edges are added as well.
func BoxWireframe(size math.Vec3, outline bool) *wireframe.Wireframe {
	wf := wireframe.New()
	for _, c := range BoxCorners(size) {
		wf.AddNodes(wireframe.NewNode(c, wireframe.Pinned))
	}
	if outline && len(wf.Nodes) == 8 {
		wf.AddEdges(BoxEdges[:]...)
	}
	return wf
}
