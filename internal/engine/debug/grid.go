package debug

import (
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// GridPoints returns every lattice point inside the box whose coordinates
// are multiples of step, bounds included. A non-positive step yields nil.
func GridPoints(size math.Vec3, step int) []math.Vec3 {
	if step <= 0 {
		return nil
	}
	maxX, maxY, maxZ := int(size.X), int(size.Y), int(size.Z)

	var points []math.Vec3
	for x := 0; x <= maxX; x += step {
		for y := 0; y <= maxY; y += step {
			for z := 0; z <= maxZ; z += step {
				points = append(points, math.Vec3{X: float64(x), Y: float64(y), Z: float64(z)})
			}
		}
	}
	return points
}

// GridWireframe builds the selection grid as a wireframe of pinned nodes.
func GridWireframe(size math.Vec3, step int) *wireframe.Wireframe {
	wf := wireframe.New()
	for _, p := range GridPoints(size, step) {
		wf.AddNodes(wireframe.NewNode(p, wireframe.Pinned))
	}
	return wf
}
