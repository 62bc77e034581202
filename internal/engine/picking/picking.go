// Package picking resolves a 2D pointer position to the 3D point or node
// whose projection lies closest to it.
package picking

import (
	gomath "math"

	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Projector maps world points to screen coordinates. ok is false when the
// point cannot be drawn.
type Projector interface {
	Project(p math.Vec3) (screen math.Vec2, ok bool)
}

// NearestNode returns the node whose projection is closest to target and
// strictly nearer than radius pixels, or nil.
func NearestNode(proj Projector, target math.Vec2, radius float64, items ...*wireframe.Wireframe) *wireframe.Node {
	var best *wireframe.Node
	bestDist := radius
	for _, wf := range items {
		for _, n := range wf.Nodes {
			screen, ok := proj.Project(n.Pos)
			if !ok {
				continue
			}
			if d := screen.Distance(target); d < bestDist {
				best, bestDist = n, d
			}
		}
	}
	return best
}

// NearestPoint returns the candidate whose projection is closest to target.
// Candidates that do not project are skipped; ok is false if none project.
func NearestPoint(proj Projector, target math.Vec2, candidates []math.Vec3) (point math.Vec3, ok bool) {
	bestDist := gomath.Inf(1)
	for _, c := range candidates {
		screen, visible := proj.Project(c)
		if !visible {
			continue
		}
		if d := screen.Distance(target); d < bestDist {
			point, bestDist, ok = c, d, true
		}
	}
	return point, ok
}

// Neighbours returns the 27 integer points within one unit on every axis
// of the floored bearing, the bearing's own cell included.
func Neighbours(bearing math.Vec3) []math.Vec3 {
	base := bearing.Floor()
	out := make([]math.Vec3, 0, 27)
	for dx := -1.0; dx <= 1; dx++ {
		for dy := -1.0; dy <= 1; dy++ {
			for dz := -1.0; dz <= 1; dz++ {
				out = append(out, math.Vec3{X: base.X + dx, Y: base.Y + dy, Z: base.Z + dz})
			}
		}
	}
	return out
}
