// Package raycast walks a ray through the block lattice one cell at a
// time, the standard step-through-the-nearest-boundary traversal. It is
// pure math over a caller-supplied solidity test, so it works against any
// world view and tests without one.
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit describes the first solid block a ray touched.
type Hit struct {
	// Block is the world position of the solid block.
	Block [3]int32
	// Previous is the cell stepped through just before the hit; placing a
	// block puts it here.
	Previous [3]int32
}

// Cast walks from origin along dir up to maxDist and returns the first
// cell for which solid reports true.
func Cast(origin, dir mgl32.Vec3, maxDist float32, solid func(x, y, z int32) bool) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	cell := [3]int32{
		int32(math.Floor(float64(origin.X()))),
		int32(math.Floor(float64(origin.Y()))),
		int32(math.Floor(float64(origin.Z()))),
	}
	prev := cell

	var step [3]int32
	var tMax, tDelta [3]float32
	for a := 0; a < 3; a++ {
		d := dir[a]
		switch {
		case d > 0:
			step[a] = 1
			tDelta[a] = 1 / d
			tMax[a] = (float32(cell[a]+1) - origin[a]) / d
		case d < 0:
			step[a] = -1
			tDelta[a] = -1 / d
			tMax[a] = (origin[a] - float32(cell[a])) / -d
		default:
			step[a] = 0
			tDelta[a] = float32(math.Inf(1))
			tMax[a] = float32(math.Inf(1))
		}
	}

	t := float32(0)
	for t <= maxDist {
		if solid(cell[0], cell[1], cell[2]) {
			return Hit{Block: cell, Previous: prev}, true
		}
		prev = cell

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
		cell[axis] += step[axis]
	}
	return Hit{}, false
}
