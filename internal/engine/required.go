package engine

import (
	"github.com/willf/bitset"

	"govoxel/internal/coord"
)

// RequiredColumns returns every chunk column within the Euclidean load
// radius of center, nearest first. The set is grown by flood fill from the
// center so the order follows ring distance, which is also the order work
// gets scheduled in.
func RequiredColumns(center coord.ColumnPos, radius int32) []coord.ColumnPos {
	side := 2*radius + 1
	visited := bitset.New(uint(side * side))
	idx := func(dx, dz int32) uint {
		return uint((dz+radius)*side + (dx + radius))
	}
	rsq := int64(radius) * int64(radius)

	type cell struct{ dx, dz int32 }
	queue := []cell{{0, 0}}
	visited.Set(idx(0, 0))
	out := make([]coord.ColumnPos, 0, side*side)

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		out = append(out, coord.ColumnPos{X: center.X + c.dx, Z: center.Z + c.dz})

		for _, d := range [4]cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := cell{c.dx + d.dx, c.dz + d.dz}
			if n.dx < -radius || n.dx > radius || n.dz < -radius || n.dz > radius {
				continue
			}
			if int64(n.dx)*int64(n.dx)+int64(n.dz)*int64(n.dz) > rsq {
				continue
			}
			if i := idx(n.dx, n.dz); !visited.Test(i) {
				visited.Set(i)
				queue = append(queue, n)
			}
		}
	}
	return out
}
