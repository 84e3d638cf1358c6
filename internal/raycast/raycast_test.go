package raycast

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func wallAtX(wall int32) func(x, y, z int32) bool {
	return func(x, y, z int32) bool { return x == wall }
}

func TestHitsWallStraightAhead(t *testing.T) {
	hit, ok := Cast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 10, wallAtX(5))
	if !ok {
		t.Fatal("ray missed a wall in range")
	}
	if hit.Block != [3]int32{5, 0, 0} {
		t.Fatalf("hit %v, want {5 0 0}", hit.Block)
	}
	if hit.Previous != [3]int32{4, 0, 0} {
		t.Fatalf("previous %v, want {4 0 0}", hit.Previous)
	}
}

func TestRespectsMaxDistance(t *testing.T) {
	if _, ok := Cast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, 3, wallAtX(5)); ok {
		t.Fatal("ray hit a wall beyond its reach")
	}
}

func TestNegativeDirection(t *testing.T) {
	hit, ok := Cast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0}, 10, wallAtX(-4))
	if !ok {
		t.Fatal("ray missed wall in negative direction")
	}
	if hit.Block != [3]int32{-4, 0, 0} {
		t.Fatalf("hit %v, want {-4 0 0}", hit.Block)
	}
	if hit.Previous != [3]int32{-3, 0, 0} {
		t.Fatalf("previous %v, want {-3 0 0}", hit.Previous)
	}
}

func TestDiagonalRayVisitsAdjacentCells(t *testing.T) {
	var visited [][3]int32
	Cast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 1}, 6, func(x, y, z int32) bool {
		visited = append(visited, [3]int32{x, y, z})
		return false
	})
	for i := 1; i < len(visited); i++ {
		d := int32(0)
		for a := 0; a < 3; a++ {
			v := visited[i][a] - visited[i-1][a]
			if v < 0 {
				v = -v
			}
			d += v
		}
		if d != 1 {
			t.Fatalf("step %d jumped %d cells: %v -> %v", i, d, visited[i-1], visited[i])
		}
	}
}

func TestFloorHitFromAbove(t *testing.T) {
	floor := func(x, y, z int32) bool { return y < 0 }
	hit, ok := Cast(mgl32.Vec3{0.5, 3.5, 0.5}, mgl32.Vec3{0, -1, 0}, 10, floor)
	if !ok {
		t.Fatal("downward ray missed the floor")
	}
	if hit.Block != [3]int32{0, -1, 0} {
		t.Fatalf("hit %v, want {0 -1 0}", hit.Block)
	}
	if hit.Previous != [3]int32{0, 0, 0} {
		t.Fatalf("previous %v, want {0 0 0}", hit.Previous)
	}
}

func TestZeroDirectionMisses(t *testing.T) {
	if _, ok := Cast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{}, 10, wallAtX(0)); ok {
		t.Fatal("zero direction must not hit")
	}
}
