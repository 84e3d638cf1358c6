package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"govoxel/internal/coord"
)

func TestBackToFrontOrdersByDescendingDistance(t *testing.T) {
	eye := mgl32.Vec3{8, 8, 8}
	positions := []coord.ChunkPos{
		{X: 0, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
		{X: -2, Y: 0, Z: 0},
		{X: 0, Y: 3, Z: 1},
		{X: 10, Y: 0, Z: 10},
	}
	backToFront(positions, eye)

	for i := 1; i < len(positions); i++ {
		prev := chunkDistSq(positions[i-1], eye)
		cur := chunkDistSq(positions[i], eye)
		if cur > prev {
			t.Fatalf("position %d (%v, distSq %.0f) drawn after a nearer chunk (distSq %.0f)",
				i, positions[i], cur, prev)
		}
	}
	if positions[len(positions)-1] != (coord.ChunkPos{X: 0, Y: 0, Z: 0}) {
		t.Fatalf("nearest chunk drawn %v, want the eye's own chunk last", positions[len(positions)-1])
	}
}

func TestChunkDistSqUsesChunkCenter(t *testing.T) {
	pos := coord.ChunkPos{X: 0, Y: 0, Z: 0}
	if got := chunkDistSq(pos, mgl32.Vec3{8, 8, 8}); got != 0 {
		t.Fatalf("eye at chunk center: distSq %.2f, want 0", got)
	}
	if got := chunkDistSq(pos, mgl32.Vec3{8, 8, 24}); got != 256 {
		t.Fatalf("one chunk away: distSq %.2f, want 256", got)
	}
}
