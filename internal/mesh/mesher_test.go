package mesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"govoxel/internal/block"
	"govoxel/internal/coord"
)

func snapFrom(blocks map[[3]int32]block.ID) *Snapshot {
	return Capture(coord.ChunkPos{}, func(wx, wy, wz int32) block.ID {
		return blocks[[3]int32{wx, wy, wz}]
	})
}

func TestSingleBlockEmitsSixFaces(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{5, 5, 5}: block.Stone,
	}))
	if got := m.FaceCount(); got != 6 {
		t.Fatalf("single block: got %d faces, want 6", got)
	}
	if got := len(m.Vertices); got != 6*VertsPerFace*VertexStride {
		t.Fatalf("vertex floats: got %d, want %d", got, 6*VertsPerFace*VertexStride)
	}
	if got := len(m.Indices); got != 6*IndicesPerFace {
		t.Fatalf("indices: got %d, want %d", got, 6*IndicesPerFace)
	}
}

func TestAdjacentBlocksCullSharedFaces(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{5, 5, 5}: block.Stone,
		{6, 5, 5}: block.Stone,
	}))
	if got := m.FaceCount(); got != 10 {
		t.Fatalf("two touching blocks: got %d faces, want 10", got)
	}
}

func TestBuriedBlocksEmitNothing(t *testing.T) {
	blocks := map[[3]int32]block.ID{}
	for x := int32(4); x <= 6; x++ {
		for y := int32(4); y <= 6; y++ {
			for z := int32(4); z <= 6; z++ {
				blocks[[3]int32{x, y, z}] = block.Stone
			}
		}
	}
	m := Build(snapFrom(blocks))
	// Only the outer surface of the 3x3x3 cube survives.
	if got := m.FaceCount(); got != 54 {
		t.Fatalf("3x3x3 cube: got %d faces, want 54", got)
	}
}

func TestNeighborChunkCullsBorderFace(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{coord.ChunkSize - 1, 5, 5}: block.Stone,
		{coord.ChunkSize, 5, 5}:     block.Stone, // lives in the +X neighbor
	}))
	if got := m.FaceCount(); got != 5 {
		t.Fatalf("border block with neighbor: got %d faces, want 5", got)
	}
}

func TestUnloadedNeighborTreatedAsAir(t *testing.T) {
	// The reader sees nothing outside this chunk, as if no neighbor were
	// loaded. The border face must still be emitted.
	s := Capture(coord.ChunkPos{}, func(wx, wy, wz int32) block.ID {
		if wx == 0 && wy == 5 && wz == 5 {
			return block.Stone
		}
		return block.Air
	})
	if got := Build(s).FaceCount(); got != 6 {
		t.Fatalf("block at unloaded -X border: got %d faces, want 6", got)
	}
}

func TestTransparentNeighborsKeepFaces(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{5, 5, 5}: block.Stone,
		{5, 6, 5}: block.Water,
	}))
	// Stone keeps all six faces; water hides only its bottom face.
	if got := m.FaceCount(); got != 11 {
		t.Fatalf("stone under water: got %d faces, want 11", got)
	}
}

func TestWaterHidesInternalFaces(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{5, 5, 5}: block.Water,
		{6, 5, 5}: block.Water,
	}))
	if got := m.FaceCount(); got != 10 {
		t.Fatalf("water body: got %d internal faces, want 10", got)
	}
}

func aoValues(m *Mesh) []float32 {
	out := make([]float32, 0, len(m.Vertices)/VertexStride)
	for i := VertexStride - 1; i < len(m.Vertices); i += VertexStride {
		out = append(out, m.Vertices[i])
	}
	return out
}

func TestIsolatedBlockIsFullyLit(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{5, 5, 5}: block.Stone,
	}))
	for i, ao := range aoValues(m) {
		if ao != 1.0 {
			t.Fatalf("vertex %d: ao %v, want 1.0", i, ao)
		}
	}
}

func TestOccluderDarkensCorner(t *testing.T) {
	base := map[[3]int32]block.ID{{5, 5, 5}: block.Stone}
	m1 := Build(snapFrom(base))

	base[[3]int32{6, 6, 6}] = block.Stone
	m2 := Build(snapFrom(base))

	min1, min2 := float32(1), float32(1)
	for _, ao := range aoValues(m1) {
		if ao < min1 {
			min1 = ao
		}
	}
	for _, ao := range aoValues(m2) {
		if ao < min2 {
			min2 = ao
		}
	}
	if min1 != 1.0 {
		t.Fatalf("unoccluded block has darkened vertex: %v", min1)
	}
	if min2 >= min1 {
		t.Fatalf("adding an occluder did not darken any vertex: min %v", min2)
	}
	if min2 != aoCurve[1] {
		t.Fatalf("single diagonal occluder: got min ao %v, want %v", min2, aoCurve[1])
	}
}

func TestTransparentBlocksDoNotOcclude(t *testing.T) {
	m := Build(snapFrom(map[[3]int32]block.ID{
		{5, 5, 5}: block.Stone,
		{6, 6, 6}: block.Water,
	}))
	for i, ao := range aoValues(m) {
		if ao != 1.0 {
			t.Fatalf("vertex %d darkened by transparent neighbor: ao %v", i, ao)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	blocks := map[[3]int32]block.ID{}
	for x := int32(0); x < coord.ChunkSize; x++ {
		for z := int32(0); z < coord.ChunkSize; z++ {
			blocks[[3]int32{x, 3, z}] = block.Grass
			if (x+z)%5 == 0 {
				blocks[[3]int32{x, 4, z}] = block.Stone
			}
		}
	}
	s := snapFrom(blocks)
	m1 := Build(s)
	m2 := Build(s)
	if diff := cmp.Diff(m1, m2); diff != "" {
		t.Fatalf("rebuild from same snapshot differs:\n%s", diff)
	}
}

func BenchmarkBuildFullSurface(b *testing.B) {
	blocks := map[[3]int32]block.ID{}
	for x := int32(0); x < coord.ChunkSize; x++ {
		for z := int32(0); z < coord.ChunkSize; z++ {
			for y := int32(0); y < 8; y++ {
				blocks[[3]int32{x, y, z}] = block.Stone
			}
		}
	}
	s := snapFrom(blocks)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Build(s)
	}
}
