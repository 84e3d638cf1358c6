package mesh

import (
	"govoxel/internal/block"
	"govoxel/internal/coord"
)

// atlasTiles is the texture atlas grid dimension (tiles per row/column).
const atlasTiles = 16

// uvInset pulls texture coordinates slightly inside each tile so linear
// mipmap sampling does not bleed across tile borders.
const uvInset = float32(0.001)

// aoCurve maps the number of occluding neighbors at a vertex corner to a
// brightness factor. Index 3 is also used for the fully-enclosed corner
// case (both sides occupied). Strictly decreasing, so more occluders can
// never brighten a vertex.
var aoCurve = [4]float32{1.0, 0.85, 0.65, 0.45}

type faceDef struct {
	face    block.Face
	normal  [3]int32
	corners [4][3]int32
}

// Corner windings are counter-clockwise seen from outside the block, so
// back-face culling keeps outward faces.
var faces = [6]faceDef{
	{block.FaceEast, [3]int32{1, 0, 0}, [4][3]int32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{block.FaceWest, [3]int32{-1, 0, 0}, [4][3]int32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	{block.FaceTop, [3]int32{0, 1, 0}, [4][3]int32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{block.FaceBottom, [3]int32{0, -1, 0}, [4][3]int32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{block.FaceSouth, [3]int32{0, 0, 1}, [4][3]int32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
	{block.FaceNorth, [3]int32{0, 0, -1}, [4][3]int32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

// Build walks every block in the snapshot's chunk and emits one quad per
// face that borders a non-hiding neighbor. Neighbor data beyond the chunk
// comes from the snapshot shell; cells that were unloaded at capture read
// as air, so border faces err toward being drawn.
func Build(s *Snapshot) *Mesh {
	m := &Mesh{}
	for y := int32(0); y < coord.ChunkSize; y++ {
		for z := int32(0); z < coord.ChunkSize; z++ {
			for x := int32(0); x < coord.ChunkSize; x++ {
				id := s.at(x, y, z)
				if id == block.Air {
					continue
				}
				for f := range faces {
					fd := &faces[f]
					nx := x + fd.normal[0]
					ny := y + fd.normal[1]
					nz := z + fd.normal[2]
					if hides(id, s.at(nx, ny, nz)) {
						continue
					}
					emitFace(m, s, id, fd, x, y, z)
				}
			}
		}
	}
	return m
}

// hides reports whether a neighbor suppresses the face pointing at it.
// Opaque neighbors hide everything; transparent blocks hide only their own
// kind, so water bodies have no interior faces but still get a surface.
func hides(id, neighbor block.ID) bool {
	if neighbor.Opaque() {
		return true
	}
	return neighbor == id
}

func emitFace(m *Mesh, s *Snapshot, id block.ID, fd *faceDef, x, y, z int32) {
	base := uint32(len(m.Vertices) / VertexStride)
	tile := id.TileFor(fd.face)
	u0, v0, u1, v1 := tileUV(tile)

	var ao [4]float32
	for i, c := range fd.corners {
		ao[i] = cornerAO(s, fd.normal, [3]int32{x, y, z}, c)
		u, v := cornerUV(fd.normal, c)
		m.Vertices = append(m.Vertices,
			float32(x+c[0]), float32(y+c[1]), float32(z+c[2]),
			u0+(u1-u0)*u, v0+(v1-v0)*v,
			float32(fd.normal[0]), float32(fd.normal[1]), float32(fd.normal[2]),
			ao[i],
		)
	}

	// Split the quad along the brighter diagonal so occlusion gradients
	// interpolate without the classic seam artifact.
	if ao[0]+ao[2] >= ao[1]+ao[3] {
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	} else {
		m.Indices = append(m.Indices, base+1, base+2, base+3, base+1, base+3, base)
	}
}

// cornerAO samples the three cells diagonally adjacent to a vertex corner
// on the face's outside plane. Unloaded cells read as air and do not
// occlude.
func cornerAO(s *Snapshot, normal [3]int32, pos, corner [3]int32) float32 {
	axis := 0
	if normal[1] != 0 {
		axis = 1
	} else if normal[2] != 0 {
		axis = 2
	}
	b, c := otherAxes(axis)

	base := [3]int32{pos[0] + normal[0], pos[1] + normal[1], pos[2] + normal[2]}
	sb := corner[b]*2 - 1
	sc := corner[c]*2 - 1

	side1 := base
	side1[b] += sb
	side2 := base
	side2[c] += sc
	diag := base
	diag[b] += sb
	diag[c] += sc

	s1 := s.opaque(side1[0], side1[1], side1[2])
	s2 := s.opaque(side2[0], side2[1], side2[2])
	if s1 && s2 {
		return aoCurve[3]
	}
	n := 0
	if s1 {
		n++
	}
	if s2 {
		n++
	}
	if s.opaque(diag[0], diag[1], diag[2]) {
		n++
	}
	return aoCurve[n]
}

func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 2, 1
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// cornerUV projects a corner onto the face plane. The V axis is flipped
// where needed so tiles read upright on vertical faces.
func cornerUV(normal [3]int32, corner [3]int32) (float32, float32) {
	switch {
	case normal[0] != 0:
		return float32(corner[2]), float32(1 - corner[1])
	case normal[1] != 0:
		return float32(corner[0]), float32(corner[2])
	default:
		return float32(corner[0]), float32(1 - corner[1])
	}
}

func tileUV(t block.Tile) (u0, v0, u1, v1 float32) {
	const span = float32(1) / atlasTiles
	u0 = float32(t.Col)*span + uvInset
	v0 = float32(t.Row)*span + uvInset
	u1 = float32(t.Col+1)*span - uvInset
	v1 = float32(t.Row+1)*span - uvInset
	return
}
