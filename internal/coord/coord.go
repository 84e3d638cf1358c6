// Package coord maps between world-space block coordinates and chunk
// coordinates. Chunks are cubes of ChunkSize blocks; chunk coordinates are
// obtained by floor division so the mapping stays consistent across the
// negative axes.
package coord

// ChunkSize is the edge length of a chunk in blocks.
const ChunkSize = 16

// ChunkVolume is the number of blocks in one chunk.
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// ChunkPos identifies a chunk in chunk-space.
type ChunkPos struct {
	X, Y, Z int32
}

// ColumnPos identifies a vertical stack of chunks in the XZ plane. Loading
// and eviction operate on whole columns.
type ColumnPos struct {
	X, Z int32
}

// Column returns the column this chunk belongs to.
func (p ChunkPos) Column() ColumnPos {
	return ColumnPos{p.X, p.Z}
}

// DistSq returns the squared Euclidean distance between two columns,
// measured in chunks.
func (c ColumnPos) DistSq(o ColumnPos) int64 {
	dx := int64(c.X - o.X)
	dz := int64(c.Z - o.Z)
	return dx*dx + dz*dz
}

// Local is a block position inside a chunk, each component in [0, ChunkSize).
type Local struct {
	X, Y, Z uint8
}

// Index returns the flat array offset of a local position.
func (l Local) Index() int {
	return (int(l.Y)*ChunkSize+int(l.Z))*ChunkSize + int(l.X)
}

func floorDiv(a int32) int32 {
	if a < 0 {
		return -((-a - 1) / ChunkSize) - 1
	}
	return a / ChunkSize
}

func floorMod(a int32) uint8 {
	m := a % ChunkSize
	if m < 0 {
		m += ChunkSize
	}
	return uint8(m)
}

// Split maps a world block position to its chunk and the local offset
// within that chunk.
func Split(wx, wy, wz int32) (ChunkPos, Local) {
	cp := ChunkPos{floorDiv(wx), floorDiv(wy), floorDiv(wz)}
	return cp, Local{floorMod(wx), floorMod(wy), floorMod(wz)}
}

// Join is the inverse of Split.
func Join(cp ChunkPos, l Local) (wx, wy, wz int32) {
	return cp.X*ChunkSize + int32(l.X),
		cp.Y*ChunkSize + int32(l.Y),
		cp.Z*ChunkSize + int32(l.Z)
}

// ChunkAt returns the chunk containing the given world block position.
func ChunkAt(wx, wy, wz int32) ChunkPos {
	return ChunkPos{floorDiv(wx), floorDiv(wy), floorDiv(wz)}
}

// ColumnAt returns the column containing the given world XZ position.
func ColumnAt(wx, wz int32) ColumnPos {
	return ColumnPos{floorDiv(wx), floorDiv(wz)}
}

// Origin returns the world position of the chunk's (0,0,0) corner.
func (p ChunkPos) Origin() (wx, wy, wz int32) {
	return p.X * ChunkSize, p.Y * ChunkSize, p.Z * ChunkSize
}
