// Package mesh turns chunk contents into GPU-ready vertex and index
// buffers. Building runs on worker goroutines against an immutable
// Snapshot, so it never touches live chunk storage.
package mesh

import (
	"govoxel/internal/block"
	"govoxel/internal/coord"
)

// padded is the snapshot edge length: the chunk plus a one-block shell of
// neighbor data on every side. The shell feeds border face culling and the
// diagonal samples ambient occlusion needs.
const padded = coord.ChunkSize + 2

// Snapshot is a frozen copy of one chunk and its one-block neighborhood.
// Cells whose chunk was not loaded at capture time read as air.
type Snapshot struct {
	pos    coord.ChunkPos
	blocks [padded * padded * padded]block.ID
}

// Capture copies the neighborhood of pos through the given world-space
// reader. Call it on the thread that owns chunk storage; the returned
// snapshot is safe to hand to any goroutine.
func Capture(pos coord.ChunkPos, at func(wx, wy, wz int32) block.ID) *Snapshot {
	s := &Snapshot{pos: pos}
	ox, oy, oz := pos.Origin()
	i := 0
	for y := int32(-1); y <= coord.ChunkSize; y++ {
		for z := int32(-1); z <= coord.ChunkSize; z++ {
			for x := int32(-1); x <= coord.ChunkSize; x++ {
				s.blocks[i] = at(ox+x, oy+y, oz+z)
				i++
			}
		}
	}
	return s
}

// Pos returns the chunk position the snapshot was captured for.
func (s *Snapshot) Pos() coord.ChunkPos {
	return s.pos
}

// at reads a cell in chunk-local coordinates, each component in
// [-1, ChunkSize].
func (s *Snapshot) at(x, y, z int32) block.ID {
	return s.blocks[((y+1)*padded+(z+1))*padded+(x+1)]
}

// opaque reports whether the cell hides neighbor faces and occludes light.
func (s *Snapshot) opaque(x, y, z int32) bool {
	return s.at(x, y, z).Opaque()
}
