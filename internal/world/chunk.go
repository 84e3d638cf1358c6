package world

import (
	"govoxel/internal/block"
	"govoxel/internal/coord"
)

// Chunk is a dense cube of coord.ChunkSize³ blocks. Chunks are created by
// the generator on a worker and handed to the grid; after that only the
// main thread touches them.
type Chunk struct {
	Pos    coord.ChunkPos
	blocks [coord.ChunkVolume]block.ID
}

// NewChunk returns an all-air chunk at pos.
func NewChunk(pos coord.ChunkPos) *Chunk {
	return &Chunk{Pos: pos}
}

// Block returns the block at a local position. Out-of-range locals cannot
// be represented by coord.Local, so no bounds check is needed.
func (c *Chunk) Block(l coord.Local) block.ID {
	return c.blocks[l.Index()]
}

// SetBlock stores id at a local position.
func (c *Chunk) SetBlock(l coord.Local, id block.ID) {
	c.blocks[l.Index()] = id
}

// Empty reports whether the chunk contains only air.
func (c *Chunk) Empty() bool {
	for _, b := range c.blocks {
		if b != block.Air {
			return false
		}
	}
	return true
}
