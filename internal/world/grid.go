// Package world holds the sparse voxel grid: a map of loaded chunks keyed
// by chunk position. World-space block reads outside the loaded set return
// air; writes outside it are discarded. Both are ordinary events while the
// player moves, never errors.
package world

import (
	"sync"

	"govoxel/internal/block"
	"govoxel/internal/coord"
)

// Grid is the set of loaded chunks. Reads may come from any goroutine;
// structural changes (Put, Remove) happen on the main thread only.
type Grid struct {
	mu     sync.RWMutex
	chunks map[coord.ChunkPos]*Chunk
}

func NewGrid() *Grid {
	return &Grid{chunks: make(map[coord.ChunkPos]*Chunk)}
}

// Chunk returns the chunk at pos, or nil if it is not loaded.
func (g *Grid) Chunk(pos coord.ChunkPos) *Chunk {
	g.mu.RLock()
	c := g.chunks[pos]
	g.mu.RUnlock()
	return c
}

// Loaded reports whether the chunk at pos is resident.
func (g *Grid) Loaded(pos coord.ChunkPos) bool {
	g.mu.RLock()
	_, ok := g.chunks[pos]
	g.mu.RUnlock()
	return ok
}

// Put makes a generated chunk resident.
func (g *Grid) Put(c *Chunk) {
	g.mu.Lock()
	g.chunks[c.Pos] = c
	g.mu.Unlock()
}

// Remove drops the chunk at pos. Any unsaved edits go with it.
func (g *Grid) Remove(pos coord.ChunkPos) {
	g.mu.Lock()
	delete(g.chunks, pos)
	g.mu.Unlock()
}

// Len returns the number of resident chunks.
func (g *Grid) Len() int {
	g.mu.RLock()
	n := len(g.chunks)
	g.mu.RUnlock()
	return n
}

// Block returns the block at a world position, or air when the containing
// chunk is not loaded.
func (g *Grid) Block(wx, wy, wz int32) block.ID {
	cp, l := coord.Split(wx, wy, wz)
	g.mu.RLock()
	c := g.chunks[cp]
	g.mu.RUnlock()
	if c == nil {
		return block.Air
	}
	return c.Block(l)
}

// SetBlock writes id at a world position. It reports whether the write
// landed; writes into unloaded chunks are dropped.
func (g *Grid) SetBlock(wx, wy, wz int32, id block.ID) bool {
	cp, l := coord.Split(wx, wy, wz)
	g.mu.RLock()
	c := g.chunks[cp]
	g.mu.RUnlock()
	if c == nil {
		return false
	}
	c.SetBlock(l, id)
	return true
}

// NeighborhoodReader returns a world-space block reader over the 3x3x3
// chunk neighborhood of pos, resolved against the grid under one lock.
// Snapshot capture issues thousands of reads per chunk; going through the
// mutex per cell is measurable, through this closure it is not. Cells in
// unloaded or out-of-neighborhood chunks read as air.
func (g *Grid) NeighborhoodReader(pos coord.ChunkPos) func(wx, wy, wz int32) block.ID {
	var local [27]*Chunk
	g.mu.RLock()
	i := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dz := int32(-1); dz <= 1; dz++ {
			for dx := int32(-1); dx <= 1; dx++ {
				local[i] = g.chunks[coord.ChunkPos{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}]
				i++
			}
		}
	}
	g.mu.RUnlock()

	return func(wx, wy, wz int32) block.ID {
		cp, l := coord.Split(wx, wy, wz)
		dx, dy, dz := cp.X-pos.X, cp.Y-pos.Y, cp.Z-pos.Z
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || dz < -1 || dz > 1 {
			return block.Air
		}
		c := local[((dy+1)*3+(dz+1))*3+(dx+1)]
		if c == nil {
			return block.Air
		}
		return c.Block(l)
	}
}

// Positions returns the positions of all resident chunks.
func (g *Grid) Positions() []coord.ChunkPos {
	g.mu.RLock()
	out := make([]coord.ChunkPos, 0, len(g.chunks))
	for pos := range g.chunks {
		out = append(out, pos)
	}
	g.mu.RUnlock()
	return out
}
