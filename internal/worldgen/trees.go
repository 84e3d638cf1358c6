package worldgen

import (
	"govoxel/internal/block"
	"govoxel/internal/coord"
	"govoxel/internal/world"
)

// treeNoise is the placement field. It is sampled per column; a tree root
// sits wherever the field is a strict local maximum over a 5x5 window and
// clears the cutoff. Neighboring chunks sample the same field, so every
// chunk agrees on tree positions without reading its neighbors.
func (g *Generator) treeNoise(wx, wz int32) float32 {
	return g.trees.Eval2(float32(wx)*0.79, float32(wz)*0.53)
}

func (g *Generator) treeRootAt(wx, wz int32) (height int32, ok bool) {
	p := g.treeNoise(wx, wz)
	if p <= treeCutoff {
		return 0, false
	}
	for dx := int32(-2); dx <= 2; dx++ {
		for dz := int32(-2); dz <= 2; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if g.treeNoise(wx+dx, wz+dz) >= p {
				return 0, false
			}
		}
	}
	trunk := 4 + int32((p-treeCutoff)*20)%3
	return trunk, true
}

// placeTrees stamps every tree whose trunk or canopy intersects the chunk.
// Roots up to canopyRadius blocks outside the chunk footprint can reach in,
// so the scan extends past the borders.
func (g *Generator) placeTrees(c *world.Chunk) {
	ox, _, oz := c.Pos.Origin()

	for x := int32(-canopyRadius); x < coord.ChunkSize+canopyRadius; x++ {
		for z := int32(-canopyRadius); z < coord.ChunkSize+canopyRadius; z++ {
			wx, wz := ox+x, oz+z
			trunk, ok := g.treeRootAt(wx, wz)
			if !ok {
				continue
			}
			h := g.SurfaceHeight(wx, wz)
			if h <= SeaLevel || g.surfaceBlock(wx, wz, h) != block.Grass {
				continue
			}
			g.stampTree(c, wx, h, wz, trunk)
		}
	}
}

func (g *Generator) stampTree(c *world.Chunk, wx, groundY, wz, trunk int32) {
	for dy := int32(1); dy <= trunk; dy++ {
		setWorld(c, wx, groundY+dy, wz, block.Wood)
	}
	// Two wide canopy layers, then a narrow cap.
	for dy := trunk - 1; dy <= trunk; dy++ {
		for dx := int32(-canopyRadius); dx <= canopyRadius; dx++ {
			for dz := int32(-canopyRadius); dz <= canopyRadius; dz++ {
				if dx == 0 && dz == 0 && dy <= trunk {
					continue
				}
				setWorldIfAir(c, wx+dx, groundY+dy, wz+dz, block.Leaves)
			}
		}
	}
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			setWorldIfAir(c, wx+dx, groundY+trunk+1, wz+dz, block.Leaves)
		}
	}
	setWorldIfAir(c, wx, groundY+trunk+2, wz, block.Leaves)
}

func setWorld(c *world.Chunk, wx, wy, wz int32, id block.ID) {
	cp, l := coord.Split(wx, wy, wz)
	if cp != c.Pos {
		return
	}
	c.SetBlock(l, id)
}

func setWorldIfAir(c *world.Chunk, wx, wy, wz int32, id block.ID) {
	cp, l := coord.Split(wx, wy, wz)
	if cp != c.Pos {
		return
	}
	if c.Block(l) != block.Air {
		return
	}
	c.SetBlock(l, id)
}
