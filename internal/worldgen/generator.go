// Package worldgen produces chunk contents from chunk coordinates. A
// Generator is a pure function of its seed: the same position always
// yields the same blocks, on any goroutine, with no shared mutable state.
package worldgen

import (
	"github.com/ojrac/opensimplex-go"

	"govoxel/internal/block"
	"govoxel/internal/coord"
	"govoxel/internal/world"
)

const (
	// SeaLevel is the world Y below which empty terrain fills with water.
	SeaLevel = 0

	baseHeight   = 8
	snowLine     = 42
	dirtDepth    = 3
	desertBelow  = -0.35
	beachHalo    = 2
	caveCutoff   = 0.25
	treeCutoff   = 0.55
	canopyRadius = 2
)

// Generator derives terrain for any chunk position from a fixed seed.
type Generator struct {
	seed     int64
	terrain  opensimplex.Noise32
	caves    opensimplex.Noise32
	moisture opensimplex.Noise32
	trees    opensimplex.Noise32
	bottom   int32
}

// New returns a generator for the given seed. bottomY is the world Y of
// the lowest generated block; a bedrock floor is placed there.
func New(seed int64, bottomY int32) *Generator {
	return &Generator{
		seed:     seed,
		terrain:  opensimplex.New32(seed),
		caves:    opensimplex.New32(seed + 1),
		moisture: opensimplex.New32(seed + 2),
		trees:    opensimplex.New32(seed + 3),
		bottom:   bottomY,
	}
}

func (g *Generator) fractal2(x, z int32, amplitude float32, octaves int, lacunarity, persistence, scale float32) int32 {
	val := int32(0)
	x1 := float32(x)
	z1 := float32(z)
	for i := 0; i < octaves; i++ {
		val += int32(g.terrain.Eval2(x1/scale, z1/scale) * amplitude)
		x1 *= lacunarity
		z1 *= lacunarity
		amplitude *= persistence
	}
	if val < -120 {
		return -120
	}
	if val > 120 {
		return 120
	}
	return val
}

func (g *Generator) cave3(x, y, z int32) float32 {
	const scale = 12
	return g.caves.Eval3(float32(x)/scale, float32(y)/scale, float32(z)/scale)
}

// SurfaceHeight returns the world Y of the topmost terrain block in the
// given column, before water or trees.
func (g *Generator) SurfaceHeight(wx, wz int32) int32 {
	return baseHeight + g.fractal2(wx, wz, 24, 4, 1.5, 0.5, 100)
}

// surfaceBlock picks the top block for a column from its height and a
// low-frequency moisture field.
func (g *Generator) surfaceBlock(wx, wz, h int32) block.ID {
	if h >= snowLine {
		return block.Snow
	}
	if h >= SeaLevel-beachHalo && h <= SeaLevel+beachHalo {
		return block.Sand
	}
	if g.moisture.Eval2(float32(wx)/400, float32(wz)/400) < desertBelow {
		return block.Sand
	}
	return block.Grass
}

// Generate builds the chunk at pos. The result is deterministic in
// (seed, pos) and touches nothing outside the returned chunk.
func (g *Generator) Generate(pos coord.ChunkPos) *world.Chunk {
	c := world.NewChunk(pos)
	ox, oy, oz := pos.Origin()

	for x := int32(0); x < coord.ChunkSize; x++ {
		for z := int32(0); z < coord.ChunkSize; z++ {
			wx, wz := ox+x, oz+z
			h := g.SurfaceHeight(wx, wz)
			surface := g.surfaceBlock(wx, wz, h)

			for y := int32(0); y < coord.ChunkSize; y++ {
				wy := oy + y
				id := g.columnBlock(wx, wy, wz, h, surface)
				if id != block.Air {
					c.SetBlock(coord.Local{X: uint8(x), Y: uint8(y), Z: uint8(z)}, id)
				}
			}
		}
	}

	g.placeTrees(c)
	return c
}

func (g *Generator) columnBlock(wx, wy, wz, h int32, surface block.ID) block.ID {
	if wy == g.bottom {
		return block.Bedrock
	}
	if wy > h {
		if wy <= SeaLevel {
			return block.Water
		}
		return block.Air
	}
	// Carve caves well under the surface so the top layer stays intact.
	if wy < h-4 && wy < SeaLevel && wy > g.bottom+1 {
		if g.cave3(wx, wy, wz) > caveCutoff {
			return block.Air
		}
	}
	if wy == h {
		return surface
	}
	if wy >= h-dirtDepth {
		if surface == block.Sand {
			return block.Sand
		}
		return block.Dirt
	}
	return block.Stone
}
