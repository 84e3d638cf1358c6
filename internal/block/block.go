// Package block defines the block catalog. Blocks are plain numeric IDs
// with their attributes held in a lookup table, so hot loops stay
// branch-light and chunk storage stays one byte per cell.
package block

// ID is a block type. The zero value is Air.
type ID uint8

const (
	Air ID = iota
	Stone
	Dirt
	Grass
	Sand
	Snow
	Water
	Wood
	Leaves
	Bedrock

	count
)

// Count is the number of registered block types.
const Count = int(count)

// Face indexes the six cube faces.
type Face uint8

const (
	FaceEast   Face = iota // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
	FaceSouth              // +Z
	FaceNorth              // -Z
)

// Tile addresses a cell in the texture atlas grid.
type Tile struct {
	Col, Row uint8
}

// Tiles holds one atlas tile per face.
type Tiles struct {
	East, West, Top, Bottom, South, North Tile
}

func allFaces(t Tile) Tiles {
	return Tiles{t, t, t, t, t, t}
}

func topSideBottom(top, side, bottom Tile) Tiles {
	return Tiles{side, side, top, bottom, side, side}
}

// Def describes one block type.
type Def struct {
	Name string
	// Solid blocks stop raycasts and collisions.
	Solid bool
	// Opaque blocks hide the faces of their neighbors and occlude ambient
	// light. Water and leaves are solid-ish but not opaque.
	Opaque bool
	Tiles  Tiles
}

var defs = [Count]Def{
	Air:     {Name: "air"},
	Stone:   {Name: "stone", Solid: true, Opaque: true, Tiles: allFaces(Tile{1, 0})},
	Dirt:    {Name: "dirt", Solid: true, Opaque: true, Tiles: allFaces(Tile{2, 0})},
	Grass:   {Name: "grass", Solid: true, Opaque: true, Tiles: topSideBottom(Tile{0, 0}, Tile{3, 0}, Tile{2, 0})},
	Sand:    {Name: "sand", Solid: true, Opaque: true, Tiles: allFaces(Tile{2, 1})},
	Snow:    {Name: "snow", Solid: true, Opaque: true, Tiles: topSideBottom(Tile{2, 4}, Tile{4, 4}, Tile{2, 0})},
	Water:   {Name: "water", Tiles: allFaces(Tile{13, 12})},
	Wood:    {Name: "wood", Solid: true, Opaque: true, Tiles: topSideBottom(Tile{5, 1}, Tile{4, 1}, Tile{5, 1})},
	Leaves:  {Name: "leaves", Solid: true, Tiles: allFaces(Tile{4, 3})},
	Bedrock: {Name: "bedrock", Solid: true, Opaque: true, Tiles: allFaces(Tile{1, 1})},
}

// Get returns the definition of id. Unknown IDs panic; storage only ever
// holds registered blocks.
func Get(id ID) Def {
	return defs[id]
}

// Solid reports whether id stops raycasts and collisions.
func (id ID) Solid() bool {
	return defs[id].Solid
}

// Opaque reports whether id hides neighboring faces and occludes light.
func (id ID) Opaque() bool {
	return defs[id].Opaque
}

// TileFor returns the atlas tile for one face of id.
func (id ID) TileFor(f Face) Tile {
	t := &defs[id].Tiles
	switch f {
	case FaceEast:
		return t.East
	case FaceWest:
		return t.West
	case FaceTop:
		return t.Top
	case FaceBottom:
		return t.Bottom
	case FaceSouth:
		return t.South
	default:
		return t.North
	}
}

func (id ID) String() string {
	if int(id) < Count {
		return defs[id].Name
	}
	return "unknown"
}
