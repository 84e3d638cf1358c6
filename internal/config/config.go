// Package config carries every tunable the binary exposes. Values are
// plain data; cmd fills them from flags and passes them down.
package config

// Config is the complete runtime configuration.
type Config struct {
	// Seed fixes the terrain. The same seed always produces the same
	// world.
	Seed int64

	// RenderDistance is the chunk-column load radius. Columns load when
	// their Euclidean distance in columns is at most this.
	RenderDistance int32

	// BottomChunkY and TopChunkY bound the vertical chunk range,
	// inclusive.
	BottomChunkY int32
	TopChunkY    int32

	// Workers bounds concurrent generation and meshing jobs.
	Workers int64

	// UploadBudget caps chunk mesh GPU uploads per frame.
	UploadBudget int

	// FOV is the vertical field of view in degrees.
	FOV float32

	// FogStart and FogEnd are view-space distances bounding the linear
	// fog ramp.
	FogStart float32
	FogEnd   float32

	WindowWidth  int
	WindowHeight int
	Vsync        bool

	// AtlasPath is the block texture atlas on disk; when missing it is
	// fetched from AtlasURL.
	AtlasPath string
	AtlasURL  string
	FontPath  string
}

// Default returns the configuration the binary starts from before flags.
func Default() Config {
	return Config{
		Seed:           1,
		RenderDistance: 8,
		BottomChunkY:   -2,
		TopChunkY:      3,
		Workers:        4,
		UploadBudget:   8,
		FOV:            70,
		FogStart:       80,
		FogEnd:         120,
		WindowWidth:    1600,
		WindowHeight:   900,
		Vsync:          true,
		AtlasPath:      "assets/textures/atlas.png",
		FontPath:       "assets/fonts/Mojang-Regular.ttf",
	}
}
