package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"govoxel/internal/config"
)

func init() {
	// GLFW and GL demand the main OS thread.
	runtime.LockOSThread()
}

func main() {
	def := config.Default()
	app := &cli.App{
		Name:  "govoxel",
		Usage: "explore an infinite procedurally generated voxel world",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "seed", Value: def.Seed, Usage: "world seed"},
			&cli.IntFlag{Name: "render-distance", Value: int(def.RenderDistance), Usage: "chunk column load radius"},
			&cli.Int64Flag{Name: "workers", Value: def.Workers, Usage: "concurrent generation and meshing jobs"},
			&cli.IntFlag{Name: "upload-budget", Value: def.UploadBudget, Usage: "chunk mesh GPU uploads per frame"},
			&cli.Float64Flag{Name: "fov", Value: float64(def.FOV), Usage: "vertical field of view in degrees"},
			&cli.Float64Flag{Name: "fog-start", Value: float64(def.FogStart), Usage: "fog ramp start distance"},
			&cli.Float64Flag{Name: "fog-end", Value: float64(def.FogEnd), Usage: "fog ramp end distance"},
			&cli.BoolFlag{Name: "no-vsync", Usage: "disable vertical sync"},
			&cli.StringFlag{Name: "atlas", Value: def.AtlasPath, Usage: "block texture atlas path"},
			&cli.StringFlag{Name: "atlas-url", Value: def.AtlasURL, Usage: "url to fetch the atlas from when missing"},
			&cli.StringFlag{Name: "font", Value: def.FontPath, Usage: "debug overlay font path"},
		},
		Action: func(c *cli.Context) error {
			cfg := def
			cfg.Seed = c.Int64("seed")
			cfg.RenderDistance = int32(c.Int("render-distance"))
			cfg.Workers = c.Int64("workers")
			cfg.UploadBudget = c.Int("upload-budget")
			cfg.FOV = float32(c.Float64("fov"))
			cfg.FogStart = float32(c.Float64("fog-start"))
			cfg.FogEnd = float32(c.Float64("fog-end"))
			cfg.Vsync = !c.Bool("no-vsync")
			cfg.AtlasPath = c.String("atlas")
			cfg.AtlasURL = c.String("atlas-url")
			cfg.FontPath = c.String("font")
			return run(cfg)
		},
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}
