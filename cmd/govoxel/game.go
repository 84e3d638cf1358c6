package main

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"govoxel/internal/assets"
	"govoxel/internal/block"
	"govoxel/internal/config"
	"govoxel/internal/coord"
	"govoxel/internal/engine"
	"govoxel/internal/hud"
	"govoxel/internal/raycast"
	"govoxel/internal/render"
	"govoxel/internal/world"
	"govoxel/internal/worldgen"
)

const (
	flySpeed    = 18.0
	sprintBoost = 2.5
	reach       = 6.0
	clickDelay  = 1.0 / 8.0
)

var skyColor = mgl32.Vec3{0.53, 0.81, 0.92}

type game struct {
	cfg     config.Config
	window  *glfw.Window
	camera  *render.Camera
	manager *engine.Manager
	queue   *render.Queue
	overlay *hud.Overlay

	blockProgram uint32
	modelLoc     int32
	viewLoc      int32
	projLoc      int32
	projection   mgl32.Mat4

	lastX, lastY float64
	firstMouse   bool
	showDebug    bool
	clickTimer   float32
	placeBlock   block.ID

	drawn, culled int
}

func run(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(cfg.WindowWidth, cfg.WindowHeight, "govoxel", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.Vsync {
		glfw.SwapInterval(1)
	}

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	blockProgram, err := render.LoadProgram("shaders/block.vert", "shaders/block.frag")
	if err != nil {
		return err
	}
	textProgram, err := render.LoadProgram("shaders/text.vert", "shaders/text.frag")
	if err != nil {
		return err
	}

	if err := assets.EnsureAtlas(cfg.AtlasPath, cfg.AtlasURL); err != nil {
		return err
	}
	atlasImg, err := assets.LoadAtlas(cfg.AtlasPath)
	if err != nil {
		return err
	}
	gl.UseProgram(blockProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	atlas := render.NewAtlasTexture(atlasImg)
	gl.BindTexture(gl.TEXTURE_2D, atlas)
	gl.Uniform1i(render.UniformLocation(blockProgram, "atlas"), 0)
	gl.Uniform1f(render.UniformLocation(blockProgram, "fogStart"), cfg.FogStart)
	gl.Uniform1f(render.UniformLocation(blockProgram, "fogEnd"), cfg.FogEnd)
	gl.Uniform3f(render.UniformLocation(blockProgram, "fogColor"), skyColor.X(), skyColor.Y(), skyColor.Z())

	overlay, err := hud.NewOverlay(cfg.FontPath, textProgram)
	if err != nil {
		return err
	}
	defer overlay.Free()

	gen := worldgen.New(cfg.Seed, cfg.BottomChunkY*coord.ChunkSize)
	grid := world.NewGrid()
	queue := render.NewQueue(cfg.UploadBudget)
	defer queue.Free()
	manager := engine.New(grid, gen, queue, engine.Options{
		Radius:       cfg.RenderDistance,
		BottomChunkY: cfg.BottomChunkY,
		TopChunkY:    cfg.TopChunkY,
		Workers:      cfg.Workers,
		Log:          slog.Default(),
	})
	defer manager.Close()

	spawnY := float32(gen.SurfaceHeight(8, 8)) + 2.5
	g := &game{
		cfg:          cfg,
		window:       window,
		camera:       render.NewCamera(mgl32.Vec3{8.5, spawnY, 8.5}),
		manager:      manager,
		queue:        queue,
		overlay:      overlay,
		blockProgram: blockProgram,
		modelLoc:     render.UniformLocation(blockProgram, "model"),
		viewLoc:      render.UniformLocation(blockProgram, "view"),
		projLoc:      render.UniformLocation(blockProgram, "projection"),
		firstMouse:   true,
		showDebug:    true,
		placeBlock:   block.Dirt,
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	g.onResize(window, fbWidth, fbHeight)
	window.SetFramebufferSizeCallback(g.onResize)

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(g.onMouseMove)
	window.SetMouseButtonCallback(g.onMouseButton)
	window.SetKeyCallback(g.onKey)

	slog.Info("world ready", "seed", cfg.Seed, "renderDistance", cfg.RenderDistance)
	g.loop()
	return nil
}

// onResize keeps the viewport and projection tied to the framebuffer, so a
// resized window neither distorts the image nor desyncs frustum culling.
func (g *game) onResize(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	g.projection = render.Projection(g.cfg.FOV, width, height, g.cfg.FogEnd+64)
	gl.UseProgram(g.blockProgram)
	gl.UniformMatrix4fv(g.projLoc, 1, false, &g.projection[0])
}

func (g *game) loop() {
	previous := time.Now()
	hudTimer := time.Now()
	frames := 0
	fps := 0.0

	for !g.window.ShouldClose() {
		dt := float32(time.Since(previous).Seconds())
		previous = time.Now()
		g.clickTimer += dt

		glfw.PollEvents()
		g.move(dt)

		eye := g.camera.Position
		g.manager.Update(floorI32(eye.X()), floorI32(eye.Z()))
		g.queue.Upload(eye)

		gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.Enable(gl.DEPTH_TEST)
		gl.Enable(gl.CULL_FACE)

		gl.UseProgram(g.blockProgram)
		view := g.camera.View()
		gl.UniformMatrix4fv(g.viewLoc, 1, false, &view[0])
		g.drawn, g.culled = g.queue.Draw(render.NewFrustum(g.projection.Mul4(view)), g.modelLoc, eye)

		frames++
		if time.Since(hudTimer) >= 250*time.Millisecond {
			fps = float64(frames) / time.Since(hudTimer).Seconds()
			frames = 0
			hudTimer = time.Now()
			if g.showDebug {
				g.updateHUD(fps)
			}
		}
		if g.showDebug {
			gl.Disable(gl.DEPTH_TEST)
			gl.Disable(gl.CULL_FACE)
			w, h := g.window.GetSize()
			g.overlay.Draw(w, h)
		}

		g.window.SwapBuffers()
	}
}

func (g *game) updateHUD(fps float64) {
	eye := g.camera.Position
	lines := []string{
		fmt.Sprintf("fps: %.0f", fps),
		fmt.Sprintf("pos: %.1f %.1f %.1f", eye.X(), eye.Y(), eye.Z()),
		fmt.Sprintf("chunks: %d tracked, %d in flight", g.manager.Tracked(), g.manager.InFlight()),
		fmt.Sprintf("draw: %d drawn, %d culled, %d uploads queued", g.drawn, g.culled, g.queue.PendingUploads()),
	}
	if err := g.overlay.SetLines(lines); err != nil {
		slog.Warn("hud update failed", "err", err)
	}
}

func (g *game) move(dt float32) {
	speed := float32(flySpeed)
	if g.window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		speed *= sprintBoost
	}

	var dir mgl32.Vec3
	if g.window.GetKey(glfw.KeyW) == glfw.Press {
		dir = dir.Add(g.camera.FlatFront())
	}
	if g.window.GetKey(glfw.KeyS) == glfw.Press {
		dir = dir.Sub(g.camera.FlatFront())
	}
	if g.window.GetKey(glfw.KeyA) == glfw.Press {
		dir = dir.Sub(g.camera.Right)
	}
	if g.window.GetKey(glfw.KeyD) == glfw.Press {
		dir = dir.Add(g.camera.Right)
	}
	if g.window.GetKey(glfw.KeySpace) == glfw.Press {
		dir = dir.Add(mgl32.Vec3{0, 1, 0})
	}
	if g.window.GetKey(glfw.KeyLeftControl) == glfw.Press {
		dir = dir.Sub(mgl32.Vec3{0, 1, 0})
	}
	if dir.Len() > 0 {
		g.camera.Position = g.camera.Position.Add(dir.Normalize().Mul(speed * dt))
	}
}

func (g *game) onMouseMove(_ *glfw.Window, xPos, yPos float64) {
	if g.firstMouse {
		g.lastX, g.lastY = xPos, yPos
		g.firstMouse = false
	}
	const sensitivity = 0.3
	dx := (xPos - g.lastX) * sensitivity
	dy := (g.lastY - yPos) * sensitivity
	g.lastX, g.lastY = xPos, yPos
	g.camera.Turn(dx, dy)
}

func (g *game) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press || g.clickTimer < clickDelay {
		return
	}
	g.clickTimer = 0

	solid := func(x, y, z int32) bool {
		return g.manager.Block(x, y, z).Solid()
	}
	hit, ok := raycast.Cast(g.camera.Position, g.camera.Front, reach, solid)
	if !ok {
		return
	}

	switch button {
	case glfw.MouseButtonLeft:
		g.manager.SetBlock(hit.Block[0], hit.Block[1], hit.Block[2], block.Air)
	case glfw.MouseButtonRight:
		target := mgl32.Vec3{
			float32(hit.Previous[0]) + 0.5,
			float32(hit.Previous[1]) + 0.5,
			float32(hit.Previous[2]) + 0.5,
		}
		// Do not place a block into the player.
		if target.Sub(g.camera.Position).Len() < 1.5 {
			return
		}
		g.manager.SetBlock(hit.Previous[0], hit.Previous[1], hit.Previous[2], g.placeBlock)
	}
}

func (g *game) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyF3:
		g.showDebug = !g.showDebug
	case glfw.Key1:
		g.placeBlock = block.Dirt
	case glfw.Key2:
		g.placeBlock = block.Stone
	case glfw.Key3:
		g.placeBlock = block.Sand
	case glfw.Key4:
		g.placeBlock = block.Wood
	}
}

func floorI32(v float32) int32 {
	return int32(math.Floor(float64(v)))
}
