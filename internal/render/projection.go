package render

import "github.com/go-gl/mathgl/mgl32"

// Projection returns the perspective projection for a framebuffer size.
// Minimized windows report a zero height; treat it as one so the aspect
// ratio stays finite.
func Projection(fovDegrees float32, width, height int, far float32) mgl32.Mat4 {
	if height < 1 {
		height = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), float32(width)/float32(height), 0.1, far)
}
