// Package hud draws the debug text overlay: frame rate, position and
// chunk pipeline counters rendered through freetype onto a texture quad.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
)

const (
	canvasSize = 512
	fontSize   = 18
	lineHeight = 22
	margin     = 8
)

// Overlay renders a block of text lines into the top-left corner.
type Overlay struct {
	ctx     *freetype.Context
	canvas  *image.RGBA
	texture uint32
	vao     uint32
	vbo     uint32

	program  uint32
	projLoc  int32
	modelLoc int32
}

// NewOverlay loads the font and builds the GL objects for the text quad.
// program must be the 2D text shader.
func NewOverlay(fontPath string, program uint32) (*Overlay, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetDst(canvas)
	ctx.SetClip(canvas.Bounds())
	ctx.SetSrc(image.White)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingFull)

	o := &Overlay{ctx: ctx, canvas: canvas, program: program}
	o.projLoc = gl.GetUniformLocation(program, gl.Str("projection\x00"))
	o.modelLoc = gl.GetUniformLocation(program, gl.Str("model\x00"))

	gl.GenTextures(1, &o.texture)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, canvasSize, canvasSize,
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(canvas.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	vertices := []float32{
		0, 0, 0, 0,
		0, 1, 0, 1,
		1, 1, 1, 1,
		0, 0, 0, 0,
		1, 1, 1, 1,
		1, 0, 1, 0,
	}
	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, uintptr(2*4))
	gl.BindVertexArray(0)

	return o, nil
}

// SetLines redraws the canvas with the given lines and re-uploads the
// texture. Call only when the content changed; the upload is the cost.
func (o *Overlay) SetLines(lines []string) error {
	draw.Draw(o.canvas, o.canvas.Bounds(), &image.Uniform{C: color.Transparent}, image.Point{}, draw.Src)
	for i, line := range lines {
		pt := freetype.Pt(margin, margin+(i+1)*lineHeight)
		if _, err := o.ctx.DrawString(line, pt); err != nil {
			return fmt.Errorf("draw hud line: %w", err)
		}
	}
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, canvasSize, canvasSize,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(o.canvas.Pix))
	return nil
}

// Draw blits the overlay quad over the frame. Depth testing and culling
// must already be off.
func (o *Overlay) Draw(windowWidth, windowHeight int) {
	gl.UseProgram(o.program)

	projection := mgl32.Ortho(0, float32(windowWidth), float32(windowHeight), 0, -1, 1)
	gl.UniformMatrix4fv(o.projLoc, 1, false, &projection[0])
	model := mgl32.Scale3D(canvasSize, canvasSize, 1)
	gl.UniformMatrix4fv(o.modelLoc, 1, false, &model[0])

	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// Free releases the overlay's GL objects.
func (o *Overlay) Free() {
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
	gl.DeleteTextures(1, &o.texture)
}
