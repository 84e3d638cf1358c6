// Package render owns everything that talks to OpenGL: shader programs,
// the texture atlas, and the per-chunk buffer queue. Every function here
// must run on the main thread with a current GL context.
package render

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func compileShader(path string, shaderType uint32) (uint32, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read shader: %w", err)
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(string(src) + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := string(make([]byte, logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile %s: %s", path, log)
	}
	return shader, nil
}

// LoadProgram compiles and links a vertex/fragment shader pair from disk.
func LoadProgram(vertPath, fragPath string) (uint32, error) {
	vert, err := compileShader(vertPath, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	frag, err := compileShader(fragPath, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vert)
	gl.DetachShader(prog, frag)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := string(make([]byte, logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link %s + %s: %s", vertPath, fragPath, log)
	}
	return prog, nil
}

// UniformLocation resolves a uniform by name on a program.
func UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
