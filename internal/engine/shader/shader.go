// Package shader compiles GLSL programs and caches their uniform locations.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked shader program.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// Compile builds a program from vertex and fragment sources.
func Compile(vertexSrc, fragmentSrc string) (*Program, error) {
	vert, err := compileStage(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(frag)

	id := gl.CreateProgram()
	gl.AttachShader(id, vert)
	gl.AttachShader(id, frag)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf *uint8) { gl.GetProgramInfoLog(id, n, nil, buf) })
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("link: %s", msg)
	}

	return &Program{ID: id, uniforms: make(map[string]int32)}, nil
}

func compileStage(source string, stage uint32, name string) (uint32, error) {
	id := gl.CreateShader(stage)
	csource, free := gl.Strs(terminate(source))
	gl.ShaderSource(id, 1, csource, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf *uint8) { gl.GetShaderInfoLog(id, n, nil, buf) })
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}
	return id, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// terminate appends the NUL terminator gl.Strs requires.
func terminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the location of name, -1 if it is inactive.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(terminate(name)))
	p.uniforms[name] = loc
	return loc
}

// MustUniform is Uniform but panics for inactive uniforms.
func (p *Program) MustUniform(name string) int32 {
	loc := p.Uniform(name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, p.ID))
	}
	return loc
}

// SetMat4 uploads a column-major 4x4 matrix.
func (p *Program) SetMat4(name string, m *float32) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, m)
}

// SetInt sets an integer or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
