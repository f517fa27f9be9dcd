package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

func (b *Backend) ShaderCreate(name, vertexSource, fragmentSource string) (*metadata.Shader, error) {
	vertex, err := compileStage(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, fmt.Errorf("opengl: shader %q vertex stage: %w", name, err)
	}
	fragment, err := compileStage(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		gl.DeleteShader(vertex)
		return nil, fmt.Errorf("opengl: shader %q fragment stage: %w", name, err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programInfoLog(program)
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("opengl: shader %q link failed: %s", name, log)
	}

	b.uniforms[program] = make(map[string]int32)

	return &metadata.Shader{
		ID:      core.NewIdentifier(),
		Name:    name,
		Program: program,
	}, nil
}

func (b *Backend) ShaderDestroy(shader *metadata.Shader) {
	if shader == nil || shader.Program == 0 {
		return
	}
	delete(b.uniforms, shader.Program)
	gl.DeleteProgram(shader.Program)
	shader.Program = 0
}

func (b *Backend) ShaderUse(shader *metadata.Shader) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
}

// uniformLocation resolves and caches the location of a named uniform.
// Repeated GetUniformLocation calls per frame are measurably slow on some
// drivers, so every location is looked up at most once per program.
func (b *Backend) uniformLocation(shader *metadata.Shader, name string) int32 {
	cache, ok := b.uniforms[shader.Program]
	if !ok {
		cache = make(map[string]int32)
		b.uniforms[shader.Program] = cache
	}
	if loc, ok := cache[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(shader.Program, gl.Str(name+"\x00"))
	if loc == -1 {
		core.LogDebug("shader %q has no uniform %q", shader.Name, name)
	}
	cache[name] = loc
	return loc
}

func (b *Backend) SetUniformInt(shader *metadata.Shader, name string, value int32) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
	if loc := b.uniformLocation(shader, name); loc != -1 {
		gl.Uniform1i(loc, value)
	}
}

func (b *Backend) SetUniformFloat(shader *metadata.Shader, name string, value float32) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
	if loc := b.uniformLocation(shader, name); loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (b *Backend) SetUniformVec2(shader *metadata.Shader, name string, value mgl32.Vec2) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
	if loc := b.uniformLocation(shader, name); loc != -1 {
		gl.Uniform2f(loc, value.X(), value.Y())
	}
}

func (b *Backend) SetUniformVec3(shader *metadata.Shader, name string, value mgl32.Vec3) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
	if loc := b.uniformLocation(shader, name); loc != -1 {
		gl.Uniform3f(loc, value.X(), value.Y(), value.Z())
	}
}

func (b *Backend) SetUniformVec4(shader *metadata.Shader, name string, value mgl32.Vec4) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
	if loc := b.uniformLocation(shader, name); loc != -1 {
		gl.Uniform4f(loc, value.X(), value.Y(), value.Z(), value.W())
	}
}

func (b *Backend) SetUniformMat4(shader *metadata.Shader, name string, value mgl32.Mat4) {
	if shader == nil {
		return
	}
	gl.UseProgram(shader.Program)
	if loc := b.uniformLocation(shader, name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

func compileStage(stage uint32, source string) (uint32, error) {
	handle := gl.CreateShader(stage)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(log))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}

	return handle, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return "no log"
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
