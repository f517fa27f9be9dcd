package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// CullMode selects which triangle faces are discarded before rasterization.
type CullMode uint8

const (
	// CullNone disables face culling entirely.
	CullNone CullMode = iota
	// CullBack discards faces pointing away from the viewer. Default for
	// the lit pass.
	CullBack
	// CullFront discards faces pointing toward the viewer. Used during the
	// depth pass to reduce shadow acne.
	CullFront
)

// Backend is the GPU surface the systems talk to. Exactly one concrete
// implementation (opengl) exists per process; tests substitute a recording
// fake. All calls must happen on the thread owning the graphics context.
type Backend interface {
	Initialize(width, height uint32) error
	Shutdown() error

	// Frame state
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(color, depth bool)
	SetCullMode(mode CullMode)
	// BindFramebuffer makes the given framebuffer the render target;
	// handle 0 restores the default (window) framebuffer.
	BindFramebuffer(handle uint32)

	// Textures
	TextureCreate(pixels *metadata.TexturePixels, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture)
	// TextureBindUnit binds the texture handle to the given texture unit.
	TextureBindUnit(unit int32, handle uint32)

	// Shaders
	ShaderCreate(name, vertexSource, fragmentSource string) (*metadata.Shader, error)
	ShaderDestroy(shader *metadata.Shader)
	ShaderUse(shader *metadata.Shader)
	SetUniformInt(shader *metadata.Shader, name string, value int32)
	SetUniformFloat(shader *metadata.Shader, name string, value float32)
	SetUniformVec2(shader *metadata.Shader, name string, value mgl32.Vec2)
	SetUniformVec3(shader *metadata.Shader, name string, value mgl32.Vec3)
	SetUniformVec4(shader *metadata.Shader, name string, value mgl32.Vec4)
	SetUniformMat4(shader *metadata.Shader, name string, value mgl32.Mat4)

	// Geometry
	GeometryCreate(geometry *metadata.Geometry) error
	GeometryDestroy(geometry *metadata.Geometry)
	GeometryDraw(geometry *metadata.Geometry)

	// Shadow mapping
	ShadowMapCreate(resolution int32) (*metadata.ShadowMap, error)
	ShadowMapDestroy(shadowMap *metadata.ShadowMap)
}
