package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// fakeBackend records every GPU-facing call so the systems can be tested
// without a graphics context.
type fakeBackend struct {
	nextHandle uint32

	createdTextures   []*metadata.Texture
	destroyedTextures []uint32
	boundUnits        map[int32]uint32
	bindOrder         []int32

	shaders        []*metadata.Shader
	failShaders    map[string]bool
	activeShader   string
	uniforms       map[string]map[string]interface{}
	uniformHistory []uniformWrite

	geometries    map[uint32]*metadata.Geometry
	drawnGeometry []metadata.MeshKind
	cullModes     []renderer.CullMode
	boundFBOs     []uint32
	clearCalls    int
	viewports     [][4]int32
	shadowMaps    []*metadata.ShadowMap
	failShadowMap bool
}

type uniformWrite struct {
	shader string
	name   string
	value  interface{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextHandle:  1,
		boundUnits:  make(map[int32]uint32),
		failShaders: make(map[string]bool),
		uniforms:    make(map[string]map[string]interface{}),
		geometries:  make(map[uint32]*metadata.Geometry),
	}
}

func (f *fakeBackend) Initialize(width, height uint32) error { return nil }
func (f *fakeBackend) Shutdown() error                       { return nil }

func (f *fakeBackend) Viewport(x, y, width, height int32) {
	f.viewports = append(f.viewports, [4]int32{x, y, width, height})
}
func (f *fakeBackend) ClearColor(r, g, b, a float32) {}
func (f *fakeBackend) Clear(color, depth bool)       { f.clearCalls++ }
func (f *fakeBackend) SetCullMode(mode renderer.CullMode) {
	f.cullModes = append(f.cullModes, mode)
}
func (f *fakeBackend) BindFramebuffer(handle uint32) {
	f.boundFBOs = append(f.boundFBOs, handle)
}

func (f *fakeBackend) TextureCreate(pixels *metadata.TexturePixels, texture *metadata.Texture) error {
	texture.Handle = f.nextHandle
	texture.Width = pixels.Width
	texture.Height = pixels.Height
	texture.ChannelCount = pixels.ChannelCount
	f.nextHandle++
	f.createdTextures = append(f.createdTextures, texture)
	return nil
}

func (f *fakeBackend) TextureDestroy(texture *metadata.Texture) {
	f.destroyedTextures = append(f.destroyedTextures, texture.Handle)
	texture.Handle = metadata.InvalidHandle
}

func (f *fakeBackend) TextureBindUnit(unit int32, handle uint32) {
	f.boundUnits[unit] = handle
	f.bindOrder = append(f.bindOrder, unit)
}

func (f *fakeBackend) ShaderCreate(name, vertexSource, fragmentSource string) (*metadata.Shader, error) {
	if f.failShaders[name] {
		return nil, fmt.Errorf("fake compile failure for %q", name)
	}
	shader := &metadata.Shader{Name: name, Program: f.nextHandle}
	f.nextHandle++
	f.shaders = append(f.shaders, shader)
	return shader, nil
}

func (f *fakeBackend) ShaderDestroy(shader *metadata.Shader) {}

func (f *fakeBackend) ShaderUse(shader *metadata.Shader) {
	if shader != nil {
		f.activeShader = shader.Name
	}
}

func (f *fakeBackend) setUniform(shader *metadata.Shader, name string, value interface{}) {
	if shader == nil {
		return
	}
	if f.uniforms[shader.Name] == nil {
		f.uniforms[shader.Name] = make(map[string]interface{})
	}
	f.uniforms[shader.Name][name] = value
	f.uniformHistory = append(f.uniformHistory, uniformWrite{shader: shader.Name, name: name, value: value})
}

func (f *fakeBackend) SetUniformInt(shader *metadata.Shader, name string, value int32) {
	f.setUniform(shader, name, value)
}
func (f *fakeBackend) SetUniformFloat(shader *metadata.Shader, name string, value float32) {
	f.setUniform(shader, name, value)
}
func (f *fakeBackend) SetUniformVec2(shader *metadata.Shader, name string, value mgl32.Vec2) {
	f.setUniform(shader, name, value)
}
func (f *fakeBackend) SetUniformVec3(shader *metadata.Shader, name string, value mgl32.Vec3) {
	f.setUniform(shader, name, value)
}
func (f *fakeBackend) SetUniformVec4(shader *metadata.Shader, name string, value mgl32.Vec4) {
	f.setUniform(shader, name, value)
}
func (f *fakeBackend) SetUniformMat4(shader *metadata.Shader, name string, value mgl32.Mat4) {
	f.setUniform(shader, name, value)
}

func (f *fakeBackend) GeometryCreate(geometry *metadata.Geometry) error {
	geometry.Handle = f.nextHandle
	f.nextHandle++
	f.geometries[geometry.Handle] = geometry
	return nil
}

func (f *fakeBackend) GeometryDestroy(geometry *metadata.Geometry) {
	delete(f.geometries, geometry.Handle)
	geometry.Handle = metadata.InvalidHandle
}

func (f *fakeBackend) GeometryDraw(geometry *metadata.Geometry) {
	f.drawnGeometry = append(f.drawnGeometry, geometry.Kind)
}

func (f *fakeBackend) ShadowMapCreate(resolution int32) (*metadata.ShadowMap, error) {
	if f.failShadowMap {
		return nil, fmt.Errorf("fake framebuffer incomplete")
	}
	sm := &metadata.ShadowMap{
		Framebuffer:  f.nextHandle,
		DepthTexture: f.nextHandle + 1,
		Resolution:   resolution,
	}
	f.nextHandle += 2
	f.shadowMaps = append(f.shadowMaps, sm)
	return sm, nil
}

func (f *fakeBackend) ShadowMapDestroy(shadowMap *metadata.ShadowMap) {
	shadowMap.Framebuffer = 0
	shadowMap.DepthTexture = 0
}

// modelWrites returns every model-matrix upload to the named shader, in
// order.
func (f *fakeBackend) modelWrites(shader string) []mgl32.Mat4 {
	var writes []mgl32.Mat4
	for _, w := range f.uniformHistory {
		if w.shader == shader && w.name == "model" {
			writes = append(writes, w.value.(mgl32.Mat4))
		}
	}
	return writes
}
