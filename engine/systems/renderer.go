package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// Viewer projection constants. The shadow pass never uses these; the
// light owns its own projection.
const (
	perspectiveFOVDegrees = 45.0
	projectionNearPlane   = 0.1
	projectionFarPlane    = 100.0
	orthoHalfExtent       = 20.0
)

// SceneObject is one draw of the fixed scene: a mesh kind plus the full
// transform/texture/material state it is drawn with. The same list must
// be handed to both shadow passes, or shadows detach from geometry.
type SceneObject struct {
	Mesh        metadata.MeshKind
	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3 // degrees, applied X then Y then Z
	Translation mgl32.Vec3

	// TextureTag selects a registry texture; empty means solid color.
	TextureTag  string
	Color       mgl32.Vec4
	MaterialTag string
	UVScale     mgl32.Vec2
}

// RenderSystem is the uniform dispatcher: it builds model matrices and
// pushes transform, color, texture and projection state to the active
// shaders. Uniform writes are global to the bound program, so callers
// must fully set state before each draw.
type RenderSystem struct {
	backend  renderer.Backend
	textures *TextureSystem
	shaders  *ShaderSystem

	width  uint32
	height uint32

	perspective      bool
	projectionMatrix mgl32.Mat4

	// While a depth pass runs, model matrices are mirrored to the depth
	// shader so both passes rasterize congruent geometry.
	depthPassActive bool
}

func NewRenderSystem(backend renderer.Backend, textures *TextureSystem, shaders *ShaderSystem, width, height uint32) (*RenderSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("render system requires a backend")
	}
	rs := &RenderSystem{
		backend:  backend,
		textures: textures,
		shaders:  shaders,
		width:    width,
		height:   height,
	}
	rs.SetProjectionMode(true)
	return rs, nil
}

// SetTransform composes M = Translate * RotateX * RotateY * RotateZ * Scale
// from the given components (angles in degrees) and uploads it as the
// model matrix. During a depth pass the identical matrix also goes to the
// depth shader.
func (rs *RenderSystem) SetTransform(scale mgl32.Vec3, rotX, rotY, rotZ float32, translation mgl32.Vec3) {
	model := ComposeTransform(scale, rotX, rotY, rotZ, translation)

	rs.backend.SetUniformMat4(rs.shaders.SceneShader(), "model", model)
	if rs.depthPassActive {
		rs.backend.SetUniformMat4(rs.shaders.DepthShader(), "model", model)
	}
}

// ComposeTransform builds the model matrix the dispatcher uploads. Kept
// as a free function so the composition order is testable in isolation.
func ComposeTransform(scale mgl32.Vec3, rotX, rotY, rotZ float32, translation mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z())
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(rotX))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(rotY))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(rotZ))
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())

	return t.Mul4(rx).Mul4(ry).Mul4(rz).Mul4(s)
}

// SetSolidColor disables texture sampling and sets a uniform RGBA color.
func (rs *RenderSystem) SetSolidColor(r, g, b, a float32) {
	shader := rs.shaders.SceneShader()
	rs.backend.SetUniformInt(shader, "bUseTexture", 0)
	rs.backend.SetUniformVec4(shader, "objectColor", mgl32.Vec4{r, g, b, a})
}

// SetTexture enables texture sampling from the registry slot bound under
// tag. A missing tag warns and leaves the previous binding in effect, so
// the object renders with the wrong texture rather than not at all.
func (rs *RenderSystem) SetTexture(tag string) {
	slot, found := rs.textures.FindSlot(tag)
	if !found {
		core.LogWarn("texture tag %q not found, previous binding stays active", tag)
		return
	}
	shader := rs.shaders.SceneShader()
	rs.backend.SetUniformInt(shader, "bUseTexture", 1)
	rs.backend.SetUniformInt(shader, "objectTexture", slot)
}

// SetUVScale sets the tiling multiplier applied to texture coordinates.
func (rs *RenderSystem) SetUVScale(u, v float32) {
	rs.backend.SetUniformVec2(rs.shaders.SceneShader(), "UVscale", mgl32.Vec2{u, v})
}

// SetView uploads the camera view matrix and world position.
func (rs *RenderSystem) SetView(view mgl32.Mat4, viewPosition mgl32.Vec3) {
	shader := rs.shaders.SceneShader()
	rs.backend.SetUniformMat4(shader, "view", view)
	rs.backend.SetUniformVec3(shader, "viewPosition", viewPosition)
}

// SetProjectionMode recomputes the viewer projection: perspective with a
// fixed 45 degree field of view, or orthographic with a fixed half-extent
// scaled by aspect. The shadow pass is unaffected.
func (rs *RenderSystem) SetProjectionMode(perspective bool) {
	rs.perspective = perspective
	aspect := float32(rs.width) / float32(rs.height)

	if perspective {
		rs.projectionMatrix = mgl32.Perspective(
			mgl32.DegToRad(perspectiveFOVDegrees), aspect,
			projectionNearPlane, projectionFarPlane)
	} else {
		rs.projectionMatrix = mgl32.Ortho(
			-orthoHalfExtent*aspect, orthoHalfExtent*aspect,
			-orthoHalfExtent, orthoHalfExtent,
			projectionNearPlane, projectionFarPlane)
	}

	rs.backend.SetUniformMat4(rs.shaders.SceneShader(), "projection", rs.projectionMatrix)

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_PROJECTION_CHANGED,
		Data: &core.ProjectionEvent{Perspective: perspective},
	})
}

// Perspective reports whether the viewer projection is perspective.
func (rs *RenderSystem) Perspective() bool {
	return rs.perspective
}

// ProjectionMatrix returns the current viewer projection.
func (rs *RenderSystem) ProjectionMatrix() mgl32.Mat4 {
	return rs.projectionMatrix
}

// OnResize updates the stored framebuffer size and rebuilds the
// projection for the new aspect ratio.
func (rs *RenderSystem) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	rs.width = width
	rs.height = height
	rs.backend.Viewport(0, 0, int32(width), int32(height))
	rs.SetProjectionMode(rs.perspective)
}

// Size returns the current framebuffer dimensions.
func (rs *RenderSystem) Size() (uint32, uint32) {
	return rs.width, rs.height
}

func (rs *RenderSystem) setDepthPassActive(active bool) {
	rs.depthPassActive = active
}

func (rs *RenderSystem) Shutdown() error {
	return nil
}
