package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// ShadowMapUnit is the texture unit reserved for the depth map during the
// lit pass. Content textures occupy units below MaxTextureSlots, which
// keeps the highest guaranteed unit free for the sampler.
const ShadowMapUnit = 15

// ShadowState tracks where the subsystem is in the two-pass cycle.
type ShadowState uint8

const (
	ShadowUninitialized ShadowState = iota
	ShadowReady
	ShadowDepthPass
	ShadowLitPass
)

func (s ShadowState) String() string {
	switch s {
	case ShadowUninitialized:
		return "uninitialized"
	case ShadowReady:
		return "ready"
	case ShadowDepthPass:
		return "depth-pass"
	case ShadowLitPass:
		return "lit-pass"
	}
	return "unknown"
}

// ShadowSystem owns the off-screen depth framebuffer and orchestrates the
// two-pass algorithm: a depth-only pass from the light's viewpoint, then
// the lit pass sampling that depth map. The passes must receive the same
// object list with the same transforms or shadows misalign.
type ShadowSystem struct {
	backend    renderer.Backend
	shaders    *ShaderSystem
	dispatcher *RenderSystem
	lights     *LightSystem
	textures   *TextureSystem
	materials  *MaterialSystem
	meshes     *MeshSystem

	shadowMap *metadata.ShadowMap
	state     ShadowState

	depthShaderWarned bool
}

func NewShadowSystem(backend renderer.Backend, shaders *ShaderSystem, dispatcher *RenderSystem,
	lights *LightSystem, textures *TextureSystem, materials *MaterialSystem, meshes *MeshSystem) (*ShadowSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("shadow system requires a backend")
	}
	return &ShadowSystem{
		backend:    backend,
		shaders:    shaders,
		dispatcher: dispatcher,
		lights:     lights,
		textures:   textures,
		materials:  materials,
		meshes:     meshes,
		state:      ShadowUninitialized,
	}, nil
}

// Initialize allocates the depth framebuffer. An incomplete framebuffer
// means shadows cannot work at all, so the error must abort startup
// rather than be logged away.
func (ss *ShadowSystem) Initialize(resolution int32) error {
	if ss.state != ShadowUninitialized {
		return fmt.Errorf("shadow system already initialized (state %s)", ss.state)
	}

	shadowMap, err := ss.backend.ShadowMapCreate(resolution)
	if err != nil {
		return fmt.Errorf("shadow map setup: %w", err)
	}

	// Clear the fresh map to the far plane. A frame that never runs a
	// depth pass then samples no occluders and renders unshadowed.
	ss.backend.BindFramebuffer(shadowMap.Framebuffer)
	ss.backend.Clear(false, true)
	ss.backend.BindFramebuffer(0)

	ss.shadowMap = shadowMap
	ss.state = ShadowReady
	return nil
}

// State reports the current pass state.
func (ss *ShadowSystem) State() ShadowState {
	return ss.state
}

// RunDepthPass renders every object's depth from the light's viewpoint
// into the shadow map. Front faces are culled while it runs, which keeps
// surfaces facing the light out of the map and reduces shadow acne.
// Without a depth program the pass is skipped and the map keeps its
// cleared far-plane contents, so the scene renders without shadows.
func (ss *ShadowSystem) RunDepthPass(lightSpaceMatrix mgl32.Mat4, objects []SceneObject) error {
	if ss.state != ShadowReady {
		return fmt.Errorf("depth pass requested in state %s", ss.state)
	}
	depthShader := ss.shaders.DepthShader()
	if depthShader == nil {
		if !ss.depthShaderWarned {
			core.LogWarn("depth shader absent, rendering without shadows")
			ss.depthShaderWarned = true
		}
		return nil
	}
	ss.state = ShadowDepthPass

	ss.backend.Viewport(0, 0, ss.shadowMap.Resolution, ss.shadowMap.Resolution)
	ss.backend.BindFramebuffer(ss.shadowMap.Framebuffer)
	ss.backend.Clear(false, true)
	ss.backend.SetCullMode(renderer.CullFront)

	ss.backend.ShaderUse(depthShader)
	ss.backend.SetUniformMat4(depthShader, "lightSpaceMatrix", lightSpaceMatrix)

	ss.dispatcher.setDepthPassActive(true)
	for _, obj := range objects {
		ss.dispatcher.SetTransform(obj.Scale, obj.Rotation.X(), obj.Rotation.Y(), obj.Rotation.Z(), obj.Translation)
		ss.meshes.DrawMesh(obj.Mesh)
	}
	ss.dispatcher.setDepthPassActive(false)

	ss.backend.SetCullMode(renderer.CullBack)
	ss.backend.BindFramebuffer(0)
	width, height := ss.dispatcher.Size()
	ss.backend.Viewport(0, 0, int32(width), int32(height))

	ss.state = ShadowReady
	return nil
}

// RunLitPass draws the final frame, sampling the shadow map written by
// the preceding depth pass. lightPreset names the light rig to upload.
func (ss *ShadowSystem) RunLitPass(lightSpaceMatrix mgl32.Mat4, objects []SceneObject, lightPreset string) error {
	if ss.state != ShadowReady {
		return fmt.Errorf("lit pass requested in state %s", ss.state)
	}
	sceneShader := ss.shaders.SceneShader()
	if sceneShader == nil {
		return fmt.Errorf("scene shader absent, cannot render")
	}
	ss.state = ShadowLitPass

	ss.backend.ClearColor(0.1, 0.1, 0.1, 1.0)
	ss.backend.Clear(true, true)

	ss.backend.ShaderUse(sceneShader)
	ss.backend.SetUniformMat4(sceneShader, "lightSpaceMatrix", lightSpaceMatrix)
	ss.backend.SetUniformInt(sceneShader, "bUseLighting", 1)
	ss.lights.Apply(sceneShader, lightPreset)

	ss.textures.BindAll()
	ss.backend.TextureBindUnit(ShadowMapUnit, ss.shadowMap.DepthTexture)
	ss.backend.SetUniformInt(sceneShader, "shadowMap", ShadowMapUnit)

	for _, obj := range objects {
		if obj.TextureTag != "" {
			ss.dispatcher.SetTexture(obj.TextureTag)
		} else {
			ss.dispatcher.SetSolidColor(obj.Color.X(), obj.Color.Y(), obj.Color.Z(), obj.Color.W())
		}
		ss.dispatcher.SetUVScale(obj.UVScale.X(), obj.UVScale.Y())
		// Dispatch order matters: state is global to the bound program,
		// so everything must be set before the draw is issued.
		if obj.MaterialTag != "" {
			ss.materials.Apply(sceneShader, obj.MaterialTag)
		}
		ss.dispatcher.SetTransform(obj.Scale, obj.Rotation.X(), obj.Rotation.Y(), obj.Rotation.Z(), obj.Translation)
		ss.meshes.DrawMesh(obj.Mesh)
	}

	ss.state = ShadowReady
	return nil
}

func (ss *ShadowSystem) Shutdown() error {
	if ss.shadowMap != nil {
		ss.backend.ShadowMapDestroy(ss.shadowMap)
		ss.shadowMap = nil
	}
	ss.state = ShadowUninitialized
	return nil
}
