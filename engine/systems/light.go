package systems

import (
	"fmt"
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// DefaultLightPreset is applied when an unknown preset name is requested.
const DefaultLightPreset = "balanced"

// Extents of the light's orthographic frustum for shadow rendering. Large
// enough to cover the whole tabletop plus the floor around it.
const (
	lightOrthoExtent = 20.0
	lightNearPlane   = 1.0
	lightFarPlane    = 50.0
)

// LightSystem holds the named lighting presets and uploads them as the
// lightSources uniform array. The first light of a preset is the shadow
// caster; the light-space matrix is derived from it alone.
type LightSystem struct {
	backend renderer.Backend
	presets map[string][]metadata.LightSource
}

func NewLightSystem(backend renderer.Backend) (*LightSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("light system requires a backend")
	}
	return &LightSystem{
		backend: backend,
		presets: defaultLightPresets(),
	}, nil
}

// Preset returns the named light list.
func (ls *LightSystem) Preset(name string) ([]metadata.LightSource, bool) {
	lights, ok := ls.presets[name]
	return lights, ok
}

// Apply uploads the named preset as the lightSources array plus the
// active-light count. Unknown names warn and fall back to the default
// preset; the scene keeps rendering either way.
func (ls *LightSystem) Apply(shader *metadata.Shader, name string) {
	lights, ok := ls.presets[name]
	if !ok {
		core.LogWarn("light preset %q not found, using %q", name, DefaultLightPreset)
		lights = ls.presets[DefaultLightPreset]
	}

	for i, light := range lights {
		base := fmt.Sprintf("lightSources[%d]", i)
		ls.backend.SetUniformVec3(shader, base+".position", light.Position)
		ls.backend.SetUniformVec3(shader, base+".ambientColor", light.AmbientColor)
		ls.backend.SetUniformVec3(shader, base+".diffuseColor", light.DiffuseColor)
		ls.backend.SetUniformVec3(shader, base+".specularColor", light.SpecularColor)
		ls.backend.SetUniformFloat(shader, base+".focalStrength", light.FocalStrength)
		ls.backend.SetUniformFloat(shader, base+".specularIntensity", light.SpecularIntensity)
		if light.IsSpot {
			ls.backend.SetUniformVec3(shader, base+".spotDirection", light.SpotDirection)
			ls.backend.SetUniformFloat(shader, base+".cutoff", light.Cutoff)
			ls.backend.SetUniformFloat(shader, base+".outerCutoff", light.OuterCutoff)
		}
		ls.backend.SetUniformFloat(shader, base+".constant", light.Constant)
		ls.backend.SetUniformFloat(shader, base+".linear", light.Linear)
		ls.backend.SetUniformFloat(shader, base+".quadratic", light.Quadratic)
	}

	ls.backend.SetUniformInt(shader, "numActiveLights", int32(len(lights)))
}

// LightSpaceMatrix builds the view-projection transform of the preset's
// shadow-casting light. Independent of the viewer camera, so toggling the
// scene projection mode never moves the shadows.
func (ls *LightSystem) LightSpaceMatrix(name string) mgl32.Mat4 {
	lights, ok := ls.presets[name]
	if !ok {
		lights = ls.presets[DefaultLightPreset]
	}
	caster := lights[0]

	projection := mgl32.Ortho(
		-lightOrthoExtent, lightOrthoExtent,
		-lightOrthoExtent, lightOrthoExtent,
		lightNearPlane, lightFarPlane)
	view := mgl32.LookAtV(
		caster.Position,
		caster.Position.Add(caster.SpotDirection),
		mgl32.Vec3{0, 1, 0})

	return projection.Mul4(view)
}

func (ls *LightSystem) Shutdown() error {
	ls.presets = nil
	return nil
}

func cosDeg(degrees float32) float32 {
	return float32(stdmath.Cos(float64(mgl32.DegToRad(degrees))))
}

// defaultLightPresets is the authoritative light table. "balanced" is the
// scene-preparation rig, "dramatic" the per-frame render rig; both share
// the colored accent point light. Each preset is selected explicitly by
// name, never mutated in place.
func defaultLightPresets() map[string][]metadata.LightSource {
	accent := metadata.LightSource{
		Position:          mgl32.Vec3{-5.0, 6.0, 8.0},
		AmbientColor:      mgl32.Vec3{0.1, 0.1, 0.3},
		DiffuseColor:      mgl32.Vec3{0.3, 0.5, 1.0},
		SpecularColor:     mgl32.Vec3{0.5, 0.7, 1.0},
		FocalStrength:     32.0,
		SpecularIntensity: 0.8,
		Constant:          1.0,
		IsSpot:            false,
	}

	balanced := metadata.LightSource{
		Position:          mgl32.Vec3{1.0, 12.0, 2.0},
		AmbientColor:      mgl32.Vec3{0.4, 0.4, 0.4},
		DiffuseColor:      mgl32.Vec3{8.0, 8.0, 8.0},
		SpecularColor:     mgl32.Vec3{5.0, 5.0, 5.0},
		FocalStrength:     64.0,
		SpecularIntensity: 1.0,
		SpotDirection:     mgl32.Vec3{-0.1, -1.0, -0.2}.Normalize(),
		Cutoff:            cosDeg(25.0),
		OuterCutoff:       cosDeg(45.0),
		Constant:          1.0,
		IsSpot:            true,
	}

	dramatic := metadata.LightSource{
		Position:          mgl32.Vec3{2.0, 8.0, -3.0},
		AmbientColor:      mgl32.Vec3{0.4, 0.4, 0.4},
		DiffuseColor:      mgl32.Vec3{25.0, 25.0, 25.0},
		SpecularColor:     mgl32.Vec3{5.0, 5.0, 5.0},
		FocalStrength:     64.0,
		SpecularIntensity: 1.0,
		SpotDirection:     mgl32.Vec3{-0.3, -1.0, 0.4}.Normalize(),
		Cutoff:            cosDeg(15.0),
		OuterCutoff:       cosDeg(25.0),
		Constant:          1.0,
		IsSpot:            true,
	}

	return map[string][]metadata.LightSource{
		"balanced": {balanced, accent},
		"dramatic": {dramatic, accent},
	}
}
