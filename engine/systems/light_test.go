package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

func TestLightPresetsExist(t *testing.T) {
	backend := newFakeBackend()
	ls, err := NewLightSystem(backend)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"balanced", "dramatic"} {
		lights, ok := ls.Preset(name)
		if !ok {
			t.Errorf("preset %q missing", name)
			continue
		}
		if len(lights) != 2 {
			t.Errorf("preset %q has %d lights, want 2", name, len(lights))
		}
		if !lights[0].IsSpot {
			t.Errorf("preset %q: first light must be the spot caster", name)
		}
		if lights[1].IsSpot {
			t.Errorf("preset %q: accent light must be a point light", name)
		}
	}
}

func TestLightApplyUploadsCountAndFields(t *testing.T) {
	backend := newFakeBackend()
	ls, _ := NewLightSystem(backend)
	shader := &metadata.Shader{Name: "scene", Program: 1}

	ls.Apply(shader, "balanced")

	uniforms := backend.uniforms["scene"]
	if got := uniforms["numActiveLights"]; got != int32(2) {
		t.Errorf("numActiveLights = %v, want 2", got)
	}
	if got := uniforms["lightSources[0].position"]; got != (mgl32.Vec3{1.0, 12.0, 2.0}) {
		t.Errorf("caster position = %v", got)
	}
	if got := uniforms["lightSources[1].diffuseColor"]; got != (mgl32.Vec3{0.3, 0.5, 1.0}) {
		t.Errorf("accent diffuse = %v", got)
	}
	// The point light carries no spot fields.
	if _, ok := uniforms["lightSources[1].cutoff"]; ok {
		t.Error("point light uploaded a spot cutoff")
	}
	if _, ok := uniforms["lightSources[0].cutoff"]; !ok {
		t.Error("spot caster missing its cutoff")
	}
}

func TestLightApplyUnknownPresetFallsBack(t *testing.T) {
	backend := newFakeBackend()
	ls, _ := NewLightSystem(backend)
	shader := &metadata.Shader{Name: "scene", Program: 1}

	ls.Apply(shader, "nonexistent")

	uniforms := backend.uniforms["scene"]
	if got := uniforms["lightSources[0].position"]; got != (mgl32.Vec3{1.0, 12.0, 2.0}) {
		t.Errorf("fallback caster position = %v, want the balanced rig", got)
	}
}

func TestLightSpaceMatrixIsDeterministic(t *testing.T) {
	backend := newFakeBackend()
	ls, _ := NewLightSystem(backend)

	first := ls.LightSpaceMatrix("dramatic")
	second := ls.LightSpaceMatrix("dramatic")
	if first != second {
		t.Error("light-space matrix differs between identical calls")
	}

	// Built by hand from the preset definition.
	caster, _ := ls.Preset("dramatic")
	projection := mgl32.Ortho(-20, 20, -20, 20, 1, 50)
	view := mgl32.LookAtV(
		caster[0].Position,
		caster[0].Position.Add(caster[0].SpotDirection),
		mgl32.Vec3{0, 1, 0})
	want := projection.Mul4(view)
	if first != want {
		t.Errorf("light-space matrix = %v, want %v", first, want)
	}

	if ls.LightSpaceMatrix("balanced") == first {
		t.Error("balanced and dramatic rigs produced the same matrix")
	}
}
