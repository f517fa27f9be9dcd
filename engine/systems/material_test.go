package systems

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

func TestMaterialFirstMatchWins(t *testing.T) {
	backend := newFakeBackend()
	ms, err := NewMaterialSystem(backend)
	if err != nil {
		t.Fatal(err)
	}

	first := metadata.Material{Tag: "dup", Shininess: 1}
	second := metadata.Material{Tag: "dup", Shininess: 2}
	ms.Insert(first)
	ms.Insert(second)

	found, ok := ms.Find("dup")
	if !ok {
		t.Fatal("tag not found after insert")
	}
	if found.Shininess != 1 {
		t.Errorf("shininess = %v, want the first-inserted entry (1)", found.Shininess)
	}
}

func TestMaterialPresetTable(t *testing.T) {
	backend := newFakeBackend()
	ms, _ := NewMaterialSystem(backend)

	tests := []struct {
		tag       string
		shininess float32
	}{
		{"wood", 32},
		{"ceramic", 128},
		{"metal", 256},
		{"stone", 64},
		{"lamp-shade", 256},
		{"lamp-base", 256},
		{DefaultMaterialTag, 32},
	}
	for _, tc := range tests {
		m, ok := ms.Find(tc.tag)
		if !ok {
			t.Errorf("preset %q missing", tc.tag)
			continue
		}
		if m.Shininess != tc.shininess {
			t.Errorf("preset %q: shininess = %v, want %v", tc.tag, m.Shininess, tc.shininess)
		}
	}
}

func TestMaterialApplyUploadsAllFields(t *testing.T) {
	backend := newFakeBackend()
	ms, _ := NewMaterialSystem(backend)
	shader := &metadata.Shader{Name: "scene", Program: 1}

	ms.Apply(shader, "wood")

	uniforms := backend.uniforms["scene"]
	if got := uniforms["material.ambientColor"]; got != (mgl32.Vec3{1.0, 0.9, 0.7}) {
		t.Errorf("material.ambientColor = %v", got)
	}
	if got := uniforms["material.ambientStrength"]; got != float32(0.05) {
		t.Errorf("material.ambientStrength = %v", got)
	}
	if got := uniforms["material.diffuseColor"]; got != (mgl32.Vec3{1.0, 0.9, 0.6}) {
		t.Errorf("material.diffuseColor = %v", got)
	}
	if got := uniforms["material.specularColor"]; got != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("material.specularColor = %v", got)
	}
	if got := uniforms["material.shininess"]; got != float32(32.0) {
		t.Errorf("material.shininess = %v", got)
	}
}

func TestMaterialApplyUnknownTagFallsBackToDefault(t *testing.T) {
	backend := newFakeBackend()
	ms, _ := NewMaterialSystem(backend)
	shader := &metadata.Shader{Name: "scene", Program: 1}

	ms.Apply(shader, "no-such-surface")

	uniforms := backend.uniforms["scene"]
	if got := uniforms["material.diffuseColor"]; got != (mgl32.Vec3{1.0, 1.0, 1.0}) {
		t.Errorf("fallback diffuseColor = %v, want default white", got)
	}
	if got := uniforms["material.shininess"]; got != float32(32.0) {
		t.Errorf("fallback shininess = %v, want 32", got)
	}
}
