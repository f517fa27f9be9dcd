package systems

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// DefaultMaterialTag is applied when a lookup misses.
const DefaultMaterialTag = "default"

// MaterialSystem maps string tags to lighting coefficient sets. Entries are
// immutable once inserted and never removed during a session; lookup is a
// linear scan where the first match wins.
type MaterialSystem struct {
	backend   renderer.Backend
	materials []metadata.Material
}

func NewMaterialSystem(backend renderer.Backend) (*MaterialSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("material system requires a backend")
	}
	ms := &MaterialSystem{backend: backend}
	for _, m := range defaultMaterials() {
		ms.Insert(m)
	}
	return ms, nil
}

// Insert appends a material. Duplicate tags are tolerated for
// compatibility with first-match lookup, but almost certainly indicate a
// configuration mistake, so they are logged.
func (ms *MaterialSystem) Insert(material metadata.Material) {
	if _, found := ms.Find(material.Tag); found {
		core.LogWarn("material tag %q already registered, later entry will be shadowed", material.Tag)
	}
	ms.materials = append(ms.materials, material)
}

// Find returns the first material registered under tag.
func (ms *MaterialSystem) Find(tag string) (*metadata.Material, bool) {
	for i := range ms.materials {
		if ms.materials[i].Tag == tag {
			return &ms.materials[i], true
		}
	}
	return nil, false
}

// Apply pushes the coefficient set registered under tag to the shader.
// An unknown tag logs a warning and falls back to the default material so
// the object still renders, just not the way the scene intended.
func (ms *MaterialSystem) Apply(shader *metadata.Shader, tag string) {
	material, found := ms.Find(tag)
	if !found {
		core.LogWarn("material tag %q not found, using %q", tag, DefaultMaterialTag)
		material, found = ms.Find(DefaultMaterialTag)
		if !found {
			return
		}
	}

	ms.backend.SetUniformVec3(shader, "material.ambientColor", material.AmbientColor)
	ms.backend.SetUniformFloat(shader, "material.ambientStrength", material.AmbientStrength)
	ms.backend.SetUniformVec3(shader, "material.diffuseColor", material.DiffuseColor)
	ms.backend.SetUniformVec3(shader, "material.specularColor", material.SpecularColor)
	ms.backend.SetUniformFloat(shader, "material.shininess", material.Shininess)
}

func (ms *MaterialSystem) Shutdown() error {
	ms.materials = nil
	return nil
}

// defaultMaterials is the authoritative preset table. Surface names, not
// object names, so several objects can share a finish.
func defaultMaterials() []metadata.Material {
	return []metadata.Material{
		{
			Tag:             "wood",
			AmbientColor:    mgl32.Vec3{1.0, 0.9, 0.7},
			AmbientStrength: 0.05,
			DiffuseColor:    mgl32.Vec3{1.0, 0.9, 0.6},
			SpecularColor:   mgl32.Vec3{0.5, 0.5, 0.5},
			Shininess:       32.0,
		},
		{
			Tag:             "ceramic",
			AmbientColor:    mgl32.Vec3{0.9, 0.9, 1.0},
			AmbientStrength: 0.05,
			DiffuseColor:    mgl32.Vec3{0.8, 0.8, 0.9},
			SpecularColor:   mgl32.Vec3{1.0, 1.0, 1.0},
			Shininess:       128.0,
		},
		{
			Tag:             "metal",
			AmbientColor:    mgl32.Vec3{0.3, 0.3, 0.3},
			AmbientStrength: 0.03,
			DiffuseColor:    mgl32.Vec3{0.4, 0.4, 0.4},
			SpecularColor:   mgl32.Vec3{0.7, 0.7, 0.7},
			Shininess:       256.0,
		},
		{
			Tag:             "stone",
			AmbientColor:    mgl32.Vec3{0.3, 0.3, 0.3},
			AmbientStrength: 0.03,
			DiffuseColor:    mgl32.Vec3{0.6, 0.6, 0.6},
			SpecularColor:   mgl32.Vec3{0.3, 0.3, 0.3},
			Shininess:       64.0,
		},
		{
			// Golden metallic finish for the shade.
			Tag:             "lamp-shade",
			AmbientColor:    mgl32.Vec3{1.0, 0.8, 0.4},
			AmbientStrength: 0.3,
			DiffuseColor:    mgl32.Vec3{0.9, 0.7, 0.3},
			SpecularColor:   mgl32.Vec3{1.0, 0.9, 0.6},
			Shininess:       256.0,
		},
		{
			// Stainless steel finish for the base and stem.
			Tag:             "lamp-base",
			AmbientColor:    mgl32.Vec3{0.3, 0.3, 0.3},
			AmbientStrength: 0.03,
			DiffuseColor:    mgl32.Vec3{0.4, 0.4, 0.4},
			SpecularColor:   mgl32.Vec3{0.7, 0.7, 0.7},
			Shininess:       256.0,
		},
		{
			Tag:             DefaultMaterialTag,
			AmbientColor:    mgl32.Vec3{1.0, 1.0, 1.0},
			AmbientStrength: 0.05,
			DiffuseColor:    mgl32.Vec3{1.0, 1.0, 1.0},
			SpecularColor:   mgl32.Vec3{1.0, 1.0, 1.0},
			Shininess:       32.0,
		},
	}
}
