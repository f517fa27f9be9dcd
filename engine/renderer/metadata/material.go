package metadata

import "github.com/go-gl/mathgl/mgl32"

// Material is a fixed set of lighting coefficients looked up by tag.
// Immutable once inserted into the material system.
type Material struct {
	Tag             string
	AmbientColor    mgl32.Vec3
	AmbientStrength float32
	DiffuseColor    mgl32.Vec3
	SpecularColor   mgl32.Vec3
	Shininess       float32
}
