package metadata

import "github.com/go-gl/mathgl/mgl32"

// MaxActiveLights is the number of light slots the scene shader declares.
const MaxActiveLights = 8

// LightSource mirrors the lightSources[] struct array in the scene shader.
// Cutoff and OuterCutoff hold the cosine of the spot half-angles, not the
// angles themselves.
type LightSource struct {
	Position          mgl32.Vec3
	AmbientColor      mgl32.Vec3
	DiffuseColor      mgl32.Vec3
	SpecularColor     mgl32.Vec3
	FocalStrength     float32
	SpecularIntensity float32
	SpotDirection     mgl32.Vec3
	Cutoff            float32
	OuterCutoff       float32
	Constant          float32
	Linear            float32
	Quadratic         float32
	IsSpot            bool
}
