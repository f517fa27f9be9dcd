package metadata

import "github.com/go-gl/mathgl/mgl32"

// MeshKind identifies one of the primitive shapes the mesh system can
// generate. All shape variation beyond the kind comes from the model
// transform.
type MeshKind uint8

const (
	MeshBox MeshKind = iota
	MeshCylinder
	MeshCone
	MeshTorus
	MeshPlane
	meshKindCount
)

func (k MeshKind) String() string {
	switch k {
	case MeshBox:
		return "box"
	case MeshCylinder:
		return "cylinder"
	case MeshCone:
		return "cone"
	case MeshTorus:
		return "torus"
	case MeshPlane:
		return "plane"
	}
	return "unknown"
}

// MeshKinds lists every primitive in load order.
func MeshKinds() []MeshKind {
	kinds := make([]MeshKind, 0, meshKindCount)
	for k := MeshKind(0); k < meshKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Vertex is the interleaved attribute layout shared by every mesh:
// position, normal, texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Geometry is a generated primitive ready for GPU upload.
type Geometry struct {
	Kind     MeshKind
	Vertices []Vertex
	Indices  []uint32
	// Handle is the backend-assigned vertex array object.
	Handle uint32
}
