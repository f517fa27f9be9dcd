package systems

import (
	"fmt"
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// Segment counts for the curved primitives. All shape variation beyond
// this comes from the model transform.
const (
	cylinderSegments   = 32
	coneSegments       = 32
	torusMajorSegments = 32
	torusMinorSegments = 16
)

// MeshSystem generates and owns the unit primitives. Each kind is
// uploaded at most once; drawing an unloaded kind is a logged no-op.
type MeshSystem struct {
	backend renderer.Backend
	meshes  map[metadata.MeshKind]*metadata.Geometry
}

func NewMeshSystem(backend renderer.Backend) (*MeshSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("mesh system requires a backend")
	}
	return &MeshSystem{
		backend: backend,
		meshes:  make(map[metadata.MeshKind]*metadata.Geometry),
	}, nil
}

// LoadMesh generates the unit geometry for kind and uploads it. Loading a
// kind twice is harmless.
func (ms *MeshSystem) LoadMesh(kind metadata.MeshKind) error {
	if _, ok := ms.meshes[kind]; ok {
		return nil
	}

	var vertices []metadata.Vertex
	var indices []uint32
	switch kind {
	case metadata.MeshBox:
		vertices, indices = generateBox()
	case metadata.MeshCylinder:
		vertices, indices = generateCylinder(cylinderSegments)
	case metadata.MeshCone:
		vertices, indices = generateCone(coneSegments)
	case metadata.MeshTorus:
		vertices, indices = generateTorus(torusMajorSegments, torusMinorSegments)
	case metadata.MeshPlane:
		vertices, indices = generatePlane()
	default:
		return fmt.Errorf("unknown mesh kind %d", kind)
	}

	geometry := &metadata.Geometry{
		Kind:     kind,
		Vertices: vertices,
		Indices:  indices,
		Handle:   metadata.InvalidHandle,
	}
	if err := ms.backend.GeometryCreate(geometry); err != nil {
		return fmt.Errorf("mesh %s: %w", kind, err)
	}

	ms.meshes[kind] = geometry
	core.LogDebug("mesh %s uploaded (%d vertices, %d indices)", kind, len(vertices), len(indices))
	return nil
}

// LoadAll uploads every primitive kind.
func (ms *MeshSystem) LoadAll() error {
	for _, kind := range metadata.MeshKinds() {
		if err := ms.LoadMesh(kind); err != nil {
			return err
		}
	}
	return nil
}

// DrawMesh issues a draw for the named kind with whatever shader and
// uniform state is currently bound.
func (ms *MeshSystem) DrawMesh(kind metadata.MeshKind) {
	geometry, ok := ms.meshes[kind]
	if !ok {
		core.LogWarn("mesh %s drawn before being loaded", kind)
		return
	}
	ms.backend.GeometryDraw(geometry)
}

func (ms *MeshSystem) Shutdown() error {
	for _, geometry := range ms.meshes {
		ms.backend.GeometryDestroy(geometry)
	}
	ms.meshes = make(map[metadata.MeshKind]*metadata.Geometry)
	return nil
}

// generateBox produces a unit cube centered at the origin with per-face
// normals and full-face UVs.
func generateBox() ([]metadata.Vertex, []uint32) {
	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	const h = 0.5
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var vertices []metadata.Vertex
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, corner := range f.corners {
			vertices = append(vertices, metadata.Vertex{
				Position: corner,
				Normal:   f.normal,
				UV:       uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// generatePlane produces a unit quad in the XZ plane facing up.
func generatePlane() ([]metadata.Vertex, []uint32) {
	const h = 0.5
	normal := mgl32.Vec3{0, 1, 0}
	vertices := []metadata.Vertex{
		{Position: mgl32.Vec3{-h, 0, h}, Normal: normal, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{h, 0, h}, Normal: normal, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{h, 0, -h}, Normal: normal, UV: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{-h, 0, -h}, Normal: normal, UV: mgl32.Vec2{0, 1}},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}

// generateCylinder produces a unit-radius, unit-height cylinder standing
// on the XZ plane, with caps.
func generateCylinder(segments int) ([]metadata.Vertex, []uint32) {
	var vertices []metadata.Vertex
	var indices []uint32

	// Side wall, with duplicated seam vertices so UVs wrap cleanly.
	for i := 0; i <= segments; i++ {
		angle := 2 * stdmath.Pi * float64(i) / float64(segments)
		x := float32(stdmath.Cos(angle))
		z := float32(stdmath.Sin(angle))
		u := float32(i) / float32(segments)
		normal := mgl32.Vec3{x, 0, z}
		vertices = append(vertices,
			metadata.Vertex{Position: mgl32.Vec3{x, 0, z}, Normal: normal, UV: mgl32.Vec2{u, 0}},
			metadata.Vertex{Position: mgl32.Vec3{x, 1, z}, Normal: normal, UV: mgl32.Vec2{u, 1}},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+2, base+1, base+1, base+2, base+3)
	}

	// Caps.
	for _, end := range []struct {
		y      float32
		normal mgl32.Vec3
	}{{0, mgl32.Vec3{0, -1, 0}}, {1, mgl32.Vec3{0, 1, 0}}} {
		center := uint32(len(vertices))
		vertices = append(vertices, metadata.Vertex{
			Position: mgl32.Vec3{0, end.y, 0},
			Normal:   end.normal,
			UV:       mgl32.Vec2{0.5, 0.5},
		})
		for i := 0; i <= segments; i++ {
			angle := 2 * stdmath.Pi * float64(i) / float64(segments)
			x := float32(stdmath.Cos(angle))
			z := float32(stdmath.Sin(angle))
			vertices = append(vertices, metadata.Vertex{
				Position: mgl32.Vec3{x, end.y, z},
				Normal:   end.normal,
				UV:       mgl32.Vec2{0.5 + x/2, 0.5 + z/2},
			})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			b := center + 2 + uint32(i)
			if end.normal.Y() > 0 {
				indices = append(indices, center, a, b)
			} else {
				indices = append(indices, center, b, a)
			}
		}
	}

	return vertices, indices
}

// generateCone produces a unit-radius, unit-height cone standing on the
// XZ plane, apex up, with a bottom cap.
func generateCone(segments int) ([]metadata.Vertex, []uint32) {
	var vertices []metadata.Vertex
	var indices []uint32

	// Slanted side. The apex vertex is duplicated per segment so each
	// triangle carries its own normal and UV seam.
	slant := float32(stdmath.Sqrt(2)) / 2
	for i := 0; i < segments; i++ {
		a0 := 2 * stdmath.Pi * float64(i) / float64(segments)
		a1 := 2 * stdmath.Pi * float64(i+1) / float64(segments)
		am := (a0 + a1) / 2

		x0, z0 := float32(stdmath.Cos(a0)), float32(stdmath.Sin(a0))
		x1, z1 := float32(stdmath.Cos(a1)), float32(stdmath.Sin(a1))
		n0 := mgl32.Vec3{x0 * slant, slant, z0 * slant}
		n1 := mgl32.Vec3{x1 * slant, slant, z1 * slant}
		nm := mgl32.Vec3{float32(stdmath.Cos(am)) * slant, slant, float32(stdmath.Sin(am)) * slant}

		base := uint32(len(vertices))
		vertices = append(vertices,
			metadata.Vertex{Position: mgl32.Vec3{x0, 0, z0}, Normal: n0, UV: mgl32.Vec2{float32(i) / float32(segments), 0}},
			metadata.Vertex{Position: mgl32.Vec3{x1, 0, z1}, Normal: n1, UV: mgl32.Vec2{float32(i+1) / float32(segments), 0}},
			metadata.Vertex{Position: mgl32.Vec3{0, 1, 0}, Normal: nm, UV: mgl32.Vec2{(float32(i) + 0.5) / float32(segments), 1}},
		)
		indices = append(indices, base, base+2, base+1)
	}

	// Bottom cap.
	center := uint32(len(vertices))
	down := mgl32.Vec3{0, -1, 0}
	vertices = append(vertices, metadata.Vertex{Position: mgl32.Vec3{0, 0, 0}, Normal: down, UV: mgl32.Vec2{0.5, 0.5}})
	for i := 0; i <= segments; i++ {
		angle := 2 * stdmath.Pi * float64(i) / float64(segments)
		x := float32(stdmath.Cos(angle))
		z := float32(stdmath.Sin(angle))
		vertices = append(vertices, metadata.Vertex{
			Position: mgl32.Vec3{x, 0, z},
			Normal:   down,
			UV:       mgl32.Vec2{0.5 + x/2, 0.5 + z/2},
		})
	}
	for i := 0; i < segments; i++ {
		indices = append(indices, center, center+2+uint32(i), center+1+uint32(i))
	}

	return vertices, indices
}

// generateTorus produces a torus in the XZ plane with major radius 1 and
// minor radius 0.3.
func generateTorus(majorSegments, minorSegments int) ([]metadata.Vertex, []uint32) {
	const minorRadius = 0.3
	var vertices []metadata.Vertex
	var indices []uint32

	for i := 0; i <= majorSegments; i++ {
		major := 2 * stdmath.Pi * float64(i) / float64(majorSegments)
		cMaj, sMaj := stdmath.Cos(major), stdmath.Sin(major)
		for j := 0; j <= minorSegments; j++ {
			minor := 2 * stdmath.Pi * float64(j) / float64(minorSegments)
			cMin, sMin := stdmath.Cos(minor), stdmath.Sin(minor)

			position := mgl32.Vec3{
				float32((1 + minorRadius*cMin) * cMaj),
				float32(minorRadius * sMin),
				float32((1 + minorRadius*cMin) * sMaj),
			}
			normal := mgl32.Vec3{
				float32(cMin * cMaj),
				float32(sMin),
				float32(cMin * sMaj),
			}
			vertices = append(vertices, metadata.Vertex{
				Position: position,
				Normal:   normal,
				UV: mgl32.Vec2{
					float32(i) / float32(majorSegments),
					float32(j) / float32(minorSegments),
				},
			})
		}
	}

	ring := uint32(minorSegments + 1)
	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			a := uint32(i)*ring + uint32(j)
			b := a + ring
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return vertices, indices
}
