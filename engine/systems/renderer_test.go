package systems

import (
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
)

// newTestDispatcher wires a render system against compiled fake shaders
// and an empty texture registry.
func newTestDispatcher(t *testing.T, backend *fakeBackend, textureFiles ...string) (*RenderSystem, *TextureSystem, *ShaderSystem) {
	t.Helper()
	am := newTestAssets(t, textureFiles...)

	shaders, err := NewShaderSystem(backend, am)
	if err != nil {
		t.Fatal(err)
	}
	if err := shaders.Initialize(); err != nil {
		t.Fatal(err)
	}

	textures, err := NewTextureSystem(backend, am)
	if err != nil {
		t.Fatal(err)
	}

	rs, err := NewRenderSystem(backend, textures, shaders, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	return rs, textures, shaders
}

func TestComposeTransformOrder(t *testing.T) {
	// Scale, then rotate 90 degrees about X, then translate. The unit Y
	// vector must end up on +Z before the translation shifts it.
	m := ComposeTransform(mgl32.Vec3{1, 2, 1}, 90, 0, 0, mgl32.Vec3{5, 0, 0})
	got := m.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	want := mgl32.Vec4{5, 0, 2, 1}

	for i := 0; i < 4; i++ {
		if stdmath.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Fatalf("transformed point = %v, want %v", got, want)
		}
	}
}

func TestComposeTransformMatchesComponents(t *testing.T) {
	scale := mgl32.Vec3{2, 3, 4}
	translation := mgl32.Vec3{1, -2, 7}
	m := ComposeTransform(scale, 15, 20, 90, translation)

	want := mgl32.Translate3D(1, -2, 7).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(15))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(20))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 3, 4))

	if m != want {
		t.Errorf("composed matrix = %v, want %v", m, want)
	}
}

func TestProjectionToggleRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	rs, _, _ := newTestDispatcher(t, backend)

	if !rs.Perspective() {
		t.Fatal("dispatcher must start in perspective mode")
	}
	initial := rs.ProjectionMatrix()

	rs.SetProjectionMode(false)
	if rs.Perspective() {
		t.Fatal("still perspective after switching to orthographic")
	}
	ortho := rs.ProjectionMatrix()
	if ortho == initial {
		t.Fatal("orthographic matrix identical to perspective matrix")
	}

	rs.SetProjectionMode(true)
	if rs.ProjectionMatrix() != initial {
		t.Error("round-tripped perspective matrix differs from the original")
	}
}

func TestProjectionUploadedOnModeChange(t *testing.T) {
	backend := newFakeBackend()
	rs, _, _ := newTestDispatcher(t, backend)

	rs.SetProjectionMode(false)

	got, ok := backend.uniforms["scene"]["projection"]
	if !ok {
		t.Fatal("projection uniform never uploaded")
	}
	if got.(mgl32.Mat4) != rs.ProjectionMatrix() {
		t.Error("uploaded projection does not match the stored matrix")
	}
}

func TestProjectionChangeFiresEvent(t *testing.T) {
	if !core.EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	t.Cleanup(func() { core.EventSystemShutdown() })

	var modes []bool
	core.EventRegister(core.EVENT_CODE_PROJECTION_CHANGED, func(ctx core.EventContext) {
		pe, ok := ctx.Data.(*core.ProjectionEvent)
		if !ok {
			t.Errorf("wrong payload type %T", ctx.Data)
			return
		}
		modes = append(modes, pe.Perspective)
	})

	backend := newFakeBackend()
	rs, _, _ := newTestDispatcher(t, backend)
	rs.SetProjectionMode(false)
	rs.SetProjectionMode(true)

	// The constructor's initial perspective setup fires too.
	want := []bool{true, false, true}
	if len(modes) != len(want) {
		t.Fatalf("event fired %d times, want %d", len(modes), len(want))
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("event %d perspective = %v, want %v", i, modes[i], want[i])
		}
	}
}

func TestSetTextureMissIsNoOp(t *testing.T) {
	backend := newFakeBackend()
	rs, _, _ := newTestDispatcher(t, backend)

	rs.SetSolidColor(1, 0, 0, 1)
	before := len(backend.uniformHistory)

	rs.SetTexture("never-loaded")

	if len(backend.uniformHistory) != before {
		t.Error("missing texture tag wrote uniforms, want untouched state")
	}
	if got := backend.uniforms["scene"]["bUseTexture"]; got != int32(0) {
		t.Errorf("bUseTexture = %v, want 0 from the preceding solid color", got)
	}
}

func TestSetTextureHitSelectsSlot(t *testing.T) {
	backend := newFakeBackend()
	rs, textures, _ := newTestDispatcher(t, backend, "a.png", "b.png")

	if err := textures.Load("a.png", "first"); err != nil {
		t.Fatal(err)
	}
	if err := textures.Load("b.png", "second"); err != nil {
		t.Fatal(err)
	}

	rs.SetTexture("second")

	uniforms := backend.uniforms["scene"]
	if got := uniforms["bUseTexture"]; got != int32(1) {
		t.Errorf("bUseTexture = %v, want 1", got)
	}
	if got := uniforms["objectTexture"]; got != int32(1) {
		t.Errorf("objectTexture = %v, want slot 1", got)
	}
}

func TestSetTransformMirrorsToDepthShaderDuringDepthPass(t *testing.T) {
	backend := newFakeBackend()
	rs, _, _ := newTestDispatcher(t, backend)

	rs.SetTransform(mgl32.Vec3{1, 1, 1}, 0, 0, 0, mgl32.Vec3{1, 2, 3})
	if n := len(backend.modelWrites("depth")); n != 0 {
		t.Fatalf("depth shader received %d model writes outside a depth pass", n)
	}

	rs.setDepthPassActive(true)
	rs.SetTransform(mgl32.Vec3{2, 2, 2}, 0, 45, 0, mgl32.Vec3{0, 1, 0})
	rs.setDepthPassActive(false)

	sceneWrites := backend.modelWrites("scene")
	depthWrites := backend.modelWrites("depth")
	if len(depthWrites) != 1 {
		t.Fatalf("depth shader received %d model writes during the pass, want 1", len(depthWrites))
	}
	if sceneWrites[len(sceneWrites)-1] != depthWrites[0] {
		t.Error("depth and scene model matrices differ for the same draw")
	}
}

func TestOnResizeRebuildsProjection(t *testing.T) {
	backend := newFakeBackend()
	rs, _, _ := newTestDispatcher(t, backend)
	initial := rs.ProjectionMatrix()

	rs.OnResize(1920, 1080)

	w, h := rs.Size()
	if w != 1920 || h != 1080 {
		t.Errorf("size = %dx%d, want 1920x1080", w, h)
	}
	if rs.ProjectionMatrix() == initial {
		t.Error("projection unchanged after aspect-ratio change")
	}

	rs.OnResize(0, 1080)
	if w, _ := rs.Size(); w != 1920 {
		t.Error("zero-sized resize must be ignored")
	}
}
