package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer/components"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
	"github.com/spaghettifunk/tavolo/engine/systems"
)

// Light presets selected by scene phase: the balanced rig is uploaded
// once at preparation, the dramatic rig drives every rendered frame.
const (
	preparationLightPreset = "balanced"
	renderLightPreset      = "dramatic"
)

// Tabletop is the scene orchestrator. It owns the fixed object list and
// sequences the two shadow passes per frame; GPU resources stay with the
// systems that created them.
type Tabletop struct {
	systems *systems.SystemManager
	camera  *components.Camera

	objects        []systems.SceneObject
	loadedTextures int

	lastMouseX float64
	lastMouseY float64
	mouseSeen  bool
}

func NewTabletop(sm *systems.SystemManager) *Tabletop {
	return &Tabletop{
		systems: sm,
		camera:  components.NewCamera(CameraPosition),
	}
}

// Prepare loads every scene resource: shader programs, mesh primitives,
// the nine content textures, the preparation light rig and the shadow
// framebuffer. Texture failures degrade the scene; shader and shadow
// failures abort startup.
func (t *Tabletop) Prepare(shadowResolution int32) error {
	if err := t.systems.ShaderSystem.Initialize(); err != nil {
		return err
	}
	if err := t.systems.MeshSystem.LoadAll(); err != nil {
		return err
	}

	t.loadTextures()

	sceneShader := t.systems.ShaderSystem.SceneShader()
	t.systems.LightSystem.Apply(sceneShader, preparationLightPreset)
	t.systems.RenderSystem.SetView(t.camera.GetView(), t.camera.Position)

	if err := t.systems.ShadowSystem.Initialize(shadowResolution); err != nil {
		return fmt.Errorf("preparing scene: %w", err)
	}

	t.objects = buildObjects()
	core.LogInfo("scene prepared: %d textures, %d objects", t.loadedTextures, len(t.objects))
	return nil
}

func (t *Tabletop) loadTextures() {
	textures := []struct {
		file string
		tag  string
	}{
		{deskTextureFile, DeskTexture},
		{laptopTextureFile, LaptopTexture},
		{screenTextureFile, ScreenTexture},
		{mugTextureFile, MugTexture},
		{handleTextureFile, HandleTexture},
		{floorTextureFile, FloorTexture},
		{wallTextureFile, WallTexture},
		{lampShadeTextureFile, LampShadeTexture},
		{lampBaseTextureFile, LampBaseTexture},
	}
	for _, tex := range textures {
		if err := t.systems.TextureSystem.Load(tex.file, tex.tag); err != nil {
			core.LogWarn("scene continues without texture %q: %v", tex.tag, err)
			continue
		}
		t.loadedTextures++
	}
}

// LoadedTextures reports how many content textures loaded successfully.
func (t *Tabletop) LoadedTextures() int {
	return t.loadedTextures
}

// Objects returns the draw list shared by both shadow passes.
func (t *Tabletop) Objects() []systems.SceneObject {
	return t.objects
}

// Camera exposes the viewer camera for input plumbing.
func (t *Tabletop) Camera() *components.Camera {
	return t.camera
}

// Update applies movement and projection input for the frame.
func (t *Tabletop) Update(deltaTime float64) error {
	dt := float32(deltaTime)

	if core.IsKeyDown(core.KEY_W) {
		t.camera.ProcessKeyboard(components.Forward, dt)
	}
	if core.IsKeyDown(core.KEY_S) {
		t.camera.ProcessKeyboard(components.Backward, dt)
	}
	if core.IsKeyDown(core.KEY_A) {
		t.camera.ProcessKeyboard(components.Left, dt)
	}
	if core.IsKeyDown(core.KEY_D) {
		t.camera.ProcessKeyboard(components.Right, dt)
	}
	if core.IsKeyDown(core.KEY_Q) {
		t.camera.ProcessKeyboard(components.Up, dt)
	}
	if core.IsKeyDown(core.KEY_E) {
		t.camera.ProcessKeyboard(components.Down, dt)
	}

	if core.IsKeyDown(core.KEY_P) && !core.WasKeyDown(core.KEY_P) {
		t.systems.RenderSystem.SetProjectionMode(true)
	}
	if core.IsKeyDown(core.KEY_O) && !core.WasKeyDown(core.KEY_O) {
		t.systems.RenderSystem.SetProjectionMode(false)
	}

	mouseX, mouseY := core.MousePosition()
	if !t.mouseSeen {
		t.lastMouseX, t.lastMouseY = mouseX, mouseY
		t.mouseSeen = true
	}
	// Screen Y grows downward, pitch grows upward.
	t.camera.ProcessMouseMovement(float32(mouseX-t.lastMouseX), float32(t.lastMouseY-mouseY))
	t.lastMouseX, t.lastMouseY = mouseX, mouseY

	return nil
}

// Render draws one frame: depth pass from the light's view, then the lit
// pass over the identical object list.
func (t *Tabletop) Render(deltaTime float64) error {
	lightSpace := t.systems.LightSystem.LightSpaceMatrix(renderLightPreset)

	if err := t.systems.ShadowSystem.RunDepthPass(lightSpace, t.objects); err != nil {
		return err
	}

	t.systems.RenderSystem.SetView(t.camera.GetView(), t.camera.Position)
	return t.systems.ShadowSystem.RunLitPass(lightSpace, t.objects, renderLightPreset)
}

// OnResize forwards the new framebuffer size to the dispatcher.
func (t *Tabletop) OnResize(width, height uint32) error {
	t.systems.RenderSystem.OnResize(width, height)
	return nil
}

// buildObjects enumerates the fixed scene in draw order. The identical
// list feeds both passes, which is what keeps shadows on their casters.
func buildObjects() []systems.SceneObject {
	objects := []systems.SceneObject{
		{
			Mesh:        metadata.MeshBox,
			Scale:       DeskScale,
			Rotation:    DeskRotation,
			Translation: DeskPosition,
			TextureTag:  DeskTexture,
			MaterialTag: "wood",
			UVScale:     DefaultUVScale,
		},
	}

	objects = append(objects,
		systems.SceneObject{
			Mesh:        metadata.MeshCylinder,
			Scale:       MugBodyScale,
			Rotation:    MugBodyRotation,
			Translation: MugBodyPosition,
			TextureTag:  MugTexture,
			MaterialTag: "ceramic",
			UVScale:     DefaultUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshTorus,
			Scale:       MugHandleScale,
			Rotation:    MugHandleRotation,
			Translation: MugHandlePosition,
			TextureTag:  HandleTexture,
			MaterialTag: "ceramic",
			UVScale:     DefaultUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshBox,
			Scale:       LaptopBaseScale,
			Rotation:    LaptopBaseRotation,
			Translation: LaptopBasePosition,
			TextureTag:  LaptopTexture,
			MaterialTag: "metal",
			UVScale:     LaptopUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshBox,
			Scale:       LaptopScreenScale,
			Rotation:    LaptopScreenRotation,
			Translation: LaptopScreenPosition,
			TextureTag:  LaptopTexture,
			MaterialTag: "metal",
			UVScale:     LaptopUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshBox,
			Scale:       DisplayPanelScale,
			Rotation:    DisplayPanelRotation,
			Translation: DisplayPanelPosition,
			TextureTag:  ScreenTexture,
			MaterialTag: "metal",
			UVScale:     DefaultUVScale,
		},
	)

	objects = append(objects, keyGrid()...)

	objects = append(objects,
		systems.SceneObject{
			Mesh:        metadata.MeshCylinder,
			Scale:       LampBaseScale,
			Translation: LampBasePosition,
			TextureTag:  LampBaseTexture,
			MaterialTag: "lamp-base",
			UVScale:     DefaultUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshCylinder,
			Scale:       LampStemScale,
			Translation: LampStemPosition,
			TextureTag:  LampBaseTexture,
			MaterialTag: "lamp-base",
			UVScale:     DefaultUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshCone,
			Scale:       LampShadeScale,
			Translation: LampShadePosition,
			TextureTag:  LampShadeTexture,
			MaterialTag: "lamp-shade",
			UVScale:     DefaultUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshBox,
			Scale:       FloorScale,
			Translation: FloorPosition,
			TextureTag:  FloorTexture,
			MaterialTag: "stone",
			UVScale:     FloorUVScale,
		},
		systems.SceneObject{
			Mesh:        metadata.MeshBox,
			Scale:       WallScale,
			Translation: WallPosition,
			TextureTag:  WallTexture,
			MaterialTag: "stone",
			UVScale:     WallUVScale,
		},
	)

	return objects
}

// keyGrid lays the 60 keyboard keys on the laptop base.
func keyGrid() []systems.SceneObject {
	keys := make([]systems.SceneObject, 0, KeyRows*KeyCols)
	for r := 0; r < KeyRows; r++ {
		for c := 0; c < KeyCols; c++ {
			keys = append(keys, systems.SceneObject{
				Mesh: metadata.MeshBox,
				Scale: mgl32.Vec3{KeyWidth, KeyHeight, KeyDepth},
				Translation: mgl32.Vec3{
					KeyStartX + float32(c)*(KeyWidth+KeySpacing),
					KeyY,
					KeyStartZ + float32(r)*(KeyDepth+KeySpacing),
				},
				Color:       KeyColor,
				MaterialTag: "metal",
				UVScale:     DefaultUVScale,
			})
		}
	}
	return keys
}
