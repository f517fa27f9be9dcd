package scene

import "github.com/go-gl/mathgl/mgl32"

// Texture registry tags.
const (
	DeskTexture      = "deskTexture"
	LaptopTexture    = "laptopTex"
	ScreenTexture    = "screenTex"
	MugTexture       = "mugTex"
	HandleTexture    = "handleTex"
	FloorTexture     = "floorTex"
	WallTexture      = "wallTex"
	LampShadeTexture = "lampShadeTex"
	LampBaseTexture  = "lampBaseTex"
)

// Texture files resolved under the asset directory.
const (
	deskTextureFile      = "rusticwood.jpg"
	laptopTextureFile    = "stainless.jpg"
	screenTextureFile    = "wallpaper.jpg"
	mugTextureFile       = "tilesf2.jpg"
	handleTextureFile    = "stainedglass.jpg"
	floorTextureFile     = "pavers.jpg"
	wallTextureFile      = "backdrop.jpg"
	lampShadeTextureFile = "circular-brushed-gold-texture.jpg"
	lampBaseTextureFile  = "stainless_end.jpg"
)

// Camera start pose.
var CameraPosition = mgl32.Vec3{0.0, 5.0, 15.0}

// Object transforms. Rotations are degrees, applied X then Y then Z.
var (
	DeskScale    = mgl32.Vec3{38.0, 0.475, 23.75}
	DeskPosition = mgl32.Vec3{0.0, -0.5, -5.0}
	DeskRotation = mgl32.Vec3{0.0, 0.0, 0.0}

	MugBodyScale    = mgl32.Vec3{0.575, 1.725, 0.575}
	MugBodyPosition = mgl32.Vec3{5.0, 0.75, -2.0}
	MugBodyRotation = mgl32.Vec3{15.0, 20.0, 0.0}

	MugHandleScale    = mgl32.Vec3{0.36225, 0.36225, 0.36225}
	MugHandlePosition = mgl32.Vec3{5.5, 1.5, -2.0}
	MugHandleRotation = mgl32.Vec3{0.0, 0.0, 90.0}

	LaptopBaseScale    = mgl32.Vec3{6.6, 0.11, 4.4}
	LaptopBasePosition = mgl32.Vec3{0.0, 0.88, -0.55}
	LaptopBaseRotation = mgl32.Vec3{0.0, 0.0, 0.0}

	LaptopScreenScale    = mgl32.Vec3{6.6, 3.3, 0.11}
	LaptopScreenPosition = mgl32.Vec3{0.0, 1.76, -2.2}
	LaptopScreenRotation = mgl32.Vec3{-45.0, 0.0, 0.0}

	DisplayPanelScale    = mgl32.Vec3{6.05, 3.08, 0.055}
	DisplayPanelPosition = mgl32.Vec3{0.0, 1.76, -2.145}
	DisplayPanelRotation = mgl32.Vec3{-45.0, 0.0, 0.0}

	LampBaseScale    = mgl32.Vec3{1.0, 0.4, 1.0}
	LampBasePosition = mgl32.Vec3{-6.0, 0.2, 2.0}

	LampStemScale    = mgl32.Vec3{0.12, 2.8, 0.12}
	LampStemPosition = mgl32.Vec3{-6.0, 0.5, 2.0}

	LampShadeScale    = mgl32.Vec3{1.4, 1.2, 1.4}
	LampShadePosition = mgl32.Vec3{-6.0, 2.5, 2.0}

	FloorScale    = mgl32.Vec3{62.4, 0.13, 32.5}
	FloorPosition = mgl32.Vec3{0.0, -5.0, -5.0}

	WallScale = mgl32.Vec3{62.4, 26.0, 0.65}
	// The wall sits on the floor's top face, pushed to the back edge.
	WallPosition = mgl32.Vec3{
		0.0,
		FloorPosition[1] + FloorScale[1]/2 + WallScale[1]/2,
		-21.25,
	}
)

// Keyboard key grid. Keys fill ROWS x COLS cells; cell origin is
// (KeyStartX + c*(KeyWidth+KeySpacing), KeyY, KeyStartZ + r*(KeyDepth+KeySpacing)).
const (
	KeyRows    = 5
	KeyCols    = 12
	KeyWidth   = 0.385
	KeyHeight  = 0.11
	KeyDepth   = 0.33
	KeySpacing = 0.055
	KeyStartX  = -2.31
	KeyY       = 0.902
	KeyStartZ  = -1.1
)

var KeyColor = mgl32.Vec4{0.15, 0.15, 0.15, 1.0}

// UV tiling per surface.
var (
	DefaultUVScale = mgl32.Vec2{1.0, 1.0}
	LaptopUVScale  = mgl32.Vec2{2.0, 2.0}
	WallUVScale    = mgl32.Vec2{2.0, 2.0}
	FloorUVScale   = mgl32.Vec2{4.0, 4.0}
)
