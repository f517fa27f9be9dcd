package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func buildAssetTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	texDir := filepath.Join(root, "textures")
	if err := os.MkdirAll(texDir, 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	file, err := os.Create(filepath.Join(texDir, "red.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	shaderDir := filepath.Join(root, "shaders")
	if err := os.MkdirAll(shaderDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shaderDir, "basic.vert"), []byte("void main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Files with unknown extensions never enter the index.
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func newTestManager(t *testing.T) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(buildAssetTree(t)); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(am.Shutdown)
	return am
}

func TestLoadImageFromIndex(t *testing.T) {
	am := newTestManager(t)

	pixels, err := am.LoadImage("red.png")
	if err != nil {
		t.Fatal(err)
	}
	if pixels.Width != 2 || pixels.Height != 2 {
		t.Errorf("decoded %dx%d, want 2x2", pixels.Width, pixels.Height)
	}
	if pixels.Pixels[0] != 255 {
		t.Errorf("red channel = %d, want 255", pixels.Pixels[0])
	}
}

func TestLoadShaderSourceFromIndex(t *testing.T) {
	am := newTestManager(t)

	source, err := am.LoadShaderSource("basic.vert")
	if err != nil {
		t.Fatal(err)
	}
	if source != "void main() {}\n" {
		t.Errorf("source = %q", source)
	}
}

func TestLoadUnindexedAssetFails(t *testing.T) {
	am := newTestManager(t)

	if _, err := am.LoadImage("absent.png"); err == nil {
		t.Error("missing texture loaded without error")
	}
	if _, err := am.LoadShaderSource("absent.frag"); err == nil {
		t.Error("missing shader loaded without error")
	}
	// Indexed under a different type.
	if _, err := am.LoadImage("../shaders/basic.vert"); err == nil {
		t.Error("shader file loaded as an image")
	}
}

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want AssetType
	}{
		{"textures/wood.png", AssetTypeImage},
		{"textures/wood.jpg", AssetTypeImage},
		{"textures/wood.jpeg", AssetTypeImage},
		{"shaders/scene.vert", AssetTypeShader},
		{"shaders/scene.frag", AssetTypeShader},
		{"shaders/common.glsl", AssetTypeShader},
		{"README.md", AssetTypeNone},
		{"notes.txt", AssetTypeNone},
	}
	for _, tc := range tests {
		if got := determineAssetType(tc.path); got != tc.want {
			t.Errorf("determineAssetType(%q) = %d, want %d", tc.path, got, tc.want)
		}
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	am := newTestManager(t)
	am.Shutdown()
	am.Shutdown()
}
