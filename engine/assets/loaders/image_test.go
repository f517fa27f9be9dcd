package loaders

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

func decodeFixture(t *testing.T, path string) *metadata.TexturePixels {
	t.Helper()
	loader := &ImageLoader{}
	result, err := loader.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	pixels, ok := result.(*metadata.TexturePixels)
	if !ok {
		t.Fatalf("loader returned %T, want *metadata.TexturePixels", result)
	}
	return pixels
}

func TestImageLoaderFlipsRows(t *testing.T) {
	// Top row red, bottom row blue; after the flip the buffer starts with
	// the blue row.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "flip.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	pixels := decodeFixture(t, path)
	if pixels.Width != 2 || pixels.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", pixels.Width, pixels.Height)
	}
	if pixels.ChannelCount != 4 {
		t.Errorf("channel count = %d, want 4 for PNG with alpha", pixels.ChannelCount)
	}
	// First row of the buffer is the image's bottom row.
	if pixels.Pixels[2] != 255 {
		t.Errorf("first row blue channel = %d, want 255 after vertical flip", pixels.Pixels[2])
	}
	if pixels.Pixels[8] != 255 {
		t.Errorf("second row red channel = %d, want 255 after vertical flip", pixels.Pixels[8])
	}
}

func TestImageLoaderJPEGReportsThreeChannels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "photo.jpg")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(file, img, nil); err != nil {
		t.Fatal(err)
	}
	file.Close()

	pixels := decodeFixture(t, path)
	if pixels.ChannelCount != 3 {
		t.Errorf("channel count = %d, want 3 for JPEG", pixels.ChannelCount)
	}
	// The GPU buffer is still packed RGBA regardless of the source format.
	if len(pixels.Pixels) != 4*4*4 {
		t.Errorf("buffer length = %d, want %d", len(pixels.Pixels), 4*4*4)
	}
}

func TestImageLoaderRejectsGrayscale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "gray.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	file.Close()

	loader := &ImageLoader{}
	if _, err := loader.Load(path); err == nil {
		t.Error("grayscale image loaded, want an unsupported-channel error")
	}
}

func TestImageLoaderMissingFile(t *testing.T) {
	loader := &ImageLoader{}
	if _, err := loader.Load(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("missing file loaded without error")
	}
}

func TestShaderLoaderReadsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.vert")
	source := "#version 410 core\nvoid main() {}\n"
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &ShaderLoader{}
	result, err := loader.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if result.(string) != source {
		t.Error("loaded source differs from the file contents")
	}
}

func TestShaderLoaderRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.frag")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &ShaderLoader{}
	if _, err := loader.Load(path); err == nil {
		t.Error("empty shader file loaded without error")
	}
}
