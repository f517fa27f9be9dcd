package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// ImageLoader decodes JPEG and PNG files into tightly packed RGBA pixels.
// Rows are flipped vertically so that UV (0,0) addresses the bottom-left
// corner, which is what the GPU samplers expect.
type ImageLoader struct{}

func (l *ImageLoader) Load(path string) (interface{}, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", path, err)
	}
	defer file.Close()

	src, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("image %q: decoding: %w", path, err)
	}

	channels := channelCount(src, format)
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("image %q: unsupported channel count %d", path, channels)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(rgba, rgba.Bounds(), src, bounds.Min, xdraw.Src)

	flipped := make([]uint8, len(rgba.Pix))
	rowLen := width * 4
	for y := 0; y < height; y++ {
		srcRow := rgba.Pix[y*rgba.Stride : y*rgba.Stride+rowLen]
		copy(flipped[(height-1-y)*rowLen:], srcRow)
	}

	return &metadata.TexturePixels{
		Pixels:       flipped,
		Width:        uint32(width),
		Height:       uint32(height),
		ChannelCount: uint8(channels),
	}, nil
}

// channelCount reports the channel count of the source file, not of the
// RGBA buffer handed to the GPU. JPEG never carries alpha.
func channelCount(img image.Image, format string) int {
	if format == "jpeg" {
		return 3
	}
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.Paletted:
		return 4
	default:
		return 3
	}
}
