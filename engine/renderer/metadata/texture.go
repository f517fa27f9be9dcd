package metadata

import "github.com/spaghettifunk/tavolo/engine/core"

// InvalidHandle marks a GPU handle that has not been created or has been
// destroyed.
const InvalidHandle uint32 = 0xFFFFFFFF

// Texture is a 2D image resource that has been uploaded to the GPU.
type Texture struct {
	// Stable identifier for diagnostics, independent of the GPU handle.
	ID core.Identifier
	// Tag names the texture in registry lookups.
	Tag string
	// Handle is the backend-assigned GPU object.
	Handle       uint32
	Width        uint32
	Height       uint32
	ChannelCount uint8
}

// TexturePixels is CPU-side decoded image data ready for upload. Pixels are
// tightly packed RGBA rows, bottom row first, matching the renderer's UV
// convention.
type TexturePixels struct {
	Pixels       []uint8
	Width        uint32
	Height       uint32
	ChannelCount uint8
}
