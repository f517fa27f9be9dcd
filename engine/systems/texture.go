package systems

import (
	"fmt"

	"github.com/spaghettifunk/tavolo/engine/assets"
	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// MaxTextureSlots is the size of the fixed slot table. Slot index equals
// texture unit index once BindAll has run; the last guaranteed unit is
// reserved for the shadow depth sampler, so content stops one short of it.
const MaxTextureSlots = 15

// TextureSystem owns every content texture of the session. Textures are
// assigned slots in load order; slots are never reused until ReleaseAll.
type TextureSystem struct {
	backend renderer.Backend
	assets  *assets.AssetManager
	slots   []*metadata.Texture
}

func NewTextureSystem(backend renderer.Backend, assetManager *assets.AssetManager) (*TextureSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("texture system requires a backend")
	}
	return &TextureSystem{
		backend: backend,
		assets:  assetManager,
		slots:   make([]*metadata.Texture, 0, MaxTextureSlots),
	}, nil
}

// Load decodes the named image file and uploads it to the GPU, appending
// it to the slot table under tag. A failed load leaves the table untouched
// so later loads still receive contiguous slot indices.
func (ts *TextureSystem) Load(filename, tag string) error {
	if len(ts.slots) >= MaxTextureSlots {
		return fmt.Errorf("texture registry full (%d slots), cannot load %q", MaxTextureSlots, tag)
	}
	if _, found := ts.FindSlot(tag); found {
		core.LogWarn("texture tag %q already registered, loading duplicate", tag)
	}

	pixels, err := ts.assets.LoadImage(filename)
	if err != nil {
		core.LogError("texture %q: %v", tag, err)
		return err
	}

	texture := &metadata.Texture{
		ID:     core.NewIdentifier(),
		Tag:    tag,
		Handle: metadata.InvalidHandle,
	}
	if err := ts.backend.TextureCreate(pixels, texture); err != nil {
		core.LogError("texture %q: %v", tag, err)
		return err
	}

	ts.slots = append(ts.slots, texture)
	core.LogDebug("texture %q loaded into slot %d (%dx%d, %d channels)",
		tag, len(ts.slots)-1, texture.Width, texture.Height, texture.ChannelCount)

	return nil
}

// FindID returns the GPU handle registered under tag. First match wins.
func (ts *TextureSystem) FindID(tag string) (uint32, bool) {
	for _, t := range ts.slots {
		if t.Tag == tag {
			return t.Handle, true
		}
	}
	return metadata.InvalidHandle, false
}

// FindSlot returns the slot index registered under tag. First match wins.
func (ts *TextureSystem) FindSlot(tag string) (int32, bool) {
	for i, t := range ts.slots {
		if t.Tag == tag {
			return int32(i), true
		}
	}
	return -1, false
}

// Count reports the number of occupied slots.
func (ts *TextureSystem) Count() int {
	return len(ts.slots)
}

// BindAll binds slot i's texture to texture unit i for every occupied
// slot. After this call the slot index doubles as the sampler unit for
// the rest of the frame.
func (ts *TextureSystem) BindAll() {
	for i, t := range ts.slots {
		ts.backend.TextureBindUnit(int32(i), t.Handle)
	}
}

// ReleaseAll destroys every GPU texture and empties the slot table.
func (ts *TextureSystem) ReleaseAll() {
	for _, t := range ts.slots {
		ts.backend.TextureDestroy(t)
	}
	ts.slots = ts.slots[:0]
}

func (ts *TextureSystem) Shutdown() error {
	ts.ReleaseAll()
	return nil
}
