package systems

import (
	"github.com/spaghettifunk/tavolo/engine/assets"
	"github.com/spaghettifunk/tavolo/engine/renderer"
)

// SystemManager constructs and owns every engine system in dependency
// order and tears them down in reverse.
type SystemManager struct {
	TextureSystem  *TextureSystem
	MaterialSystem *MaterialSystem
	LightSystem    *LightSystem
	ShaderSystem   *ShaderSystem
	MeshSystem     *MeshSystem
	RenderSystem   *RenderSystem
	ShadowSystem   *ShadowSystem
}

func NewSystemManager(backend renderer.Backend, assetManager *assets.AssetManager, width, height uint32) (*SystemManager, error) {
	ts, err := NewTextureSystem(backend, assetManager)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(backend)
	if err != nil {
		return nil, err
	}
	ls, err := NewLightSystem(backend)
	if err != nil {
		return nil, err
	}
	ssys, err := NewShaderSystem(backend, assetManager)
	if err != nil {
		return nil, err
	}
	mesh, err := NewMeshSystem(backend)
	if err != nil {
		return nil, err
	}
	rs, err := NewRenderSystem(backend, ts, ssys, width, height)
	if err != nil {
		return nil, err
	}
	shadow, err := NewShadowSystem(backend, ssys, rs, ls, ts, ms, mesh)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		TextureSystem:  ts,
		MaterialSystem: ms,
		LightSystem:    ls,
		ShaderSystem:   ssys,
		MeshSystem:     mesh,
		RenderSystem:   rs,
		ShadowSystem:   shadow,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.ShadowSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.RenderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MeshSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.LightSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.MaterialSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
