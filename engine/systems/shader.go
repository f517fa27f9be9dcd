package systems

import (
	"fmt"

	"github.com/spaghettifunk/tavolo/engine/assets"
	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// ShaderSystem loads GLSL sources through the asset manager and compiles
// them on the backend. A program that fails to compile or link is held as
// nil and skipped by callers, per the degraded-rendering policy.
type ShaderSystem struct {
	backend renderer.Backend
	assets  *assets.AssetManager

	sceneShader *metadata.Shader
	depthShader *metadata.Shader
}

func NewShaderSystem(backend renderer.Backend, assetManager *assets.AssetManager) (*ShaderSystem, error) {
	if backend == nil {
		return nil, fmt.Errorf("shader system requires a backend")
	}
	return &ShaderSystem{
		backend: backend,
		assets:  assetManager,
	}, nil
}

// Initialize compiles the scene and depth programs. A compile failure is
// logged and leaves that program absent rather than aborting; the depth
// program being absent disables shadows but not rendering.
func (ss *ShaderSystem) Initialize() error {
	var err error
	if ss.sceneShader, err = ss.load("scene", "scene.vert", "scene.frag"); err != nil {
		core.LogError("%v", err)
	}
	if ss.depthShader, err = ss.load("depth", "depth.vert", "depth.frag"); err != nil {
		core.LogError("%v", err)
	}
	if ss.sceneShader == nil {
		return fmt.Errorf("scene shader unavailable, nothing can render")
	}
	return nil
}

func (ss *ShaderSystem) load(name, vertexFile, fragmentFile string) (*metadata.Shader, error) {
	vertexSource, err := ss.assets.LoadShaderSource(vertexFile)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	fragmentSource, err := ss.assets.LoadShaderSource(fragmentFile)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}

	shader, err := ss.backend.ShaderCreate(name, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	core.LogDebug("shader %q compiled and linked", name)
	return shader, nil
}

// SceneShader returns the lit-pass program, or nil if it failed to build.
func (ss *ShaderSystem) SceneShader() *metadata.Shader {
	return ss.sceneShader
}

// DepthShader returns the depth-pass program, or nil if it failed to build.
func (ss *ShaderSystem) DepthShader() *metadata.Shader {
	return ss.depthShader
}

func (ss *ShaderSystem) Shutdown() error {
	if ss.sceneShader != nil {
		ss.backend.ShaderDestroy(ss.sceneShader)
		ss.sceneShader = nil
	}
	if ss.depthShader != nil {
		ss.backend.ShaderDestroy(ss.depthShader)
		ss.depthShader = nil
	}
	return nil
}
