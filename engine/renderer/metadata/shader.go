package metadata

import "github.com/spaghettifunk/tavolo/engine/core"

// Shader is a compiled and linked GPU program. A shader that failed to
// compile or link is represented by a nil *Shader, never by a partially
// initialized one.
type Shader struct {
	ID      core.Identifier
	Name    string
	Program uint32
}

// ShadowMap owns the off-screen depth framebuffer for the shadow pass.
// Created once at scene preparation, never resized within a session.
type ShadowMap struct {
	Framebuffer  uint32
	DepthTexture uint32
	Resolution   int32
}
