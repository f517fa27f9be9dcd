package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/metadata"
)

// Backend implements renderer.Backend on top of OpenGL 4.1 core. A current
// GL context must exist on the calling thread before Initialize.
type Backend struct {
	// GL buffer objects owned by each vertex array, kept so geometry
	// destruction can release them.
	geometryBuffers map[uint32][2]uint32
	// Per-program uniform location cache.
	uniforms map[uint32]map[string]int32
}

func New() *Backend {
	return &Backend{
		geometryBuffers: make(map[uint32][2]uint32),
		uniforms:        make(map[uint32]map[string]int32),
	}
}

func (b *Backend) Initialize(width, height uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: loading function pointers: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	core.LogInfo("OpenGL version %s", version)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(0, 0, int32(width), int32(height))

	return nil
}

func (b *Backend) Shutdown() error {
	return nil
}

func (b *Backend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *Backend) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (b *Backend) SetCullMode(mode renderer.CullMode) {
	switch mode {
	case renderer.CullNone:
		gl.Disable(gl.CULL_FACE)
	case renderer.CullBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case renderer.CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	}
}

func (b *Backend) BindFramebuffer(handle uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, handle)
}

func (b *Backend) TextureCreate(pixels *metadata.TexturePixels, texture *metadata.Texture) error {
	if pixels == nil || len(pixels.Pixels) == 0 {
		return fmt.Errorf("opengl: no pixel data for texture %q", texture.Tag)
	}

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// The image loader always hands over tightly packed RGBA rows; the
	// original channel count only matters for validation upstream.
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(pixels.Width), int32(pixels.Height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels.Pixels))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	texture.Handle = handle
	texture.Width = pixels.Width
	texture.Height = pixels.Height
	texture.ChannelCount = pixels.ChannelCount

	return nil
}

func (b *Backend) TextureDestroy(texture *metadata.Texture) {
	if texture == nil || texture.Handle == metadata.InvalidHandle {
		return
	}
	gl.DeleteTextures(1, &texture.Handle)
	texture.Handle = metadata.InvalidHandle
}

func (b *Backend) TextureBindUnit(unit int32, handle uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (b *Backend) GeometryCreate(geometry *metadata.Geometry) error {
	if len(geometry.Vertices) == 0 || len(geometry.Indices) == 0 {
		return fmt.Errorf("opengl: empty geometry for mesh %s", geometry.Kind)
	}

	// Interleave position, normal, uv.
	flat := make([]float32, 0, len(geometry.Vertices)*8)
	for _, v := range geometry.Vertices {
		flat = append(flat,
			v.Position.X(), v.Position.Y(), v.Position.Z(),
			v.Normal.X(), v.Normal.Y(), v.Normal.Z(),
			v.UV.X(), v.UV.Y())
	}

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.GenBuffers(1, &ebo)

	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, gl.Ptr(flat), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geometry.Indices)*4, gl.Ptr(geometry.Indices), gl.STATIC_DRAW)

	const stride = int32(8 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)

	geometry.Handle = vao
	b.geometryBuffers[vao] = [2]uint32{vbo, ebo}

	return nil
}

func (b *Backend) GeometryDestroy(geometry *metadata.Geometry) {
	if geometry == nil || geometry.Handle == metadata.InvalidHandle {
		return
	}
	if buffers, ok := b.geometryBuffers[geometry.Handle]; ok {
		gl.DeleteBuffers(2, &buffers[0])
		delete(b.geometryBuffers, geometry.Handle)
	}
	gl.DeleteVertexArrays(1, &geometry.Handle)
	geometry.Handle = metadata.InvalidHandle
}

func (b *Backend) GeometryDraw(geometry *metadata.Geometry) {
	gl.BindVertexArray(geometry.Handle)
	gl.DrawElements(gl.TRIANGLES, int32(len(geometry.Indices)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (b *Backend) ShadowMapCreate(resolution int32) (*metadata.ShadowMap, error) {
	sm := &metadata.ShadowMap{Resolution: resolution}

	gl.GenFramebuffers(1, &sm.Framebuffer)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT,
		resolution, resolution, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)

	// White border so fragments outside the map count as unshadowed.
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.Framebuffer)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		b.ShadowMapDestroy(sm)
		return nil, fmt.Errorf("opengl: shadow framebuffer incomplete (status 0x%x)", status)
	}

	return sm, nil
}

func (b *Backend) ShadowMapDestroy(shadowMap *metadata.ShadowMap) {
	if shadowMap == nil {
		return
	}
	if shadowMap.DepthTexture != 0 {
		gl.DeleteTextures(1, &shadowMap.DepthTexture)
		shadowMap.DepthTexture = 0
	}
	if shadowMap.Framebuffer != 0 {
		gl.DeleteFramebuffers(1, &shadowMap.Framebuffer)
		shadowMap.Framebuffer = 0
	}
}
