// Package renderer draws an equirectangular panorama with OpenGL.
package renderer

import (
	"fmt"
	"image"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/panoview/internal/engine/camera"
	"github.com/Faultbox/panoview/internal/engine/shader"
	"github.com/Faultbox/panoview/internal/logger"
	"github.com/Faultbox/panoview/pkg/math"
)

// FrameSource supplies the current panorama frame. The generation changes
// whenever the frame is replaced.
type FrameSource interface {
	Frame() (*image.RGBA, uint64)
}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws the panorama as a full-screen quad. Each fragment turns its
// screen position back into a view ray and samples the equirectangular
// texture along it.
type Renderer struct {
	config Config
	source FrameSource
	log    *zap.Logger

	program *shader.Program
	vao     uint32
	vbo     uint32

	texture   uint32
	texWidth  int
	texHeight int
	uploaded  uint64
	dirty     bool

	draws   uint64
	uploads uint64
}

// New creates a renderer. It must be called after the OpenGL context exists.
func New(cfg Config, source FrameSource) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		source: source,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.createQuad()
	r.createTexture()
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer",
		zap.Uint64("draws", r.draws),
		zap.Uint64("uploads", r.uploads),
	)
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Clear fills the viewport with the background color.
func (r *Renderer) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// InvalidateTexture marks the panorama texture for re-upload on the next draw.
func (r *Renderer) InvalidateTexture() {
	r.dirty = true
}

// Render draws the panorama as seen by cam.
func (r *Renderer) Render(cam camera.PanoramaCamera) {
	if r.dirty {
		r.upload()
	}

	r.Clear()
	if r.texWidth == 0 {
		return
	}

	inv := InverseViewProjection(cam, aspect(r.config.Width, r.config.Height))

	r.program.Use()
	r.program.SetMat4("uInvViewProj", inv.Ptr())
	r.program.SetInt("uPanorama", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
	r.draws++
}

func (r *Renderer) upload() {
	r.dirty = false
	frame, gen := r.source.Frame()
	if frame == nil || gen == r.uploaded {
		return
	}

	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	if w == r.texWidth && h == r.texHeight {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix))
		r.texWidth, r.texHeight = w, h
		r.log.Debug("panorama texture allocated",
			zap.Int("width", w),
			zap.Int("height", h),
		)
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.uploaded = gen
	r.uploads++
}

func (r *Renderer) createQuad() {
	vertices := []float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) createTexture() {
	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	// Horizontal wrap hides the seam at theta = ±pi.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// InverseViewProjection maps clip space back to world-space view rays.
func InverseViewProjection(cam camera.PanoramaCamera, aspect float32) math.Mat4 {
	proj := cam.ProjectionMatrix(aspect)
	view := cam.ViewMatrix()
	return proj.Mul(view).Inverse()
}

// EquirectUV returns the texture coordinate a view direction samples. It is
// the CPU twin of the fragment shader lookup.
func EquirectUV(dir math.Vec3) (u, v float32) {
	d := dir.Normalize()
	u = float32(0.5 + gomath.Atan2(float64(d.Z), float64(d.X))/(2*gomath.Pi))
	v = float32(gomath.Acos(math.Clamp(float64(d.Y), -1, 1)) / gomath.Pi)
	return u, v
}

func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;

uniform mat4 uInvViewProj;

out vec3 vDir;

void main() {
	vec4 far = uInvViewProj * vec4(aPos, 1.0, 1.0);
	vec4 near = uInvViewProj * vec4(aPos, -1.0, 1.0);
	vDir = far.xyz / far.w - near.xyz / near.w;
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const fragmentShader = `
#version 410 core

in vec3 vDir;
out vec4 FragColor;

uniform sampler2D uPanorama;

const float PI = 3.14159265358979;

void main() {
	vec3 d = normalize(vDir);
	vec2 uv = vec2(0.5 + atan(d.z, d.x) / (2.0 * PI), acos(clamp(d.y, -1.0, 1.0)) / PI);
	FragColor = texture(uPanorama, uv);
}
`
