// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/panoview/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window, its OpenGL context and the gyroscope, if any.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	gyro      *sdl.Sensor
	log       *zap.Logger
}

// New creates a new window with an OpenGL 4.1 core context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_SENSOR); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.openGyro()

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Bool("gyro", w.gyro != nil),
	)

	return w, nil
}

func (w *Window) openGyro() {
	for i := 0; i < sdl.NumSensors(); i++ {
		if sdl.SensorGetDeviceType(i) != sdl.SENSOR_GYRO {
			continue
		}
		if s := sdl.SensorOpen(i); s != nil {
			w.gyro = s
			w.log.Debug("gyroscope opened", zap.String("name", sdl.SensorGetDeviceName(i)))
			return
		}
	}
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.gyro != nil {
		w.gyro.Close()
	}
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// Size reports the surface size the panorama is drawn into.
func (w *Window) Size() (float64, float64) {
	width, height := w.GetSize()
	return float64(width), float64(height)
}

// Offset is always the origin: the panorama fills the whole window and
// SDL reports pointer positions relative to it.
func (w *Window) Offset() (float64, float64) {
	return 0, 0
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// HasGyro reports whether a gyroscope was found.
func (w *Window) HasGyro() bool {
	return w.gyro != nil
}

// Screen returns the orientation of the display the window is on.
func (w *Window) Screen() *Screen {
	return &Screen{window: w}
}

// SetFullscreen switches between desktop fullscreen and windowed mode.
func (w *Window) SetFullscreen(fullscreen bool) error {
	var flags uint32
	if fullscreen {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := w.sdlWindow.SetFullscreen(flags); err != nil {
		return fmt.Errorf("SDL_SetWindowFullscreen failed: %w", err)
	}
	w.config.Fullscreen = fullscreen
	return nil
}

// Fullscreen reports whether the window is fullscreen.
func (w *Window) Fullscreen() bool {
	return w.config.Fullscreen
}
