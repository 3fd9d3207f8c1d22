// Package viewer wires the window, input, media and render loop into the
// panorama viewer application.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/panoview/internal/config"
	"github.com/Faultbox/panoview/internal/engine/capture"
	"github.com/Faultbox/panoview/internal/engine/frame"
	"github.com/Faultbox/panoview/internal/engine/input"
	"github.com/Faultbox/panoview/internal/engine/renderer"
	"github.com/Faultbox/panoview/internal/engine/window"
	"github.com/Faultbox/panoview/internal/logger"
	"github.com/Faultbox/panoview/internal/media"
	"github.com/Faultbox/panoview/internal/pano"
)

// AppName is shown in the window title.
const AppName = "Panoview"

// Viewer is the main application instance.
type Viewer struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	player   *media.Player

	scheduler *frame.Scheduler
	surface   *pano.Bus
	windowBus *pano.Bus
	ctrl      *pano.Controller
	shots     *capture.Screenshots

	rendered bool
	title    string
}

// New opens the window and starts loading the configured media.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:       cfg,
		log:       logger.Named("viewer"),
		scheduler: frame.New(),
		surface:   pano.NewBus(),
		windowBus: pano.NewBus(),
		shots:     capture.NewScreenshots(cfg.Graphics.ScreenshotDir, "panoview"),
	}

	v.log.Info("initializing viewer",
		zap.String("panorama", cfg.Media.Panorama),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      AppName,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.player = media.Open(media.Options{
		Panorama:   cfg.Media.Panorama,
		Soundtrack: cfg.Media.Soundtrack,
		Autoplay:   cfg.Media.Autoplay,
		Loop:       cfg.Media.Loop,
		Volume:     cfg.Audio.Volume,
		Muted:      cfg.Audio.Muted,
	})

	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, v.player)
	if err != nil {
		v.player.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New(v.surface, v.windowBus, v.window.Size)

	opts := cfg.Viewer
	if opts.AutoMobileOrientation && !v.window.HasGyro() {
		v.log.Info("no gyroscope found, device orientation disabled")
	}
	v.ctrl = pano.NewController(opts, pano.Host{
		Surface:   v.window,
		Player:    v.player,
		Target:    v.renderer,
		Scheduler: v.scheduler,
		Events:    v.surface,
		Window:    v.windowBus,
		Screen:    v.window.Screen(),
	})
	v.surface.On(pano.EventRender, func(*pano.Event) { v.rendered = true })

	v.log.Info("viewer initialized")
	return v, nil
}

// Run drives input and the frame scheduler until the window closes.
func (v *Viewer) Run() error {
	v.running = true
	v.ctrl.Start()
	defer v.ctrl.Stop()

	frames := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleActions()
		shoot := v.input.Triggered(input.ActionScreenshot)

		if err := v.player.Err(); err != nil {
			return fmt.Errorf("media: %w", err)
		}

		v.rendered = false
		v.scheduler.RunFrame(time.Now())
		if !v.rendered {
			v.renderer.Clear()
		} else {
			frames++
		}
		v.updateTitle()
		if shoot {
			v.screenshot()
		}

		v.window.SwapBuffers()

		if time.Since(fpsTimer) >= time.Second {
			o := v.ctrl.Orientation()
			v.log.Debug("fps",
				zap.Int("count", frames),
				zap.Float64("lon", o.Lon),
				zap.Float64("lat", o.Lat),
				zap.Float64("fov", v.ctrl.Camera().Fov),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleActions() {
	for _, a := range v.input.Actions() {
		switch a {
		case input.ActionQuit:
			v.running = false
		case input.ActionTogglePlayback:
			v.player.Toggle()
		case input.ActionResetView:
			v.ctrl.SetOrientation(v.cfg.Viewer.InitLon, v.cfg.Viewer.InitLat)
		case input.ActionToggleFullscreen:
			if err := v.window.SetFullscreen(!v.window.Fullscreen()); err != nil {
				v.log.Warn("fullscreen toggle failed", zap.Error(err))
			}
		}
	}
}

// screenshot saves the frame just drawn, before the buffers are swapped.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	o := v.ctrl.Orientation()
	path, err := v.shots.SaveFramebuffer(pixels, w, h, o.Lon, o.Lat)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) updateTitle() {
	t := Title(v.cfg.Media.Panorama, v.player.ReadyState(), v.player.Paused())
	if t != v.title {
		v.title = t
		v.window.SetTitle(t)
	}
}

// Title formats the window title for the given media state.
func Title(panorama string, state pano.ReadyState, paused bool) string {
	name := filepath.Base(panorama)
	switch {
	case state < pano.HaveCurrentData:
		return fmt.Sprintf("%s - loading %s", AppName, name)
	case paused:
		return fmt.Sprintf("%s - %s (paused)", AppName, name)
	default:
		return fmt.Sprintf("%s - %s", AppName, name)
	}
}

// Close releases every resource in reverse creation order.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.ctrl != nil {
		v.ctrl.Dispose()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.player != nil {
		v.player.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
