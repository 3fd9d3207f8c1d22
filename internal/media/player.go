// Package media provides the playback source shown on the panorama surface:
// an equirectangular frame plus an optional soundtrack.
package media

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/Faultbox/panoview/internal/logger"
	"github.com/Faultbox/panoview/internal/pano"
)

// Options selects what the player loads.
type Options struct {
	Panorama   string
	Soundtrack string
	Autoplay   bool
	Loop       bool
	Volume     float64
	Muted      bool
}

// Player loads media in the background and reports how far it got through
// ReadyState. It is safe to query from the render loop while loading.
type Player struct {
	opts Options
	log  *zap.Logger

	state  atomic.Int32
	paused atomic.Bool

	mu    sync.RWMutex
	frame *image.RGBA
	gen   uint64
	track *Soundtrack
	err   error

	done chan struct{}
}

// Open starts loading and returns immediately.
func Open(opts Options) *Player {
	p := &Player{
		opts: opts,
		log:  logger.Named("media"),
		done: make(chan struct{}),
	}
	p.paused.Store(!opts.Autoplay)
	go p.load()
	return p
}

func (p *Player) load() {
	defer close(p.done)

	if err := p.loadFrame(); err != nil {
		p.fail(fmt.Errorf("panorama %s: %w", p.opts.Panorama, err))
		return
	}

	if p.opts.Soundtrack != "" {
		track, err := NewSoundtrack(p.opts.Soundtrack, p.opts.Loop, p.opts.Volume, p.opts.Muted)
		if err != nil {
			// The panorama is still viewable without sound.
			p.log.Warn("soundtrack unavailable", zap.String("path", p.opts.Soundtrack), zap.Error(err))
		} else {
			p.mu.Lock()
			p.track = track
			p.mu.Unlock()
			if !p.paused.Load() {
				track.Resume()
			}
		}
	}

	p.setState(pano.HaveEnoughData)
}

func (p *Player) loadFrame() error {
	f, err := os.Open(p.opts.Panorama)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		cfg    image.Config
		format string
		decode func() (image.Image, error)
	)
	if isTGA(p.opts.Panorama) {
		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		if cfg, err = decodeTGAConfig(data); err != nil {
			return err
		}
		format = "tga"
		decode = func() (image.Image, error) { return decodeTGA(data) }
	} else {
		if cfg, format, err = image.DecodeConfig(f); err != nil {
			return err
		}
		decode = func() (image.Image, error) {
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
			img, _, err := image.Decode(f)
			return img, err
		}
	}

	p.log.Info("panorama found",
		zap.String("path", p.opts.Panorama),
		zap.String("format", format),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)
	p.setState(pano.HaveMetadata)

	img, err := decode()
	if err != nil {
		return err
	}

	p.SetFrame(img)
	p.setState(pano.HaveCurrentData)
	return nil
}

func (p *Player) fail(err error) {
	p.log.Error("media load failed", zap.Error(err))
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *Player) setState(s pano.ReadyState) {
	p.state.Store(int32(s))
	p.log.Debug("ready state", zap.Stringer("state", s))
}

// Wait blocks until loading finished and returns the load error, if any.
func (p *Player) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the load error, if any.
func (p *Player) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// ReadyState reports how much media is available.
func (p *Player) ReadyState() pano.ReadyState {
	return pano.ReadyState(p.state.Load())
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	return p.paused.Load()
}

// Play starts or resumes playback.
func (p *Player) Play() {
	p.paused.Store(false)
	if t := p.soundtrack(); t != nil {
		t.Resume()
	}
	p.log.Info("playing")
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.paused.Store(true)
	if t := p.soundtrack(); t != nil {
		t.Pause()
	}
	p.log.Info("paused")
}

// Toggle plays when paused and pauses otherwise.
func (p *Player) Toggle() {
	if p.Paused() {
		p.Play()
		return
	}
	p.Pause()
}

func (p *Player) soundtrack() *Soundtrack {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.track
}

// SetFrame replaces the current frame.
func (p *Player) SetFrame(img image.Image) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	p.mu.Lock()
	p.frame = rgba
	p.gen++
	p.mu.Unlock()
}

// Frame returns the current frame and its generation, which changes every
// time the frame is replaced. The frame is nil before HaveCurrentData.
func (p *Player) Frame() (*image.RGBA, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.frame, p.gen
}

// Close waits for loading to finish and releases the soundtrack.
func (p *Player) Close() {
	<-p.done
	if t := p.soundtrack(); t != nil {
		t.Close()
	}
}
