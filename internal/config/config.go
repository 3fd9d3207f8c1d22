// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/panoview/internal/pano"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Viewer   pano.Options   `yaml:"viewer" toml:"viewer"`
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Media    MediaConfig    `yaml:"media" toml:"media"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width" toml:"width"`
	Height     int  `yaml:"height" toml:"height"`
	Fullscreen bool `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool `yaml:"vsync" toml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// MediaConfig holds what to show.
type MediaConfig struct {
	Panorama   string `yaml:"panorama" toml:"panorama"`     // Equirectangular image path
	Soundtrack string `yaml:"soundtrack" toml:"soundtrack"` // Optional WAV file
	Autoplay   bool   `yaml:"autoplay" toml:"autoplay"`
	Loop       bool   `yaml:"loop" toml:"loop"`
}

// AudioConfig holds soundtrack output settings.
type AudioConfig struct {
	Volume float64 `yaml:"volume" toml:"volume"`
	Muted  bool    `yaml:"muted" toml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: pano.DefaultOptions(),
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Media: MediaConfig{
			Autoplay: true,
			Loop:     true,
		},
		Audio: AudioConfig{
			Volume: 0.8,
			Muted:  false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings for values the viewer cannot work with.
func (c *Config) Validate() error {
	v := c.Viewer
	switch {
	case v.MinLat > v.MaxLat:
		return fmt.Errorf("%w: viewer.min_lat %v is above max_lat %v", ErrInvalid, v.MinLat, v.MaxLat)
	case v.MinLon > v.MaxLon:
		return fmt.Errorf("%w: viewer.min_lon %v is above max_lon %v", ErrInvalid, v.MinLon, v.MaxLon)
	case v.ReturnLatSpeed < 0 || v.ReturnLonSpeed < 0:
		return fmt.Errorf("%w: viewer return speeds must not be negative", ErrInvalid)
	case math.IsNaN(v.MobileVibrationValue) || math.IsInf(v.MobileVibrationValue, 0):
		return fmt.Errorf("%w: viewer.mobile_vibration_value must be finite", ErrInvalid)
	case v.MinFov <= 0 || v.MaxFov >= 180 || v.MinFov > v.MaxFov:
		return fmt.Errorf("%w: viewer fov range [%v, %v] must lie within (0, 180)", ErrInvalid, v.MinFov, v.MaxFov)
	case v.InitFov < v.MinFov || v.InitFov > v.MaxFov:
		return fmt.Errorf("%w: viewer.init_fov %v is outside [%v, %v]", ErrInvalid, v.InitFov, v.MinFov, v.MaxFov)
	}

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v is outside [0, 1]", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
