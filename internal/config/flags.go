package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPanorama   = flag.String("panorama", "", "Equirectangular image to show")
	flagSoundtrack = flag.String("soundtrack", "", "WAV file played alongside the panorama")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagDrag       = flag.Bool("drag", false, "Rotate by click and drag")
	flagAbsolute   = flag.Bool("absolute", false, "Map the pointer position straight onto the view")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPanorama != "" {
		cfg.Media.Panorama = *flagPanorama
	}
	if *flagSoundtrack != "" {
		cfg.Media.Soundtrack = *flagSoundtrack
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagDrag {
		cfg.Viewer.ClickAndDrag = true
	}
	if *flagAbsolute {
		cfg.Viewer.ClickAndDrag = false
	}
}
