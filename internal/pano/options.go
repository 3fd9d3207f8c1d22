package pano

import "math"

// Options is the viewer configuration. The controller reads it but never changes it.
type Options struct {
	// Initial view, degrees
	InitLon float64 `yaml:"init_lon" toml:"init_lon"`
	InitLat float64 `yaml:"init_lat" toml:"init_lat"`

	// View bounds, degrees. Infinite bounds disable the clamp on that side.
	MinLat float64 `yaml:"min_lat" toml:"min_lat"`
	MaxLat float64 `yaml:"max_lat" toml:"max_lat"`
	MinLon float64 `yaml:"min_lon" toml:"min_lon"`
	MaxLon float64 `yaml:"max_lon" toml:"max_lon"`

	// Idle return toward the initial view, degrees per frame
	BackToInitLat  bool    `yaml:"back_to_init_lat" toml:"back_to_init_lat"`
	BackToInitLon  bool    `yaml:"back_to_init_lon" toml:"back_to_init_lon"`
	ReturnLatSpeed float64 `yaml:"return_lat_speed" toml:"return_lat_speed"`
	ReturnLonSpeed float64 `yaml:"return_lon_speed" toml:"return_lon_speed"`

	// Interaction modes
	ClickAndDrag          bool `yaml:"click_and_drag" toml:"click_and_drag"`
	ClickToToggle         bool `yaml:"click_to_toggle" toml:"click_to_toggle"`
	Scrollable            bool `yaml:"scrollable" toml:"scrollable"`
	Resizable             bool `yaml:"resizable" toml:"resizable"`
	AutoMobileOrientation bool `yaml:"auto_mobile_orientation" toml:"auto_mobile_orientation"`

	// Scale applied to gyroscope rotation rates
	MobileVibrationValue float64 `yaml:"mobile_vibration_value" toml:"mobile_vibration_value"`

	// Vertical field of view, degrees
	InitFov float64 `yaml:"init_fov" toml:"init_fov"`
	MinFov  float64 `yaml:"min_fov" toml:"min_fov"`
	MaxFov  float64 `yaml:"max_fov" toml:"max_fov"`
}

// DefaultOptions returns the stock viewer settings.
func DefaultOptions() Options {
	return Options{
		InitLon:               -180,
		InitLat:               0,
		MinLat:                -85,
		MaxLat:                85,
		MinLon:                math.Inf(-1),
		MaxLon:                math.Inf(1),
		BackToInitLat:         false,
		BackToInitLon:         false,
		ReturnLatSpeed:        0.5,
		ReturnLonSpeed:        2,
		ClickAndDrag:          true,
		ClickToToggle:         true,
		Scrollable:            true,
		Resizable:             true,
		AutoMobileOrientation: false,
		MobileVibrationValue:  1,
		InitFov:               75,
		MinFov:                51,
		MaxFov:                105,
	}
}
