package window

import "github.com/veandco/go-sdl2/sdl"

// Screen answers display orientation queries for the window's display.
type Screen struct {
	window *Window
}

// Portrait reports a portrait display. Desktops that do not report an
// orientation fall back to the window shape.
func (s *Screen) Portrait() bool {
	return classify(s.orientation(), s.shape()) == shapePortrait
}

// Landscape reports a landscape display.
func (s *Screen) Landscape() bool {
	return classify(s.orientation(), s.shape()) == shapeLandscape
}

// Degrees returns the display rotation in degrees, false when unknown.
func (s *Screen) Degrees() (float64, bool) {
	return degrees(s.orientation())
}

func (s *Screen) orientation() sdl.DisplayOrientation {
	idx, err := s.window.sdlWindow.GetDisplayIndex()
	if err != nil {
		return sdl.ORIENTATION_UNKNOWN
	}
	return sdl.GetDisplayOrientation(idx)
}

func (s *Screen) shape() int {
	w, h := s.window.GetSize()
	switch {
	case h > w:
		return shapePortrait
	case w > h:
		return shapeLandscape
	default:
		return shapeUnknown
	}
}

const (
	shapeUnknown = iota
	shapePortrait
	shapeLandscape
)

func classify(o sdl.DisplayOrientation, fallback int) int {
	switch o {
	case sdl.ORIENTATION_PORTRAIT, sdl.ORIENTATION_PORTRAIT_FLIPPED:
		return shapePortrait
	case sdl.ORIENTATION_LANDSCAPE, sdl.ORIENTATION_LANDSCAPE_FLIPPED:
		return shapeLandscape
	default:
		return fallback
	}
}

func degrees(o sdl.DisplayOrientation) (float64, bool) {
	switch o {
	case sdl.ORIENTATION_PORTRAIT:
		return 0, true
	case sdl.ORIENTATION_PORTRAIT_FLIPPED:
		return 180, true
	case sdl.ORIENTATION_LANDSCAPE:
		return 90, true
	case sdl.ORIENTATION_LANDSCAPE_FLIPPED:
		return -90, true
	default:
		return 0, false
	}
}
