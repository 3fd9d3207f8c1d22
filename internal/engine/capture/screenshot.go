// Package capture saves the rendered view to disk.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer snapshots as numbered PNG files.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots creates a writer that stores files in dir, which is created
// on first use. An empty dir means the working directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next screenshot is saved to.
func (s *Screenshots) Filename(lon, lat float64) string {
	name := fmt.Sprintf("%s_%s_lon%+.0f_lat%+.0f.png",
		s.prefix, s.now().Format("2006-01-02_15-04-05"), lon, lat)
	return filepath.Join(s.dir, name)
}

// SaveFramebuffer stores bottom-up RGBA pixels as read from OpenGL.
func (s *Screenshots) SaveFramebuffer(pixels []byte, width, height int, lon, lat float64) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}
	return s.save(img, s.Filename(lon, lat))
}

func (s *Screenshots) save(img image.Image, path string) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// FlipRows converts bottom-up RGBA rows into a top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
