package media

import (
	"image/color"
	"testing"
)

func tgaHeaderBytes(imageType byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topDown {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, bottom-up, BGR: first row in the file is the bottom row.
	data := tgaHeaderBytes(tgaTrueColor, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA failed: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{R: 255, A: 255}},
		{1, 1, color.RGBA{G: 255, A: 255}},
		{0, 0, color.RGBA{B: 255, A: 255}},
		{1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, top-down, 32bpp: a run of two red pixels then one raw blue pixel.
	data := tgaHeaderBytes(tgaTrueColorRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 0, 0, 255, 128,
		0x00, 255, 0, 0, 255,
	)

	img, err := decodeTGA(data)
	if err != nil {
		t.Fatalf("decodeTGA failed: %v", err)
	}
	for x := 0; x < 2; x++ {
		if got := img.RGBAAt(x, 0); got != (color.RGBA{R: 255, A: 128}) {
			t.Errorf("pixel %d = %v, want translucent red", x, got)
		}
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel 2 = %v, want blue", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	colorMapped := tgaHeaderBytes(tgaTrueColor, 1, 1, 24, false)
	colorMapped[1] = 1

	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", colorMapped},
		{"grayscale", tgaHeaderBytes(3, 1, 1, 8, false)},
		{"16 bit", tgaHeaderBytes(tgaTrueColor, 1, 1, 16, false)},
		{"empty", tgaHeaderBytes(tgaTrueColor, 0, 1, 24, false)},
		{"truncated raw", append(tgaHeaderBytes(tgaTrueColor, 2, 1, 24, false), 1, 2, 3)},
		{"truncated rle", append(tgaHeaderBytes(tgaTrueColorRLE, 4, 1, 24, false), 0x81, 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeTGAConfig(t *testing.T) {
	cfg, err := decodeTGAConfig(tgaHeaderBytes(tgaTrueColor, 4096, 2048, 32, false))
	if err != nil {
		t.Fatalf("decodeTGAConfig failed: %v", err)
	}
	if cfg.Width != 4096 || cfg.Height != 2048 {
		t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestIsTGA(t *testing.T) {
	for path, want := range map[string]bool{
		"pano.tga": true,
		"PANO.TGA": true,
		"pano.png": false,
		"tga":      false,
	} {
		if got := isTGA(path); got != want {
			t.Errorf("isTGA(%q) = %v, want %v", path, got, want)
		}
	}
}
