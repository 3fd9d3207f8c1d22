package media

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
)

// TGA image types the decoder understands.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// tgaHeader is the part of the 18-byte TGA header the decoder needs.
type tgaHeader struct {
	idLength    int
	imageType   byte
	width       int
	height      int
	bytesPerPix int
	topDown     bool
}

// isTGA reports whether path names a TGA file. TGA has no magic number, so
// it cannot go through image.RegisterFormat.
func isTGA(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tga")
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, errors.New("tga: header too short")
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bytesPerPix: int(data[16]) / 8,
		topDown:     data[17]&0x20 != 0,
	}
	switch {
	case data[1] != 0:
		return h, errors.New("tga: color-mapped images are not supported")
	case h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	case data[16] != 24 && data[16] != 32:
		return h, fmt.Errorf("tga: unsupported bit depth %d", data[16])
	case h.width == 0 || h.height == 0:
		return h, errors.New("tga: empty image")
	}
	return h, nil
}

// decodeTGAConfig returns the dimensions of a TGA image.
func decodeTGAConfig(data []byte) (image.Config, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// decodeTGA decodes an uncompressed or RLE true-color TGA image.
func decodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	start := tgaHeaderSize + h.idLength
	if start > len(data) {
		return nil, errTGATruncated
	}

	w := &tgaWriter{
		img:    image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
		header: h,
	}
	src := data[start:]
	if h.imageType == tgaTrueColor {
		err = w.raw(src)
	} else {
		err = w.rle(src)
	}
	if err != nil {
		return nil, err
	}
	return w.img, nil
}

// tgaWriter stores pixels in file order, flipping bottom-up images.
type tgaWriter struct {
	img    *image.RGBA
	header tgaHeader
	n      int
}

func (w *tgaWriter) total() int {
	return w.header.width * w.header.height
}

func (w *tgaWriter) put(px []byte) {
	x := w.n % w.header.width
	y := w.n / w.header.width
	if !w.header.topDown {
		y = w.header.height - 1 - y
	}
	a := uint8(255)
	if len(px) == 4 {
		a = px[3]
	}
	// TGA stores BGR(A).
	w.img.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
	w.n++
}

func (w *tgaWriter) raw(src []byte) error {
	bpp := w.header.bytesPerPix
	if len(src) < w.total()*bpp {
		return errTGATruncated
	}
	for w.n < w.total() {
		w.put(src[w.n*bpp : (w.n+1)*bpp])
	}
	return nil
}

func (w *tgaWriter) rle(src []byte) error {
	bpp := w.header.bytesPerPix
	i := 0
	for w.n < w.total() {
		if i >= len(src) {
			return errTGATruncated
		}
		packet := src[i]
		i++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if i+bpp > len(src) {
				return errTGATruncated
			}
			px := src[i : i+bpp]
			i += bpp
			for ; count > 0 && w.n < w.total(); count-- {
				w.put(px)
			}
			continue
		}

		for ; count > 0 && w.n < w.total(); count-- {
			if i+bpp > len(src) {
				return errTGATruncated
			}
			w.put(src[i : i+bpp])
			i += bpp
		}
	}
	return nil
}
