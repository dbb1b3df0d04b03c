// Package previewencode declares the engine's external image-codec
// collaborator and provides a default implementation backed by the
// standard library's image/png decoder/encoder and golang.org/x/image's
// high-quality resampler.
package previewencode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

// Codec is the engine's only dependency on an image codec. The core never
// touches a file, a network request, or a GUI; it calls exactly these three
// operations, so the concrete codec is swappable by callers that already
// have a faster or more format-complete decoder in hand.
type Codec interface {
	// DecodeImage decodes arbitrary image bytes into a raw RGBA buffer
	// (row-major, 4 bytes/pixel) plus its width and height.
	DecodeImage(data []byte) (rgba []byte, w, h int, err error)
	// Resize scales a raw RGBA buffer so that max(w,h) <= targetMaxDim,
	// preserving aspect ratio. If the buffer already satisfies the cap,
	// implementations are expected to return it unchanged.
	Resize(rgba []byte, w, h, targetMaxDim int) (outRGBA []byte, outW, outH int)
	// EncodePNG encodes a raw 3-channel (no alpha) RGB buffer as a PNG.
	EncodePNG(rgb []byte, w, h int) ([]byte, error)
}

// Default is the stdlib/x-image-backed Codec implementation.
type Default struct{}

// NewDefault returns the default Codec.
func NewDefault() Default { return Default{} }

// DecodeImage implements Codec.
func (Default) DecodeImage(data []byte) ([]byte, int, int, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("previewencode: decode: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := make([]byte, w*h*4)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			rgba[idx+0] = uint8(r >> 8)
			rgba[idx+1] = uint8(g >> 8)
			rgba[idx+2] = uint8(bl >> 8)
			rgba[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return rgba, w, h, nil
}

// Resize implements Codec using golang.org/x/image/draw's CatmullRom
// scaler, a high-quality substitute for the teacher's hand-rolled Lanczos
// resampler — the working image is never upsampled beyond its source
// dimensions by this engine, only downscaled to fit targetMaxDim.
func (Default) Resize(rgba []byte, w, h, targetMaxDim int) ([]byte, int, int) {
	if w <= 0 || h <= 0 || targetMaxDim <= 0 {
		return rgba, w, h
	}
	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	if maxDim <= targetMaxDim {
		return rgba, w, h
	}

	scale := float64(targetMaxDim) / float64(maxDim)
	newW := maxInt(1, int(float64(w)*scale+0.5))
	newH := maxInt(1, int(float64(h)*scale+0.5))

	src := &image.NRGBA{Pix: rgba, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst.Pix, newW, newH
}

// EncodePNG implements Codec, producing a standard 8-bit RGB PNG with no
// alpha channel.
func (Default) EncodePNG(rgb []byte, w, h int) ([]byte, error) {
	if len(rgb) != w*h*3 {
		return nil, fmt.Errorf("previewencode: expected %d bytes for %dx%d RGB, got %d", w*h*3, w, h, len(rgb))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	idx := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: rgb[idx], G: rgb[idx+1], B: rgb[idx+2], A: 255})
			idx += 3
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("previewencode: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
