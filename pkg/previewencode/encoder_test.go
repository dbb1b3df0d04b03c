package previewencode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeImageRoundTrip(t *testing.T) {
	data := encodeTestPNG(t, 3, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	rgba, w, h, err := NewDefault().DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if w != 3 || h != 2 {
		t.Fatalf("expected 3x2, got %dx%d", w, h)
	}
	if rgba[0] != 10 || rgba[1] != 20 || rgba[2] != 30 {
		t.Fatalf("unexpected pixel: %v", rgba[:4])
	}
}

func TestResizeNoOpWhenAlreadyCompliant(t *testing.T) {
	rgba := make([]byte, 10*10*4)
	out, w, h := NewDefault().Resize(rgba, 10, 10, 20)
	if w != 10 || h != 10 {
		t.Fatalf("expected unchanged dims, got %dx%d", w, h)
	}
	if len(out) != len(rgba) {
		t.Fatalf("expected unchanged buffer length")
	}
}

func TestResizeShrinksToMaxDim(t *testing.T) {
	rgba := make([]byte, 100*50*4)
	_, w, h := NewDefault().Resize(rgba, 100, 50, 20)
	if w > 20 || h > 20 {
		t.Fatalf("expected max dimension <= 20, got %dx%d", w, h)
	}
	if w != 20 {
		t.Fatalf("expected width to hit the cap (wider dimension), got %d", w)
	}
}

func TestEncodePNGSignature(t *testing.T) {
	rgb := make([]byte, 2*2*3)
	out, err := NewDefault().EncodePNG(rgb, 2, 2)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	sig := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	if !bytes.HasPrefix(out, sig) {
		t.Fatalf("expected PNG signature prefix, got % x", out[:8])
	}
}

func TestEncodePNGRejectsWrongBufferSize(t *testing.T) {
	if _, err := NewDefault().EncodePNG(make([]byte, 3), 2, 2); err == nil {
		t.Fatalf("expected error for mismatched buffer size")
	}
}
