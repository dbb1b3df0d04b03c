package quantizer

import (
	"context"
	"testing"

	"github.com/coltonbatts/colorwizard/pkg/colorspace"
)

func TestRunInvalidK(t *testing.T) {
	if _, err := Run(context.Background(), nil, 0, 42, 0); err == nil {
		t.Fatalf("expected error for k<=0")
	}
}

func TestRunKGreaterThanN(t *testing.T) {
	pixels := []colorspace.Lab{{L: 10}, {L: 20}, {L: 30}}
	res, err := Run(context.Background(), pixels, 5, 42, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Centroids) != 3 {
		t.Fatalf("expected identity centroids of length 3, got %d", len(res.Centroids))
	}
	for i, l := range res.Labels {
		if l != i {
			t.Fatalf("expected identity labels, got %v", res.Labels)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	pixels := make([]colorspace.Lab, 0, 300)
	for i := 0; i < 100; i++ {
		pixels = append(pixels,
			colorspace.RGB{R: 255, G: 0, B: 0}.ToLab(),
			colorspace.RGB{R: 0, G: 255, B: 0}.ToLab(),
			colorspace.RGB{R: 0, G: 0, B: 255}.ToLab(),
		)
	}
	r1, err := Run(context.Background(), pixels, 3, 42, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	r2, err := Run(context.Background(), pixels, 3, 42, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := range r1.Labels {
		if r1.Labels[i] != r2.Labels[i] {
			t.Fatalf("labels not deterministic at %d: %d != %d", i, r1.Labels[i], r2.Labels[i])
		}
	}
	for i := range r1.Centroids {
		if r1.Centroids[i] != r2.Centroids[i] {
			t.Fatalf("centroids not deterministic at %d", i)
		}
	}
}

func TestRunLabelsInRange(t *testing.T) {
	pixels := make([]colorspace.Lab, 0, 50)
	for i := 0; i < 50; i++ {
		pixels = append(pixels, colorspace.RGB{R: uint8(i * 5), G: uint8(255 - i*5), B: 128}.ToLab())
	}
	res, err := Run(context.Background(), pixels, 4, 7, 20)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, l := range res.Labels {
		if l < 0 || l >= 4 {
			t.Fatalf("label out of range: %d", l)
		}
	}
}

func TestRunCancellation(t *testing.T) {
	pixels := make([]colorspace.Lab, 0, 1000)
	for i := 0; i < 1000; i++ {
		pixels = append(pixels, colorspace.RGB{R: uint8(i % 255), G: 0, B: 0}.ToLab())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, pixels, 3, 42, 20); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
