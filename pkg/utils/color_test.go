package utils

import (
	"image/color"
	"math"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff2e50", color.RGBA{0xff, 0x2e, 0x50, 0xff}, false},
		{"fff08a", color.RGBA{0xff, 0xf0, 0x8a, 0xff}, false},
		{"#0a0b0c80", color.RGBA{0x0a, 0x0b, 0x0c, 0x80}, false},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 0xff}, false},
		{" #000000 ", color.RGBA{0, 0, 0, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustParseHexColorFallback(t *testing.T) {
	fallback := color.RGBA{1, 2, 3, 4}
	if got := MustParseHexColor("nope", fallback); got != fallback {
		t.Errorf("got %v, want fallback %v", got, fallback)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}

	if got := WithAlpha(c, 1); got != c {
		t.Errorf("WithAlpha(1) = %v, want %v", got, c)
	}
	if got := WithAlpha(c, 0); got != (color.RGBA{}) {
		t.Errorf("WithAlpha(0) = %v, want transparent", got)
	}
	if got := WithAlpha(c, 0.5); got.A != 127 || got.R != 100 {
		t.Errorf("WithAlpha(0.5) = %v", got)
	}
}

func TestLerpColor(t *testing.T) {
	a := color.RGBA{0, 0, 0, 255}
	b := color.RGBA{200, 100, 50, 255}

	if got := LerpColor(a, b, 0.5); got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("LerpColor(0.5) = %v", got)
	}
	if got := LerpColor(a, b, 3); got != b {
		t.Errorf("LerpColor should clamp t, got %v", got)
	}
}

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.875},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
