package highlight

import (
	"image/color"
	"testing"
)

func TestBorderImage(t *testing.T) {
	style := Style{Color: color.RGBA{R: 0xFF, A: 0xFF}, BorderWidth: 2}
	img := BorderImage(40, 20, style)

	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// Corners and edges are border, the center is transparent.
	if img.RGBAAt(0, 0) != style.Color {
		t.Fatalf("corner = %v", img.RGBAAt(0, 0))
	}
	if img.RGBAAt(39, 19) != style.Color {
		t.Fatalf("far corner = %v", img.RGBAAt(39, 19))
	}
	if got := img.RGBAAt(20, 10); got.A != 0 {
		t.Fatalf("center not transparent: %v", got)
	}
}

func TestBorderImage_MinimumWidth(t *testing.T) {
	img := BorderImage(10, 10, Style{Color: color.RGBA{B: 0xFF, A: 0xFF}})
	if img.RGBAAt(0, 0).A == 0 {
		t.Fatal("zero border width drew nothing")
	}
}

func TestBadgeImage(t *testing.T) {
	if BadgeImage(DefaultStyle()) != nil {
		t.Fatal("label-less style produced a badge")
	}

	style := Style{Color: color.RGBA{R: 0xC0, A: 0xFF}, Label: "+3"}
	img := BadgeImage(style)
	if img == nil {
		t.Fatal("no badge for labeled style")
	}
	if img.Bounds().Dx() <= 2*badgePadding || img.Bounds().Dy() <= 2*badgePadding {
		t.Fatalf("badge too small for its text: %v", img.Bounds())
	}
	if img.RGBAAt(0, 0) != style.Color {
		t.Fatalf("badge background = %v", img.RGBAAt(0, 0))
	}
}
