package highlight

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const badgePadding = 4

// BadgeImage renders an overlay's corner label as an RGBA image: the
// style color as background, white text. Returns nil when the style has
// no label.
func BadgeImage(style Style) *image.RGBA {
	if style.Label == "" {
		return nil
	}
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, style.Label).Ceil()
	w := textWidth + 2*badgePadding
	h := face.Metrics().Height.Ceil() + 2*badgePadding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(style.Color), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(badgePadding),
			Y: fixed.I(badgePadding + face.Metrics().Ascent.Ceil()),
		},
	}
	d.DrawString(style.Label)
	return img
}

// BorderImage renders an overlay frame as a transparent image with a
// solid border, sized w by h.
func BorderImage(w, h int, style Style) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bw := style.BorderWidth
	if bw < 1 {
		bw = 1
	}
	src := image.NewUniform(style.Color)
	// top, bottom, left, right strips
	draw.Draw(img, image.Rect(0, 0, w, bw), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h-bw, w, h), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, bw, h), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w-bw, 0, w, h), src, image.Point{}, draw.Src)
	return img
}
