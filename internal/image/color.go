package imagepkg

import (
	"image"
	"image/color"
	"math"
)

// DefaultDarken is how much the caption color is darkened relative to the
// sampled pixel.
const DefaultDarken = 0.01

// SampleCenterColor reads the pixel at the center of img and returns it
// darkened by the given fraction. Channels are non-premultiplied and rounded;
// the result is always opaque.
func SampleCenterColor(img image.Image, darken float64) color.NRGBA {
	b := img.Bounds()
	x := b.Min.X + b.Dx()/2
	y := b.Min.Y + b.Dy()/2
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)

	scale := 1 - darken
	return color.NRGBA{
		R: darkenChannel(c.R, scale),
		G: darkenChannel(c.G, scale),
		B: darkenChannel(c.B, scale),
		A: 0xff,
	}
}

func darkenChannel(v uint8, scale float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, float64(v)*scale))))
}
