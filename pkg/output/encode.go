// Package output turns rendered images into files.
package output

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// maxChannel keeps 1.0 from scaling to 256
const maxChannel = 0.999

// ToRGB8 gamma-corrects a linear color (gamma 2) and quantizes it to 8 bits
func ToRGB8(c core.Color) (r, g, b uint8) {
	return encodeChannel(c.X), encodeChannel(c.Y), encodeChannel(c.Z)
}

func encodeChannel(v float64) uint8 {
	// Also catches NaN
	if !(v > 0) {
		return 0
	}
	v = math.Min(math.Sqrt(v), maxChannel)
	return uint8(256 * v)
}

// ToRGBA converts a rendered image to an 8-bit opaque RGBA image
func ToRGBA(img *renderer.Image) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := ToRGB8(img.At(x, y))
			rgba.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return rgba
}
