package renderer

import "github.com/df07/go-weekend-raytracer/pkg/core"

// Image is a grid of averaged linear colors, row 0 at the top
type Image struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color at column x, row y
func (img *Image) At(x, y int) core.Color {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at column x, row y
func (img *Image) Set(x, y int, c core.Color) {
	img.Pixels[y*img.Width+x] = c
}

// imageFromPixelStats averages every accumulator into a new image
func imageFromPixelStats(pixelStats [][]PixelStats, width, height int) *Image {
	img := NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, pixelStats[y][x].GetColor())
		}
	}
	return img
}
