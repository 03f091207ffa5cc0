// Package backend holds what the presentation backends share: the two colour
// palette and conversion of the plane to an image.
package backend

import (
	"image"
	"image/color"

	"chip8vm/internal/display"
)

// Title of every window.
const Title = "chip8vm"

var (
	ColorOff = color.RGBA{0xd1, 0xd4, 0xcd, 255}
	ColorOn  = color.RGBA{0x74, 0x8c, 0xab, 255}
)

// NewImage returns an image the size of the plane geometry.
func NewImage(g display.Geometry) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
}

// Fill paints every cell of plane onto img, which must be at least the size
// of the plane.
func Fill(img *image.RGBA, plane *display.Plane) {
	for y := 0; y < plane.Height(); y++ {
		for x := 0; x < plane.Width(); x++ {
			if plane.Lit(x, y) {
				img.SetRGBA(x, y, ColorOn)
			} else {
				img.SetRGBA(x, y, ColorOff)
			}
		}
	}
}
