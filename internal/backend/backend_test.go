package backend

import (
	"testing"

	"chip8vm/internal/display"

	"github.com/retroenv/retrogolib/assert"
)

func TestFill(t *testing.T) {
	plane := display.NewPlane(display.Extended)
	plane.Draw([]byte{0x81}, 120, 63)

	img := NewImage(plane.Geometry())
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	Fill(img, plane)

	assert.Equal(t, ColorOn, img.RGBAAt(120, 63))
	assert.Equal(t, ColorOn, img.RGBAAt(127, 63))
	assert.Equal(t, ColorOff, img.RGBAAt(121, 63))
	assert.Equal(t, ColorOff, img.RGBAAt(0, 0))
}
