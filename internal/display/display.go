// Package display implements the monochrome pixel plane that sprites are
// drawn onto.
//
// The start position of a sprite wraps around the plane but the sprite itself
// never does: rows falling below the bottom edge and columns past the right
// edge are clipped. Cells are toggled with XOR and erasing a lit cell is
// reported as a collision.
package display

import (
	"strings"

	"github.com/pkg/errors"
)

// Geometry selects the size of the plane.
type Geometry int

const (
	Standard Geometry = iota // 64x32
	Extended                 // 128x64
)

// SpriteWidth is the number of columns a single sprite row covers.
const SpriteWidth = 8

// Width in pixels.
func (g Geometry) Width() int {
	if g == Extended {
		return 128
	}
	return 64
}

// Height in pixels.
func (g Geometry) Height() int {
	if g == Extended {
		return 64
	}
	return 32
}

func (g Geometry) String() string {
	if g == Extended {
		return "extended"
	}
	return "standard"
}

// ParseGeometry returns the geometry for its name.
func ParseGeometry(name string) (Geometry, error) {
	switch strings.ToLower(name) {
	case "", "standard", "chip8":
		return Standard, nil
	case "extended", "superchip", "schip":
		return Extended, nil
	}
	return Standard, errors.Errorf("unknown display geometry %q", name)
}

// Plane is the bit grid. Cells are stored row major, one bit each.
type Plane struct {
	geometry Geometry
	width    int
	height   int
	bits     []uint64
	dirty    bool
}

// NewPlane returns a cleared plane of the given geometry.
func NewPlane(g Geometry) *Plane {
	w, h := g.Width(), g.Height()
	return &Plane{
		geometry: g,
		width:    w,
		height:   h,
		bits:     make([]uint64, (w*h+63)/64),
	}
}

func (p *Plane) Geometry() Geometry { return p.geometry }
func (p *Plane) Width() int         { return p.width }
func (p *Plane) Height() int        { return p.height }

// Dirty reports whether the plane changed since the last ClearDirty.
func (p *Plane) Dirty() bool { return p.dirty }

// ClearDirty is called once the plane has been presented.
func (p *Plane) ClearDirty() { p.dirty = false }

// Clear unlights every cell in place.
func (p *Plane) Clear() {
	for i := range p.bits {
		p.bits[i] = 0
	}
	p.dirty = true
}

// Lit reports whether the cell at x, y is set. Coordinates outside the plane
// are never lit.
func (p *Plane) Lit(x, y int) bool {
	if x < 0 || y < 0 || x >= p.width || y >= p.height {
		return false
	}
	i := y*p.width + x
	return p.bits[i/64]&(1<<(uint(i)%64)) != 0
}

// toggle flips the cell and returns true if it was lit beforehand.
func (p *Plane) toggle(x, y int) bool {
	i := y*p.width + x
	mask := uint64(1) << (uint(i) % 64)
	was := p.bits[i/64]&mask != 0
	p.bits[i/64] ^= mask
	return was
}

// Draw XORs sprite onto the plane with its top left corner at x, y and
// returns true if any lit cell was erased.
func (p *Plane) Draw(sprite []byte, x, y uint8) bool {
	col := int(x) % p.width
	row := int(y) % p.height

	cols := SpriteWidth
	if col+cols > p.width {
		cols = p.width - col
	}

	var collision bool
	for _, line := range sprite {
		if row >= p.height {
			break
		}
		for i := 0; i < cols; i++ {
			if line&(0x80>>i) == 0 {
				continue
			}
			if p.toggle(col+i, row) {
				collision = true
			}
			p.dirty = true
		}
		row++
	}

	return collision
}

// String renders the plane one text line per row, '#' for lit cells.
func (p *Plane) String() string {
	var b strings.Builder
	b.Grow((p.width + 1) * p.height)
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			if p.Lit(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
