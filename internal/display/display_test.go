package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestGeometry(t *testing.T) {
	p := NewPlane(Standard)
	assert.Equal(t, 64, p.Width())
	assert.Equal(t, 32, p.Height())

	p = NewPlane(Extended)
	assert.Equal(t, 128, p.Width())
	assert.Equal(t, 64, p.Height())
	assert.Equal(t, Extended, p.Geometry())
}

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name    string
		want    Geometry
		wantErr bool
	}{
		{"", Standard, false},
		{"standard", Standard, false},
		{"CHIP8", Standard, false},
		{"extended", Extended, false},
		{"superchip", Extended, false},
		{"vga", Standard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGeometry(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, g)
		})
	}
}

func TestDrawXORRestores(t *testing.T) {
	p := NewPlane(Standard)
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}

	assert.False(t, p.Draw(sprite, 10, 5))
	assert.True(t, p.Dirty())
	assert.True(t, p.Lit(10, 5))
	assert.True(t, p.Lit(13, 5))
	assert.False(t, p.Lit(11, 6))

	p.ClearDirty()

	// the second identical draw erases what the first lit
	assert.True(t, p.Draw(sprite, 10, 5))
	assert.True(t, p.Dirty())
	assert.Equal(t, NewPlane(Standard).String(), p.String())
}

func TestDrawBlankSprite(t *testing.T) {
	p := NewPlane(Standard)
	blank := []byte{0, 0, 0}

	assert.False(t, p.Draw(blank, 0, 0))
	assert.False(t, p.Draw(blank, 0, 0))
	assert.False(t, p.Dirty())
}

func TestDrawCollisionAccumulates(t *testing.T) {
	p := NewPlane(Standard)
	p.Draw([]byte{0x80}, 0, 1)

	// only the second row overlaps but the whole call reports it
	assert.True(t, p.Draw([]byte{0x40, 0x80, 0x00}, 0, 0))
	assert.False(t, p.Lit(0, 1))
	assert.True(t, p.Lit(1, 0))
}

func TestDrawClipsRightEdge(t *testing.T) {
	for _, g := range []Geometry{Standard, Extended} {
		t.Run(g.String(), func(t *testing.T) {
			p := NewPlane(g)
			w := p.Width()

			p.Draw([]byte{0xFF, 0xFF}, uint8(w-3), 0)

			for y := 0; y < 2; y++ {
				for x := 0; x < w; x++ {
					assert.Equal(t, x >= w-3, p.Lit(x, y))
				}
			}
		})
	}
}

func TestDrawClipsBottomEdge(t *testing.T) {
	p := NewPlane(Standard)

	p.Draw([]byte{0x80, 0x80, 0x80, 0x80}, 0, 30)

	assert.True(t, p.Lit(0, 30))
	assert.True(t, p.Lit(0, 31))
	assert.False(t, p.Lit(0, 0))
	assert.False(t, p.Lit(0, 1))
}

func TestDrawStartWraps(t *testing.T) {
	p := NewPlane(Standard)

	// 66 mod 64 = 2, 33 mod 32 = 1
	p.Draw([]byte{0x80}, 66, 33)
	assert.True(t, p.Lit(2, 1))

	e := NewPlane(Extended)
	e.Draw([]byte{0x80}, 130, 65)
	assert.True(t, e.Lit(2, 1))
}

func TestClear(t *testing.T) {
	p := NewPlane(Extended)
	p.Draw([]byte{0xFF}, 100, 60)
	p.ClearDirty()

	p.Clear()
	assert.True(t, p.Dirty())
	assert.False(t, p.Lit(100, 60))
	assert.Equal(t, 64*128, strings.Count(p.String(), "."))
}

func TestLitOutside(t *testing.T) {
	p := NewPlane(Standard)
	assert.False(t, p.Lit(-1, 0))
	assert.False(t, p.Lit(64, 0))
	assert.False(t, p.Lit(0, 32))
}
