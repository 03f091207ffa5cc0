package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMnemonic(t *testing.T) {
	tests := []struct {
		raw  uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1200, "JP 0x200"},
		{0x2ABC, "CALL 0xABC"},
		{0x6A14, "LD VA, 0x14"},
		{0x8126, "SHR V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0xA050, "LD I, 0x050"},
		{0xB123, "JP V0, 0x123"},
		{0xD015, "DRW V0, V1, 5"},
		{0xE59E, "SKP V5"},
		{0xF30A, "LD V3, K"},
		{0xFF65, "LD VF, [I]"},
		{0x0123, "??? 0x0123"},
		{0x5121, "??? 0x5121"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Mnemonic(tt.raw))
		})
	}
}

func TestDecodeOperands(t *testing.T) {
	ins := decode(0xD12F)
	assert.Equal(t, opcodeDXYN, ins.op)
	assert.Equal(t, uint8(0x1), ins.x)
	assert.Equal(t, uint8(0x2), ins.y)
	assert.Equal(t, uint8(0xF), ins.n)
	assert.Equal(t, uint8(0x2F), ins.nn)
	assert.Equal(t, uint16(0x12F), ins.nnn)
}
